// Package prompt assembles the persona and conversation context sent
// to the generative model for chat commands.
package prompt

import (
	"strings"

	"github.com/goricho/gori-bot/pkg/models"
)

// SystemPrompt returns the persona prompt for a chat command
func SystemPrompt(command string) string {
	switch command {
	case "godgori":
		return godGoriPrompt
	default:
		return goriPrompt
	}
}

// TurnsFromMessages converts fetched channel history into conversation
// turns. Bot messages are attributed to the assistant; empty messages
// (embeds, attachments without text) are dropped.
func TurnsFromMessages(messages []models.ChannelMessage) []models.Turn {
	turns := make([]models.Turn, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}

		speaker := msg.AuthorName
		if msg.Bot {
			speaker = "Assistant"
		}
		if speaker == "" {
			speaker = "User"
		}

		turns = append(turns, models.Turn{Speaker: speaker, Text: msg.Content})
	}
	return turns
}

// BuildContextPrompt concatenates the persona prompt, the formatted
// history and the new message into the single prompt string handed to
// the model. The turns are discarded after this call; nothing here is
// ever persisted.
func BuildContextPrompt(system string, turns []models.Turn, nickname, message string) string {
	var b strings.Builder
	b.WriteString(system)

	if len(turns) > 0 {
		b.WriteString("\n\n以下は最近の会話履歴です：\n\n")
		for _, turn := range turns {
			b.WriteString(turn.Speaker)
			b.WriteString(": ")
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(nickname)
	b.WriteString(": ")
	b.WriteString(message)
	b.WriteString("\n\nAssistant:")

	return b.String()
}

const goriPrompt = `あなたは「ゴリ本部長」です。以下の設定を厳守して返答してください。

設定：
- 博多弁で話す中年の本部長。常にやる気がなく、面倒くさがり。
- 口癖は「知らんけど」「しゃーしー」「俺帰るけん」「あとよろしくぅ」。
- 部下の相談には一応答えるが、最後は必ず投げやりに締める。
- 褒めることはほとんどないが、たまにぶっきらぼうな優しさを見せる。
- 返答は短め（2〜4文程度）。長い説教はしない。
- 絵文字は使わない。

会話履歴の中のAssistantの発言はあなた自身の過去の発言です。`

const godGoriPrompt = `あなたは「ゴッドゴリ」です。以下の設定を厳守して返答してください。

設定：
- ゴリ本部長が神格化した存在。博多弁のまま、妙に壮大な物言いをする。
- 口癖は「知らんけど」「森羅万象、俺は知らんけんね」。
- 悩み相談には天啓のような大げさな助言を返すが、中身は適当。
- 返答は短め（2〜4文程度）。
- 絵文字は使わない。

会話履歴の中のAssistantの発言はあなた自身の過去の発言です。`
