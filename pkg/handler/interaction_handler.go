package handler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/goricho/gori-bot/pkg/discord"
	"github.com/goricho/gori-bot/pkg/models"
)

// User-facing messages. These are part of the bot's persona; storage
// and pipeline errors are logged, never shown raw.
const (
	msgUnknownCommand = "不明なコマンドです。"
	msgCommandError   = "エラーが発生しました。"
	msgComponentAck   = "コンポーネントのインタラクションを受け取りました。"

	msgMemoMissingContent = "なんか書けや。知らんけど。"
	msgMemoSaveFailed     = "あー面倒くせぇ。メモ保存できんかったわ。もう一回やり直して。俺は知らんけんね。"

	msgListEmpty  = "メモなんか一個もないやん。なんも書いとらんのに見るもんないやろ。知らんけど。"
	msgListFailed = "メモ見ようとしたけど、なんかエラー出たわ。俺管理せんけん。もう一回やって。"

	msgDeleteMissingID = "ID書けや。何消したいんか分からんやろ。ふぇっふぁっふぁぇっ。"
	msgDeleteFailed    = "削除しようとしたけど失敗したわ。俺のせいじゃないけんね。しゃーしー。"

	msgChatMissingMessage = "なんか言えや。知らんけど。"
)

// NoteStore is the persistence surface the dispatcher needs
type NoteStore interface {
	Save(ctx context.Context, userID, content string) (int64, error)
	List(ctx context.Context, userID string) ([]models.Note, error)
	Delete(ctx context.Context, userID string, id int64) (bool, error)
}

// PipelineStarter hands a deferred chat command to the background
// pipeline. The returned identifier is logged only.
type PipelineStarter interface {
	StartPipeline(ctx context.Context, input *models.PipelineInput) (string, error)
}

// InteractionHandler dispatches Discord interactions to the note store
// or the deferred AI pipeline.
type InteractionHandler struct {
	notes    NoteStore
	pipeline PipelineStarter
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(notes NoteStore, pipeline PipelineStarter) *InteractionHandler {
	return &InteractionHandler{
		notes:    notes,
		pipeline: pipeline,
	}
}

// HandleInteraction routes an interaction by type. A nil response
// means the interaction kind is not handled and the caller should
// reply with a plain 200.
func (h *InteractionHandler) HandleInteraction(ctx context.Context, interaction *models.Interaction) *models.InteractionResponse {
	switch interaction.Type {
	case models.InteractionPing:
		return &models.InteractionResponse{Type: models.ResponsePong}
	case models.InteractionCommand:
		return h.handleCommand(ctx, interaction)
	case models.InteractionComponent:
		return models.NewMessageResponse(msgComponentAck, false)
	}

	log.Printf("Ignoring interaction type: %d", interaction.Type)
	return nil
}

// handleCommand branches on the slash command name
func (h *InteractionHandler) handleCommand(ctx context.Context, interaction *models.Interaction) *models.InteractionResponse {
	command := strings.ToLower(interaction.Data.Name)
	userID := interaction.UserID()
	log.Printf("Handling command %q from user %s", command, userID)

	switch command {
	case "memo":
		return h.handleMemo(ctx, interaction, userID)
	case "list":
		return h.handleList(ctx, userID)
	case "delete":
		return h.handleDelete(ctx, interaction, userID)
	case "gori", "ゴリ", "godgori":
		return h.handleChat(ctx, interaction, command)
	default:
		return models.NewMessageResponse(msgUnknownCommand, false)
	}
}

func (h *InteractionHandler) handleMemo(ctx context.Context, interaction *models.Interaction, userID string) *models.InteractionResponse {
	content, ok := interaction.Data.StringOption("content")
	if !ok {
		return models.NewMessageResponse(msgMemoMissingContent, false)
	}

	if _, err := h.notes.Save(ctx, userID, content); err != nil {
		log.Printf("Error saving memo: %v", err)
		return models.NewMessageResponse(msgMemoSaveFailed, false)
	}

	reply := fmt.Sprintf("はいはい、メモっといたけんね。「%s」って。\nまぁ後で見るかどうかは知らんけど。じゃ、俺帰るけん。", content)
	return models.NewMessageResponse(reply, false)
}

func (h *InteractionHandler) handleList(ctx context.Context, userID string) *models.InteractionResponse {
	notes, err := h.notes.List(ctx, userID)
	if err != nil {
		log.Printf("Error listing memos: %v", err)
		return models.NewMessageResponse(msgListFailed, false)
	}

	if len(notes) == 0 {
		return models.NewMessageResponse(msgListEmpty, false)
	}

	var lines []string
	for i, note := range notes {
		lines = append(lines, fmt.Sprintf("%d. [ID:%d] %s", i+1, note.ID, note.Content))
	}

	reply := fmt.Sprintf("あー面倒くせぇけど、一応メモ見せたるわ。\n\n%s\n\nほら、これでいい？俺もう帰るけん。あとよろしくぅ。", strings.Join(lines, "\n"))
	return models.NewMessageResponse(discord.Truncate(reply), false)
}

func (h *InteractionHandler) handleDelete(ctx context.Context, interaction *models.Interaction, userID string) *models.InteractionResponse {
	id, ok := interaction.Data.IntOption("id")
	if !ok {
		return models.NewMessageResponse(msgDeleteMissingID, false)
	}

	deleted, err := h.notes.Delete(ctx, userID, id)
	if err != nil {
		log.Printf("Error deleting memo: %v", err)
		return models.NewMessageResponse(msgDeleteFailed, false)
	}

	if !deleted {
		reply := fmt.Sprintf("ID:%d？そんなメモないけど。俺そんなこと言ったっけ。知らんけんね。", id)
		return models.NewMessageResponse(reply, false)
	}

	reply := fmt.Sprintf("はいはい、ID:%dのメモ消しといたけん。\nまぁ消したところで俺は困らんけど。じゃ、先帰るけん。", id)
	return models.NewMessageResponse(reply, false)
}

// handleChat acknowledges a chat command with a deferred response and
// hands the slow history-fetch/generate work to the pipeline. The
// followup is delivered out-of-band, keyed by the interaction token.
func (h *InteractionHandler) handleChat(ctx context.Context, interaction *models.Interaction, command string) *models.InteractionResponse {
	message, ok := interaction.Data.StringOption("message")
	if !ok {
		return models.NewMessageResponse(msgChatMissingMessage, false)
	}

	// "ゴリ" is an alias of gori
	if command == "ゴリ" {
		command = "gori"
	}

	input := models.NewPipelineInput(interaction, command, message)
	executionID, err := h.pipeline.StartPipeline(ctx, input)
	if err != nil {
		log.Printf("Error starting chat pipeline: %v", err)
		return models.NewMessageResponse(msgCommandError, false)
	}

	log.Printf("Started chat pipeline %s for request %s", executionID, input.RequestID)
	return models.NewDeferredResponse()
}
