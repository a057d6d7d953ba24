package discord

import "github.com/bwmarrin/discordgo"

// Commands is the bot's full slash command set, used by the one-shot
// registration utility to bulk-replace the application's commands.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "gori",
			Description: "ゴリ本部長と話す",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "ゴリ本部長に言いたいこと",
					Required:    true,
				},
			},
		},
		{
			Name:        "godgori",
			Description: "ゴッドゴリと話す",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "ゴッドゴリに言いたいこと",
					Required:    true,
				},
			},
		},
		{
			Name:        "memo",
			Description: "メモを保存します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "content",
					Description: "保存するメモの内容",
					Required:    true,
				},
			},
		},
		{
			Name:        "list",
			Description: "保存したメモの一覧を表示します",
		},
		{
			Name:        "delete",
			Description: "メモを削除します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "削除するメモのID",
					Required:    true,
				},
			},
		},
	}
}
