package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/goricho/gori-bot/pkg/models"
)

// MessageCharLimit is Discord's maximum message length
const MessageCharLimit = 2000

// Client wraps the discordgo session for use throughout the application.
// Only REST calls are made; the gateway is never opened.
type Client struct {
	session *discordgo.Session
}

// NewClient creates a new Discord client with bot token
func NewClient(botToken string) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &Client{session: session}, nil
}

// RecentMessages fetches up to limit most recent messages of a channel
// and returns them oldest first. Guild members get their nickname as
// the author name; a failed nickname lookup falls back to the username.
func (c *Client) RecentMessages(ctx context.Context, channelID, guildID string, limit int) ([]models.ChannelMessage, error) {
	messages, err := c.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch channel messages: %w", err)
	}

	// Discord returns newest first; walk backwards for chronological order
	result := make([]models.ChannelMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Author == nil {
			continue
		}

		name := msg.Author.Username
		if guildID != "" && !msg.Author.Bot {
			if nick, err := c.MemberNickname(ctx, guildID, msg.Author.ID); err == nil && nick != "" {
				name = nick
			}
		}

		result = append(result, models.ChannelMessage{
			AuthorName: name,
			Bot:        msg.Author.Bot,
			Content:    msg.Content,
		})
	}

	return result, nil
}

// MemberNickname resolves a guild member's display name, preferring
// the guild nickname over the account username.
func (c *Client) MemberNickname(ctx context.Context, guildID, userID string) (string, error) {
	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("get guild member: %w", err)
	}

	if member.Nick != "" {
		return member.Nick, nil
	}
	if member.User != nil {
		return member.User.Username, nil
	}
	return "", nil
}

// SendFollowup posts the followup message for a deferred interaction,
// keyed by application ID and the interaction's one-time token.
func (c *Client) SendFollowup(ctx context.Context, applicationID, interactionToken, content string) error {
	_, err := c.session.WebhookExecute(applicationID, interactionToken, true, &discordgo.WebhookParams{
		Content: Truncate(content),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute followup webhook: %w", err)
	}

	return nil
}

// RegisterCommands bulk-replaces the application's global slash commands
func (c *Client) RegisterCommands(ctx context.Context, applicationID string, commands []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	registered, err := c.session.ApplicationCommandBulkOverwrite(applicationID, "", commands, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("bulk overwrite commands: %w", err)
	}

	return registered, nil
}

// ClearCommands removes all global slash commands by overwriting with
// an empty list.
func (c *Client) ClearCommands(ctx context.Context, applicationID string) error {
	_, err := c.session.ApplicationCommandBulkOverwrite(applicationID, "", []*discordgo.ApplicationCommand{}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("clear commands: %w", err)
	}

	return nil
}

// Truncate caps a message at Discord's length limit
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= MessageCharLimit {
		return content
	}
	return string(runes[:MessageCharLimit])
}
