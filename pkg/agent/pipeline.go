// Package agent runs the deferred chat pipeline: fetch recent channel
// history, build the persona prompt, generate a reply, deliver it via
// the interaction followup webhook.
package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/goricho/gori-bot/pkg/models"
	"github.com/goricho/gori-bot/pkg/prompt"
)

// ApologyMessage is delivered when the pipeline itself fails; the user
// is never left without a followup.
const ApologyMessage = "エラーが発生しました。"

// HistoryFetcher retrieves recent channel messages, display names resolved
type HistoryFetcher interface {
	RecentMessages(ctx context.Context, channelID, guildID string, limit int) ([]models.ChannelMessage, error)
}

// Generator produces a completion for a prompt. It never fails; all
// of its failure paths resolve to a fixed fallback string.
type Generator interface {
	GenerateResponse(ctx context.Context, prompt string) string
}

// FollowupSender delivers the one-shot followup for a deferred interaction
type FollowupSender interface {
	SendFollowup(ctx context.Context, applicationID, interactionToken, content string) error
}

// Pipeline executes the deferred part of a chat command
type Pipeline struct {
	history      HistoryFetcher
	generator    Generator
	followup     FollowupSender
	historyLimit int
}

// NewPipeline creates a new pipeline
func NewPipeline(history HistoryFetcher, generator Generator, followup FollowupSender, historyLimit int) *Pipeline {
	return &Pipeline{
		history:      history,
		generator:    generator,
		followup:     followup,
		historyLimit: historyLimit,
	}
}

// Run builds the reply and delivers exactly one followup, whatever
// happens inside the pipeline. The deferred acknowledgment has already
// been returned by the webhook handler by the time this runs.
func (p *Pipeline) Run(ctx context.Context, input *models.PipelineInput) error {
	log.Printf("Running chat pipeline for request %s (command %s)", input.RequestID, input.Command)

	content := p.buildReply(ctx, input)

	if err := p.followup.SendFollowup(ctx, input.ApplicationID, input.InteractionToken, content); err != nil {
		return fmt.Errorf("send followup: %w", err)
	}

	log.Printf("Delivered followup for request %s", input.RequestID)
	return nil
}

// buildReply never lets an internal failure escape; the followup must
// still fire with the apology string.
func (p *Pipeline) buildReply(ctx context.Context, input *models.PipelineInput) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Pipeline panic for request %s: %v", input.RequestID, r)
			reply = ApologyMessage
		}
	}()

	messages, err := p.history.RecentMessages(ctx, input.ChannelID, input.GuildID, p.historyLimit)
	if err != nil {
		// History is enrichment only; degrade to an empty context
		log.Printf("Error fetching history for request %s: %v", input.RequestID, err)
		messages = nil
	}

	turns := prompt.TurnsFromMessages(messages)
	contextPrompt := prompt.BuildContextPrompt(prompt.SystemPrompt(input.Command), turns, input.Nickname, input.Message)

	return p.generator.GenerateResponse(ctx, contextPrompt)
}
