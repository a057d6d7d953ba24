package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/goricho/gori-bot/pkg/agent"
	appconfig "github.com/goricho/gori-bot/pkg/config"
	"github.com/goricho/gori-bot/pkg/discord"
	"github.com/goricho/gori-bot/pkg/gemini"
	"github.com/goricho/gori-bot/pkg/models"
)

// Handler is invoked by the Step Functions state machine with the
// pipeline input as its payload. The webhook handler has already sent
// the deferred acknowledgment; this run is never cancelled once started.
func Handler(ctx context.Context, input models.PipelineInput) error {
	log.Printf("Starting agent for request: %s", input.RequestID)

	// Load application configuration
	cfg, err := appconfig.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateAgent(); err != nil {
		return fmt.Errorf("invalid agent config: %w", err)
	}

	// Initialize clients
	discordClient, err := discord.NewClient(cfg.DiscordBotToken)
	if err != nil {
		return fmt.Errorf("create discord client: %w", err)
	}
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey)

	pipeline := agent.NewPipeline(discordClient, geminiClient, discordClient, cfg.HistoryLimit)
	if err := pipeline.Run(ctx, &input); err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	log.Printf("Agent completed for request: %s", input.RequestID)
	return nil
}

func main() {
	lambda.Start(Handler)
}
