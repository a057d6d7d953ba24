// One-shot administrative script: bulk-replaces the application's
// global slash commands with the full command set.
package main

import (
	"context"
	"log"

	appconfig "github.com/goricho/gori-bot/pkg/config"
	"github.com/goricho/gori-bot/pkg/discord"
	"github.com/joho/godotenv"
)

func main() {
	// .env is for local runs; in CI the variables are already set
	if err := godotenv.Load(); err != nil {
		log.Printf("Running without .env file")
	}

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := discord.NewClient(cfg.DiscordBotToken)
	if err != nil {
		log.Fatalf("Failed to create Discord client: %v", err)
	}

	ctx := context.Background()
	registered, err := client.RegisterCommands(ctx, cfg.DiscordApplicationID, discord.Commands())
	if err != nil {
		log.Fatalf("Failed to register commands: %v", err)
	}

	log.Printf("Successfully registered %d commands:", len(registered))
	for _, cmd := range registered {
		log.Printf("  /%s: %s", cmd.Name, cmd.Description)
	}
}
