// One-shot administrative script: clears all global slash commands.
// Run this before re-registering commands if they are stuck.
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

	if err := client.ClearCommands(context.Background(), cfg.DiscordApplicationID); err != nil {
		log.Fatalf("Failed to clear commands: %v", err)
	}

	log.Printf("Successfully cleared all commands")
}
