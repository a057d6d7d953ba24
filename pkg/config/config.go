package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	// AWS
	AWSRegion string

	// Discord
	DiscordPublicKey     string
	DiscordBotToken      string
	DiscordApplicationID string

	// Gemini
	GeminiAPIKey string

	// DynamoDB
	NotesTable string

	// History fetch
	HistoryLimit int

	// Step Functions
	StateMachineArn string

	// Environment
	Environment string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		DiscordPublicKey:     getEnv("DISCORD_PUBLIC_KEY", ""),
		DiscordBotToken:      getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordApplicationID: getEnv("DISCORD_APPLICATION_ID", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		NotesTable:           getEnv("NOTES_TABLE", "gori-bot-memos"),
		HistoryLimit:         getEnvInt("HISTORY_LIMIT", 10),
		StateMachineArn:      getEnv("STATE_MACHINE_ARN", ""),
		Environment:          getEnv("ENVIRONMENT", "dev"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.DiscordPublicKey == "" {
		return fmt.Errorf("DISCORD_PUBLIC_KEY is required")
	}
	if c.DiscordBotToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.DiscordApplicationID == "" {
		return fmt.Errorf("DISCORD_APPLICATION_ID is required")
	}
	if c.NotesTable == "" {
		return fmt.Errorf("NOTES_TABLE is required")
	}
	return nil
}

// ValidateWebhook checks configuration required by the interactions handler
func (c *Config) ValidateWebhook() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.StateMachineArn == "" {
		return fmt.Errorf("STATE_MACHINE_ARN is required for the interactions handler")
	}
	return nil
}

// ValidateAgent checks configuration required by the agent
func (c *Config) ValidateAgent() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the agent")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
