package models

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// PipelineInput is the payload handed to the Step Functions state
// machine when a chat command defers its response. It carries
// everything the agent needs so no read-back is required; the
// interaction token is the one-shot key for the followup webhook.
type PipelineInput struct {
	RequestID        string `json:"requestId"`
	ApplicationID    string `json:"applicationId"`
	InteractionToken string `json:"interactionToken"`
	ChannelID        string `json:"channelId"`
	GuildID          string `json:"guildId"`
	UserID           string `json:"userId"`
	Nickname         string `json:"nickname"`
	Command          string `json:"command"`
	Message          string `json:"message"`
	CreatedAt        string `json:"createdAt"`
}

// NewPipelineInput builds a pipeline input from a chat command interaction
func NewPipelineInput(interaction *Interaction, command, message string) *PipelineInput {
	return &PipelineInput{
		RequestID:        generateRequestID(),
		ApplicationID:    interaction.ApplicationID,
		InteractionToken: interaction.Token,
		ChannelID:        interaction.ChannelID,
		GuildID:          interaction.GuildID,
		UserID:           interaction.UserID(),
		Nickname:         interaction.Nickname(),
		Command:          command,
		Message:          message,
		CreatedAt:        time.Now().Format(time.RFC3339),
	}
}

// generateRequestID generates a ULID string for unique identifiers
func generateRequestID() string {
	id, _ := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	return "req-" + id.String()
}
