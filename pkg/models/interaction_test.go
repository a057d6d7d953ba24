package models

import (
	"encoding/json"
	"testing"
)

func TestInteractionUnmarshal(t *testing.T) {
	// A trimmed guild command payload as Discord sends it
	payload := `{
		"id": "123",
		"application_id": "456",
		"type": 2,
		"token": "tok",
		"channel_id": "789",
		"guild_id": "999",
		"data": {
			"name": "delete",
			"options": [{"name": "id", "value": 7}]
		},
		"member": {
			"nick": "部長の部下",
			"user": {"id": "42", "username": "taro"}
		}
	}`

	var interaction Interaction
	if err := json.Unmarshal([]byte(payload), &interaction); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if interaction.Type != InteractionCommand {
		t.Errorf("Type = %d, want %d", interaction.Type, InteractionCommand)
	}
	if interaction.UserID() != "42" {
		t.Errorf("UserID() = %q, want 42", interaction.UserID())
	}
	if interaction.Nickname() != "部長の部下" {
		t.Errorf("Nickname() = %q, want 部長の部下", interaction.Nickname())
	}

	id, ok := interaction.Data.IntOption("id")
	if !ok || id != 7 {
		t.Errorf("IntOption(id) = %d, %v; want 7, true", id, ok)
	}
}

func TestUserIDFallsBackToDMUser(t *testing.T) {
	interaction := &Interaction{User: &User{ID: "dm-user", Username: "taro"}}

	if interaction.UserID() != "dm-user" {
		t.Errorf("UserID() = %q, want dm-user", interaction.UserID())
	}
	if interaction.Nickname() != "taro" {
		t.Errorf("Nickname() = %q, want taro", interaction.Nickname())
	}
}

func TestNicknamePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		interaction *Interaction
		want        string
	}{
		{
			name: "guild nick wins",
			interaction: &Interaction{Member: &Member{
				Nick: "ニック",
				User: &User{Username: "taro"},
			}},
			want: "ニック",
		},
		{
			name: "username when no nick",
			interaction: &Interaction{Member: &Member{
				User: &User{Username: "taro"},
			}},
			want: "taro",
		},
		{
			name:        "placeholder when nothing is set",
			interaction: &Interaction{},
			want:        "User",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.interaction.Nickname(); got != tt.want {
				t.Errorf("Nickname() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringOption(t *testing.T) {
	data := &InteractionData{Options: []CommandOption{
		{Name: "content", Value: "メモの中身"},
		{Name: "empty", Value: ""},
	}}

	if got, ok := data.StringOption("content"); !ok || got != "メモの中身" {
		t.Errorf("StringOption(content) = %q, %v", got, ok)
	}
	if _, ok := data.StringOption("empty"); ok {
		t.Error("StringOption(empty) should report missing for an empty value")
	}
	if _, ok := data.StringOption("absent"); ok {
		t.Error("StringOption(absent) should report missing")
	}
}

func TestIntOption(t *testing.T) {
	data := &InteractionData{Options: []CommandOption{
		{Name: "id", Value: float64(7)}, // JSON numbers decode as float64
		{Name: "bad", Value: "seven"},
	}}

	if got, ok := data.IntOption("id"); !ok || got != 7 {
		t.Errorf("IntOption(id) = %d, %v", got, ok)
	}
	if _, ok := data.IntOption("bad"); ok {
		t.Error("IntOption(bad) should report missing for a non-numeric value")
	}
	if _, ok := data.IntOption("absent"); ok {
		t.Error("IntOption(absent) should report missing")
	}
}

func TestNewPipelineInput(t *testing.T) {
	interaction := &Interaction{
		ApplicationID: "app-1",
		Token:         "tok-1",
		ChannelID:     "chan-1",
		GuildID:       "guild-1",
		Member: &Member{
			Nick: "ニック",
			User: &User{ID: "user-1", Username: "taro"},
		},
	}

	input := NewPipelineInput(interaction, "gori", "おはよう")

	if input.ApplicationID != "app-1" || input.InteractionToken != "tok-1" {
		t.Errorf("app/token = %q/%q", input.ApplicationID, input.InteractionToken)
	}
	if input.ChannelID != "chan-1" || input.GuildID != "guild-1" {
		t.Errorf("channel/guild = %q/%q", input.ChannelID, input.GuildID)
	}
	if input.UserID != "user-1" || input.Nickname != "ニック" {
		t.Errorf("user/nickname = %q/%q", input.UserID, input.Nickname)
	}
	if input.Command != "gori" || input.Message != "おはよう" {
		t.Errorf("command/message = %q/%q", input.Command, input.Message)
	}
	if input.RequestID == "" {
		t.Error("RequestID should be generated")
	}

	// Request IDs are unique per input
	other := NewPipelineInput(interaction, "gori", "おはよう")
	if other.RequestID == input.RequestID {
		t.Error("RequestID should differ between inputs")
	}
}
