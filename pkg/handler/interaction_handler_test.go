package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goricho/gori-bot/pkg/models"
)

type fakeNoteStore struct {
	saveCalls   int
	listCalls   int
	deleteCalls int

	saveErr   error
	listErr   error
	deleteErr error

	notes   []models.Note
	deleted bool

	lastSaveUser    string
	lastSaveContent string
	lastDeleteUser  string
	lastDeleteID    int64
}

func (f *fakeNoteStore) Save(ctx context.Context, userID, content string) (int64, error) {
	f.saveCalls++
	f.lastSaveUser = userID
	f.lastSaveContent = content
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	return 42, nil
}

func (f *fakeNoteStore) List(ctx context.Context, userID string) ([]models.Note, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.notes, nil
}

func (f *fakeNoteStore) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	f.deleteCalls++
	f.lastDeleteUser = userID
	f.lastDeleteID = id
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return f.deleted, nil
}

type fakePipelineStarter struct {
	startCalls int
	startErr   error
	lastInput  *models.PipelineInput
}

func (f *fakePipelineStarter) StartPipeline(ctx context.Context, input *models.PipelineInput) (string, error) {
	f.startCalls++
	f.lastInput = input
	if f.startErr != nil {
		return "", f.startErr
	}
	return "execution-1", nil
}

func commandInteraction(name string, options ...models.CommandOption) *models.Interaction {
	return &models.Interaction{
		ID:            "interaction-1",
		ApplicationID: "app-1",
		Type:          models.InteractionCommand,
		Token:         "token-1",
		ChannelID:     "channel-1",
		GuildID:       "guild-1",
		Data:          models.InteractionData{Name: name, Options: options},
		Member: &models.Member{
			Nick: "ゴリ部下",
			User: &models.User{ID: "user-1", Username: "tester"},
		},
	}
}

func TestHandlePing(t *testing.T) {
	h := NewInteractionHandler(&fakeNoteStore{}, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), &models.Interaction{Type: models.InteractionPing})
	if resp == nil || resp.Type != models.ResponsePong {
		t.Fatalf("HandleInteraction(ping) = %+v, want pong", resp)
	}
}

func TestHandleComponent(t *testing.T) {
	h := NewInteractionHandler(&fakeNoteStore{}, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), &models.Interaction{Type: models.InteractionComponent})
	if resp == nil || resp.Type != models.ResponseChannelMessage {
		t.Fatalf("HandleInteraction(component) = %+v, want channel message", resp)
	}
	if resp.Data.Content != msgComponentAck {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgComponentAck)
	}
}

func TestHandleUnknownInteractionType(t *testing.T) {
	h := NewInteractionHandler(&fakeNoteStore{}, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), &models.Interaction{Type: 99})
	if resp != nil {
		t.Errorf("HandleInteraction(type 99) = %+v, want nil", resp)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	h := NewInteractionHandler(&fakeNoteStore{}, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("ban"))
	if resp.Data.Content != msgUnknownCommand {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgUnknownCommand)
	}
}

func TestHandleMemo(t *testing.T) {
	store := &fakeNoteStore{}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	interaction := commandInteraction("memo", models.CommandOption{Name: "content", Value: "牛乳を買う"})
	resp := h.HandleInteraction(context.Background(), interaction)

	if store.saveCalls != 1 {
		t.Fatalf("saveCalls = %d, want 1", store.saveCalls)
	}
	if store.lastSaveUser != "user-1" {
		t.Errorf("saved owner = %q, want user-1", store.lastSaveUser)
	}
	if store.lastSaveContent != "牛乳を買う" {
		t.Errorf("saved content = %q, want 牛乳を買う", store.lastSaveContent)
	}
	if !strings.Contains(resp.Data.Content, "牛乳を買う") {
		t.Errorf("reply %q should echo the saved content", resp.Data.Content)
	}
}

func TestHandleMemoMissingContent(t *testing.T) {
	store := &fakeNoteStore{}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("memo"))

	if resp.Data.Content != msgMemoMissingContent {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgMemoMissingContent)
	}
	if store.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0 for missing option", store.saveCalls)
	}
}

func TestHandleMemoStorageFailure(t *testing.T) {
	store := &fakeNoteStore{saveErr: errors.New("table gone")}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	interaction := commandInteraction("memo", models.CommandOption{Name: "content", Value: "x"})
	resp := h.HandleInteraction(context.Background(), interaction)

	if resp.Data.Content != msgMemoSaveFailed {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgMemoSaveFailed)
	}
	if strings.Contains(resp.Data.Content, "table gone") {
		t.Error("raw storage error must not reach the user")
	}
}

func TestHandleList(t *testing.T) {
	store := &fakeNoteStore{notes: []models.Note{
		{ID: 3, Content: "三つ目"},
		{ID: 2, Content: "二つ目"},
		{ID: 1, Content: "一つ目"},
	}}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("list"))

	if store.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1", store.listCalls)
	}
	for _, want := range []string{"1. [ID:3] 三つ目", "2. [ID:2] 二つ目", "3. [ID:1] 一つ目"} {
		if !strings.Contains(resp.Data.Content, want) {
			t.Errorf("reply missing line %q in %q", want, resp.Data.Content)
		}
	}
}

func TestHandleListEmpty(t *testing.T) {
	h := NewInteractionHandler(&fakeNoteStore{}, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("list"))
	if resp.Data.Content != msgListEmpty {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgListEmpty)
	}
}

func TestHandleListStorageFailure(t *testing.T) {
	store := &fakeNoteStore{listErr: errors.New("throttled")}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("list"))
	if resp.Data.Content != msgListFailed {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgListFailed)
	}
}

func TestHandleDelete(t *testing.T) {
	store := &fakeNoteStore{deleted: true}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	interaction := commandInteraction("delete", models.CommandOption{Name: "id", Value: float64(7)})
	resp := h.HandleInteraction(context.Background(), interaction)

	if store.deleteCalls != 1 {
		t.Fatalf("deleteCalls = %d, want 1", store.deleteCalls)
	}
	if store.lastDeleteUser != "user-1" || store.lastDeleteID != 7 {
		t.Errorf("delete(%q, %d), want (user-1, 7)", store.lastDeleteUser, store.lastDeleteID)
	}
	if !strings.Contains(resp.Data.Content, "ID:7") {
		t.Errorf("reply %q should mention the deleted ID", resp.Data.Content)
	}
}

func TestHandleDeleteNotOwned(t *testing.T) {
	// The store reports no row matched both id and owner
	store := &fakeNoteStore{deleted: false}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	interaction := commandInteraction("delete", models.CommandOption{Name: "id", Value: float64(9)})
	resp := h.HandleInteraction(context.Background(), interaction)

	if !strings.Contains(resp.Data.Content, "そんなメモないけど") {
		t.Errorf("reply = %q, want the not-found message", resp.Data.Content)
	}
}

func TestHandleDeleteMissingID(t *testing.T) {
	store := &fakeNoteStore{}
	h := NewInteractionHandler(store, &fakePipelineStarter{})

	resp := h.HandleInteraction(context.Background(), commandInteraction("delete"))

	if resp.Data.Content != msgDeleteMissingID {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgDeleteMissingID)
	}
	if store.deleteCalls != 0 {
		t.Errorf("deleteCalls = %d, want 0 for missing option", store.deleteCalls)
	}
}

func TestHandleChatDefers(t *testing.T) {
	starter := &fakePipelineStarter{}
	h := NewInteractionHandler(&fakeNoteStore{}, starter)

	interaction := commandInteraction("gori", models.CommandOption{Name: "message", Value: "おはよう"})
	resp := h.HandleInteraction(context.Background(), interaction)

	if resp.Type != models.ResponseDeferredMessage {
		t.Fatalf("response type = %d, want %d", resp.Type, models.ResponseDeferredMessage)
	}
	if starter.startCalls != 1 {
		t.Fatalf("startCalls = %d, want 1", starter.startCalls)
	}

	input := starter.lastInput
	if input.Command != "gori" || input.Message != "おはよう" {
		t.Errorf("pipeline input command/message = %q/%q", input.Command, input.Message)
	}
	if input.ApplicationID != "app-1" || input.InteractionToken != "token-1" {
		t.Errorf("pipeline input app/token = %q/%q", input.ApplicationID, input.InteractionToken)
	}
	if input.ChannelID != "channel-1" || input.GuildID != "guild-1" {
		t.Errorf("pipeline input channel/guild = %q/%q", input.ChannelID, input.GuildID)
	}
	if input.Nickname != "ゴリ部下" {
		t.Errorf("pipeline input nickname = %q, want ゴリ部下", input.Nickname)
	}
	if input.RequestID == "" {
		t.Error("pipeline input should carry a request ID")
	}
}

func TestHandleChatAlias(t *testing.T) {
	starter := &fakePipelineStarter{}
	h := NewInteractionHandler(&fakeNoteStore{}, starter)

	interaction := commandInteraction("ゴリ", models.CommandOption{Name: "message", Value: "おい"})
	h.HandleInteraction(context.Background(), interaction)

	if starter.lastInput == nil || starter.lastInput.Command != "gori" {
		t.Errorf("alias should normalize to gori, got %+v", starter.lastInput)
	}
}

func TestHandleChatMissingMessage(t *testing.T) {
	starter := &fakePipelineStarter{}
	h := NewInteractionHandler(&fakeNoteStore{}, starter)

	resp := h.HandleInteraction(context.Background(), commandInteraction("gori"))

	if resp.Data.Content != msgChatMissingMessage {
		t.Errorf("content = %q, want %q", resp.Data.Content, msgChatMissingMessage)
	}
	if starter.startCalls != 0 {
		t.Errorf("startCalls = %d, want 0 for missing option", starter.startCalls)
	}
}

func TestHandleChatPipelineStartFailure(t *testing.T) {
	starter := &fakePipelineStarter{startErr: errors.New("states unavailable")}
	h := NewInteractionHandler(&fakeNoteStore{}, starter)

	interaction := commandInteraction("godgori", models.CommandOption{Name: "message", Value: "頼む"})
	resp := h.HandleInteraction(context.Background(), interaction)

	if resp.Type != models.ResponseChannelMessage || resp.Data.Content != msgCommandError {
		t.Errorf("response = %+v, want immediate %q", resp, msgCommandError)
	}
}
