package dynamodb

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goricho/gori-bot/pkg/models"
)

// Owner value of the ID counter item. Starts with an underscore so it
// can never collide with a Discord snowflake user ID.
const counterOwnerID = "_counter"

// Maximum notes returned by List
const maxListedNotes = 10

// NoteRepository handles DynamoDB operations for user memos.
// The table is keyed by (user_id S, id N); a single counter item holds
// the next note ID so IDs stay small, unique and monotonic.
type NoteRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(client *dynamodb.Client, tableName string) *NoteRepository {
	return &NoteRepository{
		client:    client,
		tableName: tableName,
	}
}

// Save stores a new note for the user and returns its assigned ID
func (r *NoteRepository) Save(ctx context.Context, userID, content string) (int64, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("allocate note id: %w", err)
	}

	note := models.Note{
		UserID:    userID,
		ID:        id,
		Content:   content,
		CreatedAt: time.Now(),
	}

	item, err := attributevalue.MarshalMap(note)
	if err != nil {
		return 0, fmt.Errorf("marshal note: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.tableName,
		Item:      item,
	})
	if err != nil {
		return 0, fmt.Errorf("put item: %w", err)
	}

	log.Printf("Saved note %d for user %s", id, userID)
	return id, nil
}

// List returns the user's notes, newest first, capped at 10.
// Only notes owned by userID are visible.
func (r *NoteRepository) List(ctx context.Context, userID string) ([]models.Note, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &r.tableName,
		KeyConditionExpression: stringPtr("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: boolPtr(false), // Highest ID (newest) first
		Limit:            int32Ptr(maxListedNotes),
	})
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}

	var notes []models.Note
	err = attributevalue.UnmarshalListOfMaps(result.Items, &notes)
	if err != nil {
		return nil, fmt.Errorf("unmarshal notes: %w", err)
	}

	return notes, nil
}

// Delete removes the note only if both the ID and owner match; the
// composite key is the sole authorization check. Returns false when no
// such note exists for this user.
func (r *NoteRepository) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	result, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
			"id":      &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	if len(result.Attributes) == 0 {
		return false, nil
	}

	log.Printf("Deleted note %d for user %s", id, userID)
	return true, nil
}

// nextID atomically increments and returns the shared note ID counter
func (r *NoteRepository) nextID(ctx context.Context) (int64, error) {
	updateExpr := "SET next_id = if_not_exists(next_id, :zero) + :one"
	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: counterOwnerID},
			"id":      &types.AttributeValueMemberN{Value: "0"},
		},
		UpdateExpression: &updateExpr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":one":  &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("update counter: %w", err)
	}

	attr, ok := result.Attributes["next_id"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter attribute missing from update result")
	}

	id, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter value %q: %w", attr.Value, err)
	}

	return id, nil
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func int32Ptr(i int32) *int32 {
	return &i
}
