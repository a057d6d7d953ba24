package models

import "time"

// Note is a single memo saved by a Discord user. Notes live in an
// externally managed DynamoDB table keyed by (user_id, id); a note is
// visible and deletable only by its owner.
type Note struct {
	UserID    string    `dynamodbav:"user_id"`
	ID        int64     `dynamodbav:"id"`
	Content   string    `dynamodbav:"content"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// Turn is one entry of the transient conversation context rebuilt per
// chat command from recent channel history. Never persisted.
type Turn struct {
	Speaker string
	Text    string
}

// ChannelMessage is a Discord channel message as returned by the
// history fetch, reduced to the fields the prompt builder needs.
type ChannelMessage struct {
	AuthorName string
	Bot        bool
	Content    string
}
