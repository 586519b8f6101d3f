package message

import "context"

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// FindAll returns every message, newest first.
	FindAll(ctx context.Context) ([]*Message, error)

	// Save inserts a new message and assigns its id.
	Save(ctx context.Context, msg *Message) error
}
