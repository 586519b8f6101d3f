package message

import "time"

// Topics and event types for message lifecycle events.
const (
	TopicMessageEvents  = "message.events"
	TopicMessageInbound = "message.inbound"

	EventMessageCreated   = "message.created"
	EventMessageSubmitted = "message.submitted"
)

// CreatedEvent is published after a message is persisted.
type CreatedEvent struct {
	MessageID  int64     `json:"message_id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SubmittedEvent asks the board to create a message from another producer.
type SubmittedEvent struct {
	Text string `json:"text"`
}
