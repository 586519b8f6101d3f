package message

import "time"

// Message is a single board post. It is immutable once persisted.
type Message struct {
	id        int64
	text      string
	timestamp time.Time
}

// NewMessage creates an unsaved message stamped with the current UTC time at
// microsecond precision, matching what a timestamptz column stores.
// Text is taken as given.
func NewMessage(text string) *Message {
	return &Message{
		text:      text,
		timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Reconstruct rebuilds a Message from persistence data.
func Reconstruct(id int64, text string, timestamp time.Time) *Message {
	return &Message{id: id, text: text, timestamp: timestamp}
}

func (m *Message) ID() int64            { return m.id }
func (m *Message) Text() string         { return m.text }
func (m *Message) Timestamp() time.Time { return m.timestamp }

// IsPersisted reports whether the store has assigned an id.
func (m *Message) IsPersisted() bool { return m.id > 0 }

// AssignID records the identifier chosen by the store. It only takes effect once.
func (m *Message) AssignID(id int64) {
	if m.id == 0 {
		m.id = id
	}
}
