package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	before := time.Now().UTC()
	msg := NewMessage("hello")

	assert.Equal(t, "hello", msg.Text())
	assert.False(t, msg.IsPersisted())
	assert.Zero(t, msg.ID())
	assert.WithinDuration(t, before, msg.Timestamp(), time.Second)
	assert.Equal(t, time.UTC, msg.Timestamp().Location())
}

func TestNewMessageTimestampHasMicrosecondPrecision(t *testing.T) {
	for i := 0; i < 100; i++ {
		ts := NewMessage("x").Timestamp()
		assert.Zero(t, ts.Nanosecond()%int(time.Microsecond))
		assert.True(t, ts.Equal(ts.Truncate(time.Microsecond)))
	}
}

func TestNewMessageAcceptsAnyText(t *testing.T) {
	assert.Equal(t, "", NewMessage("").Text())
	assert.Equal(t, "  spaced  ", NewMessage("  spaced  ").Text())
}

func TestAssignIDOnlyOnce(t *testing.T) {
	msg := NewMessage("hello")

	msg.AssignID(3)
	msg.AssignID(9)

	assert.Equal(t, int64(3), msg.ID())
	assert.True(t, msg.IsPersisted())
}

func TestReconstruct(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := Reconstruct(42, "stored", ts)

	assert.Equal(t, int64(42), msg.ID())
	assert.Equal(t, "stored", msg.Text())
	assert.Equal(t, ts, msg.Timestamp())
}
