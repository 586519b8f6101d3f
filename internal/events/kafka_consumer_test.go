package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/application"
	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
	"github.com/cicd-demo/board-service/internal/platform/kafka"
)

type savingRepo struct {
	saved []*msgDomain.Message
	err   error
}

func (r *savingRepo) FindAll(context.Context) ([]*msgDomain.Message, error) { return r.saved, nil }

func (r *savingRepo) Save(_ context.Context, msg *msgDomain.Message) error {
	if r.err != nil {
		return r.err
	}
	msg.AssignID(int64(len(r.saved) + 1))
	r.saved = append(r.saved, msg)
	return nil
}

func newTestConsumer(repo *savingRepo) *MessageIngestConsumer {
	log := zap.NewNop()
	return &MessageIngestConsumer{
		service: application.NewMessageService(repo, nil, log),
		logger:  log,
	}
}

func eventMessage(t *testing.T, eventType string, data any) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("test", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestHandleSubmittedCreatesMessage(t *testing.T) {
	repo := &savingRepo{}
	c := newTestConsumer(repo)

	msg := eventMessage(t, msgDomain.EventMessageSubmitted, msgDomain.SubmittedEvent{Text: "from kafka"})
	require.NoError(t, c.handleMessage(context.Background(), msg))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "from kafka", repo.saved[0].Text())
}

func TestHandleIgnoresOtherTypes(t *testing.T) {
	repo := &savingRepo{}
	c := newTestConsumer(repo)

	msg := eventMessage(t, msgDomain.EventMessageCreated, msgDomain.CreatedEvent{MessageID: 1})
	require.NoError(t, c.handleMessage(context.Background(), msg))
	assert.Empty(t, repo.saved)
}

func TestHandleDropsMalformed(t *testing.T) {
	repo := &savingRepo{}
	c := newTestConsumer(repo)

	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("garbage")}))

	bad := kafka.CloudEvent{Type: msgDomain.EventMessageSubmitted, Data: json.RawMessage(`"not an object"`)}
	raw, err := json.Marshal(bad)
	require.NoError(t, err)
	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: raw}))
	assert.Empty(t, repo.saved)
}

func TestHandleReturnsPersistenceError(t *testing.T) {
	dbErr := errors.New("db down")
	c := newTestConsumer(&savingRepo{err: dbErr})

	msg := eventMessage(t, msgDomain.EventMessageSubmitted, msgDomain.SubmittedEvent{Text: "x"})
	assert.ErrorIs(t, c.handleMessage(context.Background(), msg), dbErr)
}
