package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
)

func TestCreateThenList(t *testing.T) {
	ctx := context.Background()
	repo := &memoryMessageRepo{}
	svc := NewMessageService(repo, nil, zap.NewNop())

	created, err := svc.CreateMessage(ctx, CreateMessageRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "hello", created.Text)
	assert.WithinDuration(t, time.Now(), created.Timestamp, time.Second)

	list, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Text)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewMessageService(&memoryMessageRepo{}, nil, zap.NewNop())

	first, err := svc.CreateMessage(ctx, CreateMessageRequest{Text: "first"})
	require.NoError(t, err)
	second, err := svc.CreateMessage(ctx, CreateMessageRequest{Text: "second"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc := NewMessageService(&memoryMessageRepo{}, nil, zap.NewNop())

	list, err := svc.ListMessages(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreateMessagePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewMessageService(&memoryMessageRepo{}, pub, zap.NewNop())

	created, err := svc.CreateMessage(context.Background(), CreateMessageRequest{Text: "event me"})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	got := pub.events[0]
	assert.Equal(t, msgDomain.TopicMessageEvents, got.Topic)
	assert.Equal(t, "1", got.Key)
	assert.Equal(t, msgDomain.EventMessageCreated, got.Event.Type)

	var evt msgDomain.CreatedEvent
	require.NoError(t, got.Event.ParseData(&evt))
	assert.Equal(t, created.ID, evt.MessageID)
	assert.Equal(t, "event me", evt.Text)
}

func TestCreateMessageSurvivesPublishFailure(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewMessageService(&memoryMessageRepo{}, pub, zap.NewNop())

	created, err := svc.CreateMessage(context.Background(), CreateMessageRequest{Text: "still saved"})
	require.NoError(t, err)
	assert.Equal(t, "still saved", created.Text)
}

func TestPersistenceErrorsPropagate(t *testing.T) {
	dbErr := errors.New("connection refused")
	repo := &memoryMessageRepo{saveErr: dbErr, listErr: dbErr}
	pub := &recordingPublisher{}
	svc := NewMessageService(repo, pub, zap.NewNop())

	_, err := svc.CreateMessage(context.Background(), CreateMessageRequest{Text: "x"})
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, pub.events)

	_, err = svc.ListMessages(context.Background())
	assert.ErrorIs(t, err, dbErr)
}
