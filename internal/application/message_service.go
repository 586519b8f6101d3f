package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
	"github.com/cicd-demo/board-service/internal/platform/apperror"
)

// CreateMessageRequest is the request DTO for posting a message.
// Text is not validated.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// MessageDTO is the API representation of a message.
type MessageDTO struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageService implements the message board use cases.
type MessageService struct {
	repo      msgDomain.MessageRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo msgDomain.MessageRepository, publisher EventPublisher, logger *zap.Logger) *MessageService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &MessageService{repo: repo, publisher: publisher, logger: logger}
}

// ListMessages returns every message, newest first.
func (s *MessageService) ListMessages(ctx context.Context) ([]MessageDTO, error) {
	msgs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("failed to list messages", err)
	}
	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = toMessageDTO(m)
	}
	return dtos, nil
}

// CreateMessage persists a new message and returns it with its id.
func (s *MessageService) CreateMessage(ctx context.Context, req CreateMessageRequest) (*MessageDTO, error) {
	msg := msgDomain.NewMessage(req.Text)

	if err := s.repo.Save(ctx, msg); err != nil {
		s.logger.Error("failed to create message", zap.Error(err))
		return nil, apperror.NewInternalError("failed to create message", err)
	}

	s.logger.Info("message created",
		zap.Int64("message_id", msg.ID()),
		zap.Int("text_length", len(msg.Text())),
	)

	evt := msgDomain.CreatedEvent{
		MessageID:  msg.ID(),
		Text:       msg.Text(),
		Timestamp:  msg.Timestamp(),
		OccurredAt: time.Now().UTC(),
	}
	publishEvent(ctx, s.publisher, s.logger, msgDomain.TopicMessageEvents, msgDomain.EventMessageCreated,
		strconv.FormatInt(msg.ID(), 10), evt)

	result := toMessageDTO(msg)
	return &result, nil
}

func toMessageDTO(m *msgDomain.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID(),
		Text:      m.Text(),
		Timestamp: m.Timestamp(),
	}
}
