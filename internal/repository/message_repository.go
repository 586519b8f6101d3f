package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
)

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"type:timestamptz;not null;index:idx_messages_timestamp,sort:desc"`
}

// TableName returns the table name for the GORM model.
func (MessageModel) TableName() string {
	return "messages"
}

// GormMessageRepository is the GORM-based implementation of MessageRepository.
type GormMessageRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewGormMessageRepository creates a new GormMessageRepository. A positive
// queryTimeout bounds every call.
func NewGormMessageRepository(db *gorm.DB, queryTimeout time.Duration) *GormMessageRepository {
	return &GormMessageRepository{db: db, queryTimeout: queryTimeout}
}

func (r *GormMessageRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// FindAll returns every message, newest first.
func (r *GormMessageRepository) FindAll(ctx context.Context) ([]*msgDomain.Message, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var models []MessageModel
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}

	msgs := make([]*msgDomain.Message, len(models))
	for i := range models {
		msgs[i] = toDomainMessage(&models[i])
	}
	return msgs, nil
}

// Save inserts msg and assigns the generated id.
func (r *GormMessageRepository) Save(ctx context.Context, msg *msgDomain.Message) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	model := toMessageModel(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	msg.AssignID(model.ID)
	return nil
}

// --- Conversions ---

func toMessageModel(m *msgDomain.Message) *MessageModel {
	return &MessageModel{
		ID:        m.ID(),
		Text:      m.Text(),
		Timestamp: m.Timestamp(),
	}
}

func toDomainMessage(m *MessageModel) *msgDomain.Message {
	return msgDomain.Reconstruct(m.ID, m.Text, m.Timestamp)
}
