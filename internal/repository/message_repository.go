package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
)

// MessageRepository manages the append-only chat attached to tutoring
// requests.
type MessageRepository struct {
	messages *store.Collection[models.Message]
}

// NewMessageRepository creates a new instance of MessageRepository.
func NewMessageRepository(s *store.Store) *MessageRepository {
	return &MessageRepository{messages: s.Messages}
}

// Create appends a message to the request's thread.
func (r *MessageRepository) Create(ctx context.Context, requestID, senderID, content string) (*models.Message, error) {
	message := models.Message{
		ID:        uuid.NewString(),
		RequestID: requestID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.messages.Insert(ctx, message); err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByRequest returns the thread in chronological order.
func (r *MessageRepository) ListByRequest(ctx context.Context, requestID string) ([]models.Message, error) {
	thread, err := r.messages.Filter(ctx, func(m models.Message) bool {
		return m.RequestID == requestID
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	return thread, nil
}

// DeleteByRequest removes every message in the request's thread.
func (r *MessageRepository) DeleteByRequest(ctx context.Context, requestID string) (int, error) {
	return r.messages.DeleteWhere(ctx, func(m models.Message) bool {
		return m.RequestID == requestID
	})
}
