package repository

import (
	"context"
	"time"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/store"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// SessionRepository persists the current session snapshot. The collection
// holds at most one record under a fixed key so a restart resumes the last
// authenticated state.
type SessionRepository struct {
	sessions *store.Collection[models.Session]
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(s *store.Store) *SessionRepository {
	return &SessionRepository{sessions: s.Sessions}
}

// Save replaces the stored session snapshot.
func (r *SessionRepository) Save(ctx context.Context, user models.User, activeRole models.Role) (*models.Session, error) {
	session := models.Session{
		User:       user.Public(),
		ActiveRole: activeRole,
		LoginAt:    time.Now().UTC(),
	}
	if err := r.sessions.ReplaceAll(ctx, []models.Session{session}); err != nil {
		return nil, err
	}
	return &session, nil
}

// Current returns the stored session snapshot.
func (r *SessionRepository) Current(ctx context.Context) (*models.Session, error) {
	session, found, err := r.sessions.Get(ctx, models.SessionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no active session")
	}
	return &session, nil
}

// Clear removes the stored session snapshot.
func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.sessions.ReplaceAll(ctx, nil)
}
