// Package memory holds process-local repository implementations used when no
// database is configured.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/repository"
)

// UserRepository keeps users in a map keyed by id.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewUserRepository returns an empty store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, exists := r.byEmail[email]; exists {
		return repository.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	r.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
