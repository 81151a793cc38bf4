package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/calendarapp/calendar-service/internal/repository"
)

type attemptEntry struct {
	count     int
	expiresAt time.Time
}

// LoginAttemptRepository counts failures in process memory with per-key expiry.
type LoginAttemptRepository struct {
	mu      sync.Mutex
	entries map[string]attemptEntry
	now     func() time.Time
}

// NewLoginAttemptRepository returns an empty counter set. A nil clock means time.Now.
func NewLoginAttemptRepository(now func() time.Time) *LoginAttemptRepository {
	if now == nil {
		now = time.Now
	}
	return &LoginAttemptRepository{entries: make(map[string]attemptEntry), now: now}
}

func (r *LoginAttemptRepository) Failures(_ context.Context, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live(attemptKey(email)).count, nil
}

func (r *LoginAttemptRepository) RecordFailure(_ context.Context, email string, window time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attemptKey(email)
	entry := r.live(key)
	entry.count++
	entry.expiresAt = r.now().Add(window)
	r.entries[key] = entry
	return entry.count, nil
}

func (r *LoginAttemptRepository) Reset(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, attemptKey(email))
	return nil
}

func (r *LoginAttemptRepository) live(key string) attemptEntry {
	entry, ok := r.entries[key]
	if !ok || !r.now().Before(entry.expiresAt) {
		delete(r.entries, key)
		return attemptEntry{}
	}
	return entry
}

func attemptKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ repository.LoginAttemptRepository = (*LoginAttemptRepository)(nil)
