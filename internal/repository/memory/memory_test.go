package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/repository"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &domain.User{Name: "Test User", Email: "New@Test.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByEmail(ctx, "new@test.com")
	require.NoError(t, err)
	assert.Equal(t, "Test User", got.Name)

	err = repo.Create(ctx, &domain.User{Name: "Other", Email: "new@test.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	_, err = repo.GetByEmail(ctx, "missing@test.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestEventRepository(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()
	owner := &domain.User{Name: "Fernando", Email: "f@test.com"}
	require.NoError(t, users.Create(ctx, owner))

	repo := NewEventRepository(users)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	late := &domain.CalendarEvent{Title: "late", Start: base.Add(48 * time.Hour), End: base.Add(49 * time.Hour), UserID: owner.ID}
	early := &domain.CalendarEvent{Title: "early", Start: base, End: base.Add(time.Hour), UserID: owner.ID}
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	all, err := repo.List(ctx, repository.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "early", all[0].Title)
	assert.Equal(t, "Fernando", all[0].UserName)

	to := base.Add(2 * time.Hour)
	ranged, err := repo.List(ctx, repository.EventFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)

	early.Title = "renamed"
	require.NoError(t, repo.Update(ctx, early))
	got, err := repo.GetByID(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	require.NoError(t, repo.Delete(ctx, early.ID))
	assert.ErrorIs(t, repo.Delete(ctx, early.ID), pgx.ErrNoRows)
	_, err = repo.GetByID(ctx, early.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestLoginAttemptRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := NewLoginAttemptRepository(func() time.Time { return now })

	for i := 1; i <= 3; i++ {
		n, err := repo.RecordFailure(ctx, "A@test.com", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, _ := repo.Failures(ctx, "a@test.com")
	assert.Equal(t, 3, n)

	now = now.Add(2 * time.Minute)
	n, _ = repo.Failures(ctx, "a@test.com")
	assert.Equal(t, 0, n)

	_, _ = repo.RecordFailure(ctx, "a@test.com", time.Minute)
	require.NoError(t, repo.Reset(ctx, "a@test.com"))
	n, _ = repo.Failures(ctx, "a@test.com")
	assert.Equal(t, 0, n)
}
