package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/calendarapp/calendar-service/internal/client/api"
	"github.com/calendarapp/calendar-service/internal/client/session"
	"github.com/calendarapp/calendar-service/internal/client/storage"
)

type recordingRenderer struct {
	mu     sync.Mutex
	frames []string
}

func (r *recordingRenderer) Loading() { r.add("loading") }

func (r *recordingRenderer) Public(msg string) {
	if msg != "" {
		r.add("public:" + msg)
		return
	}
	r.add("public")
}

func (r *recordingRenderer) Protected(user session.User) { r.add("protected:" + user.Name) }

func (r *recordingRenderer) add(frame string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingRenderer) Frames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.frames...)
}

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (api.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *mockBackend) Register(ctx context.Context, name, email, password string) (api.AuthResponse, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *mockBackend) Renew(ctx context.Context) (api.AuthResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func TestGate_BootWithoutToken(t *testing.T) {
	backend := &mockBackend{}
	s := session.New(backend, storage.NewMemoryStore())
	renderer := &recordingRenderer{}

	unmount := New(s, renderer).Mount(context.Background())
	defer unmount()

	assert.Equal(t, []string{"loading", "public"}, renderer.Frames())
	backend.AssertNotCalled(t, "Renew", mock.Anything)
}

func TestGate_BootWithTokenRenewsOnce(t *testing.T) {
	backend := &mockBackend{}
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.Credentials{Token: "tok", IssuedAt: time.Now()}))
	backend.On("Renew", mock.Anything).
		Return(api.AuthResponse{OK: true, UID: "u-1", Name: "Test User", Token: "tok-2"}, nil).Once()

	s := session.New(backend, store)
	renderer := &recordingRenderer{}
	g := New(s, renderer)

	unmount := g.Mount(context.Background())
	defer unmount()
	g.Mount(context.Background())

	assert.Equal(t, []string{"loading", "protected:Test User"}, renderer.Frames())
	backend.AssertNumberOfCalls(t, "Renew", 1)
}

func TestGate_NoRenewWhenAlreadySettled(t *testing.T) {
	backend := &mockBackend{}
	s := session.New(backend, storage.NewMemoryStore())
	s.Logout()
	renderer := &recordingRenderer{}

	unmount := New(s, renderer).Mount(context.Background())
	defer unmount()

	assert.Equal(t, []string{"public"}, renderer.Frames())
	backend.AssertNotCalled(t, "Renew", mock.Anything)
}

func TestGate_FollowsSessionChanges(t *testing.T) {
	backend := &mockBackend{}
	backend.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(api.AuthResponse{OK: true, UID: "u-1", Name: "Test User", Token: "tok"}, nil)
	s := session.New(backend, storage.NewMemoryStore(), session.WithErrorTTL(0))
	renderer := &recordingRenderer{}

	unmount := New(s, renderer).Mount(context.Background())
	s.Login(context.Background(), "test@test.com", "password123")
	s.Logout()
	unmount()
	s.Login(context.Background(), "test@test.com", "password123")

	assert.Equal(t, []string{"loading", "public", "loading", "protected:Test User", "public"}, renderer.Frames())
}

// racingSession hands the listener its snapshot and then a newer state, the way a
// transition landing during Mount would.
type racingSession struct {
	newer  session.State
	renews int
}

func (r *racingSession) Watch(listener session.Listener) (session.State, func()) {
	listener(session.Checking{})
	listener(r.newer)
	return session.Checking{}, func() {}
}

func (r *racingSession) RenewSilently(context.Context) session.State {
	r.renews++
	return r.newer
}

func TestGate_MountNeverRedrawsOlderSnapshot(t *testing.T) {
	s := &racingSession{newer: session.Authenticated{User: session.User{UID: "u-1", Name: "Test User"}}}
	renderer := &recordingRenderer{}

	unmount := New(s, renderer).Mount(context.Background())
	defer unmount()

	assert.Equal(t, []string{"loading", "protected:Test User"}, renderer.Frames())
	assert.Equal(t, 1, s.renews)
}
