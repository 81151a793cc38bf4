// Package session owns the client-side authentication state and the persisted token
// slot. All changes go through Login, Register, RenewSilently and Logout.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/client/api"
	"github.com/calendarapp/calendar-service/internal/client/storage"
)

const (
	// LoginFailedMessage is shown for every login failure, whatever the backend said.
	LoginFailedMessage = "Credenciales Incorrectas"
	// RegisterFallbackMessage is shown when a failed registration carries no message.
	RegisterFallbackMessage = "No fue posible completar el registro"
	// DefaultErrorTTL is how long an error message stays visible.
	DefaultErrorTTL = 3 * time.Second
)

// Backend is the subset of the request client the session drives.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (api.AuthResponse, error)
	Renew(ctx context.Context) (api.AuthResponse, error)
}

// Listener receives every state the session moves to. Listeners run synchronously
// and must not start another transition from inside the callback.
type Listener func(State)

// Session is the single source of truth for authentication on a client.
type Session struct {
	backend  Backend
	store    storage.TokenStore
	logger   *zap.Logger
	now      func() time.Time
	errorTTL time.Duration

	mu         sync.Mutex
	state      State
	gen        uint64
	clearTimer *time.Timer
	listeners  map[int]Listener
	nextID     int

	notifyMu  sync.Mutex
	delivered uint64
}

// Option customizes a Session.
type Option func(*Session)

// WithErrorTTL sets how long error messages survive. Zero or negative keeps them
// until the next transition.
func WithErrorTTL(ttl time.Duration) Option {
	return func(s *Session) { s.errorTTL = ttl }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for IssuedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session in the Checking state.
func New(backend Backend, store storage.TokenStore, opts ...Option) *Session {
	s := &Session{
		backend:   backend,
		store:     store,
		logger:    zap.NewNop(),
		now:       time.Now,
		errorTTL:  DefaultErrorTTL,
		state:     Checking{},
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Session) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.register(listener)
	s.mu.Unlock()
	return s.unsubscriber(id)
}

// register must be called with mu held.
func (s *Session) register(listener Listener) int {
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return id
}

func (s *Session) unsubscriber(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Watch registers listener and delivers the current state to it before any later
// transition. It returns that state along with a function that removes the listener.
// If a newer state reaches the listener first, the snapshot is not delivered.
func (s *Session) Watch(listener Listener) (current State, unsubscribe func()) {
	s.mu.Lock()
	current, gen := s.state, s.gen
	id := s.register(listener)
	s.mu.Unlock()
	unsubscribe = s.unsubscriber(id)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if s.delivered <= gen {
		listener(current)
	}
	return current, unsubscribe
}

// Login authenticates with email and password. Any failure yields NotAuthenticated
// with LoginFailedMessage; the backend's reason is logged, never shown.
func (s *Session) Login(ctx context.Context, email, password string) State {
	s.transition(Checking{})

	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.logger.Debug("login failed", zap.Error(err))
		s.clearStore()
		return s.transition(NotAuthenticated{ErrorMessage: LoginFailedMessage})
	}
	return s.authenticate(resp, LoginFailedMessage)
}

// Register creates an account and authenticates as it. Failures surface the backend
// message when there is one.
func (s *Session) Register(ctx context.Context, name, email, password string) State {
	s.transition(Checking{})

	resp, err := s.backend.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Debug("register failed", zap.Error(err))
		s.clearStore()
		return s.transition(NotAuthenticated{ErrorMessage: registerMessage(err)})
	}
	return s.authenticate(resp, RegisterFallbackMessage)
}

// RenewSilently exchanges the stored token for a fresh one. Without a stored token it
// settles on NotAuthenticated without calling the backend.
func (s *Session) RenewSilently(ctx context.Context) State {
	if _, ok := s.store.Load(); !ok {
		return s.transition(NotAuthenticated{})
	}

	resp, err := s.backend.Renew(ctx)
	if err != nil {
		s.logger.Debug("renew failed", zap.Error(err))
		s.clearStore()
		return s.transition(NotAuthenticated{})
	}
	return s.authenticate(resp, "")
}

// Logout forgets the stored token. It never fails.
func (s *Session) Logout() State {
	s.clearStore()
	return s.transition(NotAuthenticated{})
}

// authenticate persists the token and moves to Authenticated. A session is never
// Authenticated without a stored token: a bad answer or a failed save clears the slot
// and settles on NotAuthenticated carrying failureMsg.
func (s *Session) authenticate(resp api.AuthResponse, failureMsg string) State {
	if resp.Token == "" || resp.UID == "" {
		s.logger.Warn("backend answered without token or uid")
		s.clearStore()
		return s.transition(NotAuthenticated{ErrorMessage: failureMsg})
	}
	if err := s.store.Save(storage.Credentials{Token: resp.Token, IssuedAt: s.now()}); err != nil {
		s.logger.Warn("persist token", zap.Error(err))
		s.clearStore()
		return s.transition(NotAuthenticated{ErrorMessage: failureMsg})
	}
	return s.transition(Authenticated{User: User{UID: resp.UID, Name: resp.Name}})
}

func (s *Session) clearStore() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("clear token", zap.Error(err))
	}
}

// transition installs next, arms the error auto-clear and notifies listeners in order.
func (s *Session) transition(next State) State {
	s.mu.Lock()
	gen := s.install(next)
	s.notifyAndUnlock(gen, next)
	return next
}

// expireError drops the error message unless another transition happened since gen.
func (s *Session) expireError(gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	next := NotAuthenticated{}
	s.notifyAndUnlock(s.install(next), next)
}

// install must be called with mu held. It returns the generation of next.
func (s *Session) install(next State) uint64 {
	s.gen++
	gen := s.gen
	s.state = next
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
	if na, ok := next.(NotAuthenticated); ok && na.ErrorMessage != "" && s.errorTTL > 0 {
		s.clearTimer = time.AfterFunc(s.errorTTL, func() { s.expireError(gen) })
	}
	return gen
}

// notifyAndUnlock releases mu and delivers next. A state older than one already
// delivered is dropped, so listeners never move backwards.
func (s *Session) notifyAndUnlock(gen uint64, next State) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if gen <= s.delivered {
		return
	}
	s.delivered = gen
	for _, l := range listeners {
		l(next)
	}
}

func registerMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return RegisterFallbackMessage
}
