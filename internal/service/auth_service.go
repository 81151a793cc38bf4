package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/config"
	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/events"
	"github.com/calendarapp/calendar-service/internal/repository"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong password")
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// AuthResult is what every successful register, login or renew hands back.
type AuthResult struct {
	Claim domain.Claim
	Token domain.IssuedToken
}

// AuthService coordinates registration, login and token renewal.
type AuthService struct {
	users       repository.UserRepository
	attempts    repository.LoginAttemptRepository
	dispatcher  events.Dispatcher
	tokenMgr    *auth.TokenManager
	logger      *zap.Logger
	hasher      auth.PasswordHasher
	maxAttempts int
	lockWindow  time.Duration
}

// AuthDependencies encapsulates collaborators for the auth service. LoginAttempts and
// Dispatcher are optional.
type AuthDependencies struct {
	UserRepo      repository.UserRepository
	LoginAttempts repository.LoginAttemptRepository
	Dispatcher    events.Dispatcher
	Tokens        *auth.TokenManager
	Logger        *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		attempts:    deps.LoginAttempts,
		dispatcher:  deps.Dispatcher,
		tokenMgr:    deps.Tokens,
		logger:      logger,
		hasher:      auth.NewPasswordHasher(cfg.BcryptCost),
		maxAttempts: cfg.LoginMaxAttempts,
		lockWindow:  cfg.LoginLockWindow(),
	}
}

// RegisterUser creates an account and issues its first token.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	result, err := s.issue(user.Claim())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventUserRegistered, result)
	return result, nil
}

// LoginUser checks credentials and issues a token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*AuthResult, error) {
	if s.locked(ctx, email) {
		s.publishFailure(ctx, email, ErrTooManyAttempts)
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		s.recordFailure(ctx, email, ErrUserNotFound)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email, ErrWrongPassword)
		return nil, ErrWrongPassword
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, email); err != nil {
			s.logger.Warn("reset login attempts", zap.Error(err))
		}
	}

	result, err := s.issue(user.Claim())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventUserLoggedIn, result)
	return result, nil
}

// RenewToken reissues a token for a claim the gate already verified. The credential
// store is not consulted.
func (s *AuthService) RenewToken(ctx context.Context, claim domain.Claim) (*AuthResult, error) {
	result, err := s.issue(claim)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventTokenRenewed, result)
	return result, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(claim domain.Claim) (*AuthResult, error) {
	token, err := s.tokenMgr.Issue(claim)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return nil, err
	}
	return &AuthResult{Claim: claim, Token: token}, nil
}

func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.attempts == nil || s.maxAttempts <= 0 {
		return false
	}
	failures, err := s.attempts.Failures(ctx, email)
	if err != nil {
		s.logger.Warn("read login attempts", zap.Error(err))
		return false
	}
	return failures >= s.maxAttempts
}

func (s *AuthService) recordFailure(ctx context.Context, email string, reason error) {
	if s.attempts != nil {
		if _, err := s.attempts.RecordFailure(ctx, email, s.lockWindow); err != nil {
			s.logger.Warn("record login failure", zap.Error(err))
		}
	}
	s.publishFailure(ctx, email, reason)
}

func (s *AuthService) publishFailure(ctx context.Context, email string, reason error) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventLoginFailed, "", events.LoginFailedPayload{
		Email:  email,
		Reason: reason.Error(),
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish auth event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, result *AuthResult) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType, result.Claim.SubjectID, events.TokenIssuedPayload{
		Name:      result.Claim.DisplayName,
		ExpiresAt: result.Token.ExpiresAt,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish auth event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
