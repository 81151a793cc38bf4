package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/calendarapp/calendar-service/internal/domain"
)

// ErrInvalidToken is the only verification failure callers observe. Expired,
// malformed and tampered tokens all collapse into it.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the lifetime applied when none is configured.
const DefaultTokenTTL = 2 * time.Hour

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. An empty secret is a configuration error.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issue signs a token for the claim that expires ttl from now.
func (tm *TokenManager) Issue(claim domain.Claim) (domain.IssuedToken, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UID:  claim.SubjectID,
		Name: claim.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.SubjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.IssuedToken{Value: tokenString, ExpiresAt: expiresAt}, nil
}

// Verify checks signature and expiry and returns the embedded claim.
func (tm *TokenManager) Verify(tokenStr string) (domain.Claim, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return domain.Claim{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UID == "" {
		return domain.Claim{}, ErrInvalidToken
	}
	return domain.Claim{SubjectID: claims.UID, DisplayName: claims.Name}, nil
}

// TTL returns the lifetime applied to issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
