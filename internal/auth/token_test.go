package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendarapp/calendar-service/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret-seed", 2*time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.Error(t, err)
	})

	t.Run("defaults ttl", func(t *testing.T) {
		tm, err := NewTokenManager("secret", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenTTL, tm.TTL())
	})
}

func TestTokenManager_IssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	claims := []domain.Claim{
		{SubjectID: "683bd2ab4ee199f486751bb8", DisplayName: "Test User"},
		{SubjectID: "u-1", DisplayName: ""},
		{SubjectID: "u-2", DisplayName: "Ñandú Pérez"},
	}

	for _, claim := range claims {
		issued, err := tm.Issue(claim)
		require.NoError(t, err)
		assert.NotEmpty(t, issued.Value)
		assert.Equal(t, clock.now.Add(2*time.Hour), issued.ExpiresAt)

		clock.now = clock.now.Add(time.Hour + 59*time.Minute)
		got, err := tm.Verify(issued.Value)
		require.NoError(t, err)
		assert.Equal(t, claim, got)
		clock.now = clock.now.Add(-(time.Hour + 59*time.Minute))
	}
}

func TestTokenManager_VerifyFailuresAreIndistinguishable(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	issued, err := tm.Issue(domain.Claim{SubjectID: "u-1", DisplayName: "Test User"})
	require.NoError(t, err)

	parts := strings.Split(issued.Value, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	other, err := NewTokenManager("another-secret", time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.Issue(domain.Claim{SubjectID: "u-1", DisplayName: "Test User"})
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":      "invalidToken",
		"empty":          "",
		"tampered":       tampered,
		"foreign secret": foreign.Value,
	}

	var errs []error
	for name, token := range cases {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
		errs = append(errs, err)
	}

	clock.now = clock.now.Add(2*time.Hour + time.Second)
	_, expiredErr := tm.Verify(issued.Value)
	errs = append(errs, expiredErr)

	for _, err := range errs {
		assert.Equal(t, ErrInvalidToken, err)
		assert.Equal(t, ErrInvalidToken.Error(), err.Error())
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	tm := newTestManager(t, &fakeClock{now: time.Now()})

	claims := &Claims{
		UID:  "u-1",
		Name: "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RequiresExpiry(t *testing.T) {
	tm := newTestManager(t, &fakeClock{now: time.Now()})

	claims := &Claims{UID: "u-1", Name: "Test User"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-seed"))
	require.NoError(t, err)

	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
