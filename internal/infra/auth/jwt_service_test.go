package auth

import (
	"strings"
	"testing"
	"time"

	"genrelens/config"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Session = secret
	cfg.Session.TTL = ttl

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	jwtSvc := svc.(*jwtService)

	issuedAt := time.Now()
	jwtSvc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	jwtSvc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.Verify(token)
	assert.NoError(t, err, "token must still be valid just before expiry")

	jwtSvc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("test_session_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Re-sign a different subject with another key and splice in the original signature.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	forgedString, err := forged.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	forgedParts := strings.Split(forgedString, ".")
	spliced := forgedParts[0] + "." + forgedParts[1] + "." + parts[2]

	claims, err := svc.Verify(spliced)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	claims, err = svc.Verify(forgedString)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	secret := "test_session_secret_key_very_long_for_testing"
	svc, err := NewJWTService(newTestConfig(secret, time.Hour))
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_MalformedAndMissingClaims(t *testing.T) {
	secret := "test_session_secret_key_very_long_for_testing"
	svc, err := NewJWTService(newTestConfig(secret, time.Hour))
	require.NoError(t, err)

	_, err = svc.Verify("clearly-not-a-jwt-token-format")
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: uuid.NewString()})
	signed, err := noExpiry.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err = badSubject.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "session signing secret must be provided")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("secret", 0))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}
