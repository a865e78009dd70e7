package session

import (
	"context"
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTResolver(t *testing.T) {
	ctx := context.Background()
	clock := sharedDomain.NewFixedClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	resolver, err := NewJWTResolver("s3cret", "focusos", clock)
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := resolver.Issue(userID, time.Hour)
		require.NoError(t, err)

		got, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := resolver.Issue(userID, time.Hour)
		require.NoError(t, err)

		later := sharedDomain.NewFixedClock(clock.Now().Add(2 * time.Hour))
		verifier, err := NewJWTResolver("s3cret", "focusos", later)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTResolver("other", "focusos", clock)
		require.NoError(t, err)
		token, err := other.Issue(userID, time.Hour)
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "focusos",
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("secret required", func(t *testing.T) {
		_, err := NewJWTResolver("", "", nil)
		assert.Error(t, err)
	})
}

func TestStaticResolver(t *testing.T) {
	userID := uuid.New()
	got, err := StaticResolver{UserID: userID}.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = StaticResolver{}.Resolve(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	userID := uuid.New()
	got, ok := UserIDFromContext(WithUserID(context.Background(), userID))
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}
