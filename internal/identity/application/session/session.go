// Package session resolves the user behind an API request.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSession    = errors.New("no session")
	ErrInvalidToken = errors.New("invalid session token")
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// Resolver maps a bearer token to a user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Claims are the JWT claims focusos issues. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTResolver validates HS256 tokens signed with a shared secret.
type JWTResolver struct {
	secret []byte
	issuer string
	clock  sharedDomain.Clock
}

// NewJWTResolver creates a resolver. A nil clock uses the system clock.
func NewJWTResolver(secret, issuer string, clock sharedDomain.Clock) (*JWTResolver, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if clock == nil {
		clock = sharedDomain.SystemClock{}
	}
	return &JWTResolver{secret: []byte(secret), issuer: issuer, clock: clock}, nil
}

// Issue signs a token for userID.
func (r *JWTResolver) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := r.clock.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    r.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

func (r *JWTResolver) Resolve(_ context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoSession
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(r.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}
	return userID, nil
}

// StaticResolver accepts every request as one fixed user. It backs the
// TEST_AUTH bypass for local development.
type StaticResolver struct {
	UserID uuid.UUID
}

func (r StaticResolver) Resolve(context.Context, string) (uuid.UUID, error) {
	if r.UserID == uuid.Nil {
		return uuid.Nil, ErrNoSession
	}
	return r.UserID, nil
}

type userKey struct{}

// WithUserID stores the resolved user on ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserIDFromContext returns the user stored by WithUserID.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
