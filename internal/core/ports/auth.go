package ports

import (
	"context"
	"time"

	"github.com/lockerhub/locker-system/internal/core/domain"
)

// Credentials carries either a username/password pair or an RFID tag.
// Exactly one path is used per login attempt.
type Credentials struct {
	Username string
	Password string
	RFIDTag  string
}

// TokenDetails describes an issued token so the transport layer can expire
// and revoke it without re-parsing.
type TokenDetails struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// AuthService implements login, registration, and logout.
type AuthService interface {
	// Login authenticates by password or RFID tag and mints a signed token.
	// Every failure mode surfaces as domain.ErrInvalidCredentials.
	Login(ctx context.Context, creds Credentials) (*TokenDetails, *domain.User, error)
	// Register creates a self-service account with the user role.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Logout revokes the token's jti for its remaining lifetime.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// Profile returns the user behind a validated token.
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// TokenRevoker is the server-side revocation list consulted on every
// authenticated request and written on logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
