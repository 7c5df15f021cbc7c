package service

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lockerhub/locker-system/internal/api/metrics"
	"github.com/lockerhub/locker-system/internal/core/domain"
	"github.com/lockerhub/locker-system/internal/core/ports"
)

// AuthService implements login, registration, and server-side logout.
type AuthService struct {
	users     ports.UserRepository
	revoker   ports.TokenRevoker
	recorder  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	revoker ports.TokenRevoker,
	recorder ports.ActivityRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		revoker:   revoker,
		recorder:  recorder,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login authenticates by username/password or by RFID tag. Every failure
// mode collapses into domain.ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, creds ports.Credentials) (*ports.TokenDetails, *domain.User, error) {
	var (
		user   *domain.User
		err    error
		method = "password"
	)

	switch {
	case creds.RFIDTag != "":
		method = "rfid"
		user, err = s.users.FindByRFIDTag(ctx, creds.RFIDTag)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues(method, "failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
	case creds.Username != "" && creds.Password != "":
		user, err = s.users.FindByUsername(ctx, creds.Username)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues(method, "failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
			metrics.LoginsTotal.WithLabelValues(method, "failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
	default:
		return nil, nil, domain.ErrInvalidCredentials
	}

	details, err := s.generateToken(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues(method, "success").Inc()
	s.record(domain.ActivityEntry{
		Actor:     user.Username,
		ActorID:   user.ID,
		Action:    domain.ActionLogin,
		Details:   method,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", user.Username).Str("method", method).Msg("login")

	return details, user, nil
}

// Register creates a self-service account. The role is always "user";
// admin accounts are provisioned through the user management API.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Logout puts the token's jti on the revocation list for its remaining
// lifetime. An already expired token is a no-op.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, jti, ttl); err != nil {
		return err
	}
	s.log.Debug().Str("jti", jti).Msg("token revoked")
	return nil
}

// Profile returns the user behind a validated token.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (*ports.TokenDetails, error) {
	jti := uuid.NewString()
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     user.Role,
		"jti":      jti,
		"exp":      expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.TokenDetails{Token: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) record(entry domain.ActivityEntry) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(entry)
}
