package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskmanager-api/internal/api/metrics"
	"github.com/taskforge/taskmanager-api/internal/core/domain"
	"github.com/taskforge/taskmanager-api/internal/core/ports"
)

// bcryptCost matches the work factor the browser client's accounts were
// created with. Changing it only affects newly hashed passwords.
const bcryptCost = 12

const defaultTokenTTL = 7 * 24 * time.Hour

// LoginLimiter abstracts the brute-force throttle (Redis).
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login, and token issuance.
type AuthService struct {
	repo      ports.UserRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if len(password) < 6 {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		// Fail open: a broken throttle must not lock everybody out.
		throttled, err := s.limiter.TooManyAttempts(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if throttled {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	// Unknown email and wrong password produce the same error so a caller
	// cannot probe which addresses are registered.
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) issueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}
