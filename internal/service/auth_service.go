package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contacthub/internal/config"
	"contacthub/internal/ids"
	"contacthub/internal/models"
	"contacthub/internal/repository"
	"contacthub/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("account is not active")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

const resetKeyPrefix = "reset:"

type AuthService struct {
	users UserStore
	cache *redis.Client
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cache *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cache: cache,
		cfg:   cfg,
		log:   log,
	}
}

type LoginResult struct {
	User  models.User
	Token string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return LoginResult{}, ErrUserInactive
	}

	token, err := security.GenerateAccessToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		string(user.Role),
		s.cfg.Security.JWTAccessTTL,
	)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user, Token: token}, nil
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup creates the account in inactive status. Activation is an admin
// action; no token is issued here.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return models.User{}, fmt.Errorf("email and password required")
	}

	// Pre-check for a friendly answer; the unique index on users.email
	// still catches the race on Create.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, repository.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusInactive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ForgotPassword issues a single-use reset token. Unknown emails are ignored
// so the endpoint cannot be used to probe accounts. Token delivery happens
// out of band.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	key := resetKeyPrefix + token
	if err := s.cache.Set(ctx, key, user.ID, s.cfg.Security.ResetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset token issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrResetTokenInvalid
	}

	key := resetKeyPrefix + token
	userID, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	// Single use: drop the token before touching the password so a raced
	// second submit fails cleanly.
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("invalidate reset token: %w", err)
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}
