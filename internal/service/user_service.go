package service

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contacthub/internal/config"
	"contacthub/internal/models"
	"contacthub/internal/repository"
)

// ErrTargetProtected covers the two rows an admin may never act on: their
// own account and any super-admin account.
var ErrTargetProtected = errors.New("target account cannot be managed")

type UserService struct {
	users UserStore
	queue *redis.Client
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUserService(users UserStore, queue *redis.Client, cfg *config.AppConfig, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		queue: queue,
		cfg:   cfg,
		log:   log,
	}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *models.UserRole
	Status    *models.UserStatus
}

func (s *UserService) Update(ctx context.Context, actor models.User, id string, input UserUpdateInput) (models.User, error) {
	if err := s.guardTarget(ctx, actor, id); err != nil {
		return models.User{}, err
	}

	update := repository.UserUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Status:    input.Status,
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		update.Email = &email
	}

	if err := s.users.Update(ctx, id, update); err != nil {
		return models.User{}, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes the account, its contacts (cascade) and, asynchronously,
// every photo object stored for them.
func (s *UserService) Delete(ctx context.Context, actor models.User, id string) error {
	if err := s.guardTarget(ctx, actor, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.enqueueUserPurge(ctx, id)
	return nil
}

// guardTarget rejects management actions against the acting user's own row
// and against super-admin rows. The client hides these affordances too, but
// the server is the authority.
func (s *UserService) guardTarget(ctx context.Context, actor models.User, targetID string) error {
	if actor.ID == targetID {
		return ErrTargetProtected
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == models.UserRoleSuperAdmin {
		return ErrTargetProtected
	}
	return nil
}

func (s *UserService) enqueueUserPurge(ctx context.Context, userID string) {
	if s.queue == nil {
		return
	}
	_, err := s.queue.XAdd(ctx, &redis.XAddArgs{
		Stream: s.cfg.Worker.Stream,
		Values: map[string]any{
			"type":   "user_purge",
			"userId": userID,
		},
	}).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("enqueue user purge failed")
	}
}
