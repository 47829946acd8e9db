package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"contacthub/internal/config"
	"contacthub/internal/ids"
	"contacthub/internal/models"
	"contacthub/internal/photo"
	"contacthub/internal/repository"
	"contacthub/internal/storage"
)

var (
	ErrNotOwner           = errors.New("not the contact owner")
	ErrMissingFields      = errors.New("missing required fields")
	ErrShareWithOwner     = errors.New("cannot share a contact with its owner")
	ErrShareTargetUnknown = errors.New("no user with that email")
)

type ContactService struct {
	contacts ContactStore
	users    UserStore
	store    *storage.ObjectStore
	queue    *redis.Client
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewContactService(
	contacts ContactStore,
	users UserStore,
	store *storage.ObjectStore,
	queue *redis.Client,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *ContactService {
	return &ContactService{
		contacts: contacts,
		users:    users,
		store:    store,
		queue:    queue,
		cfg:      cfg,
		log:      log,
	}
}

func (s *ContactService) List(ctx context.Context, user models.User) ([]models.Contact, error) {
	return s.contacts.ListVisible(ctx, user.ID)
}

// Get returns the contact when the caller owns it or holds a share grant.
// Invisible contacts are indistinguishable from missing ones.
func (s *ContactService) Get(ctx context.Context, user models.User, id string) (models.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	if contact.OwnerID != user.ID && !contact.SharedWithUser(user.ID) {
		return models.Contact{}, repository.ErrContactNotFound
	}
	return contact, nil
}

type ContactInput struct {
	FirstName     string
	LastName      string
	ContactNumber string
	EmailAddress  string
	PhotoFile     multipart.File
	PhotoHeader   *multipart.FileHeader
}

func (s *ContactService) Create(ctx context.Context, user models.User, input ContactInput) (models.Contact, error) {
	if input.FirstName == "" || input.LastName == "" || input.ContactNumber == "" || input.EmailAddress == "" {
		return models.Contact{}, ErrMissingFields
	}

	contact := models.Contact{
		ID:            ids.New(),
		OwnerID:       user.ID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		ContactNumber: input.ContactNumber,
		EmailAddress:  input.EmailAddress,
	}

	if input.PhotoFile != nil {
		bucket, key, err := s.storePhoto(ctx, user.ID, contact.ID, input.PhotoFile, input.PhotoHeader)
		if err != nil {
			return models.Contact{}, err
		}
		contact.PhotoBucket = &bucket
		contact.PhotoKey = &key
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return models.Contact{}, err
	}
	return s.contacts.GetByID(ctx, contact.ID)
}

type ContactUpdateInput struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
	EmailAddress  *string
	PhotoFile     multipart.File
	PhotoHeader   *multipart.FileHeader
}

// Update applies a partial update. Only owners may mutate a contact.
func (s *ContactService) Update(ctx context.Context, user models.User, id string, input ContactUpdateInput) (models.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	if contact.OwnerID != user.ID {
		return models.Contact{}, ErrNotOwner
	}

	update := repository.ContactUpdate{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		ContactNumber: input.ContactNumber,
		EmailAddress:  input.EmailAddress,
	}

	if input.PhotoFile != nil {
		bucket, key, err := s.storePhoto(ctx, user.ID, contact.ID, input.PhotoFile, input.PhotoHeader)
		if err != nil {
			return models.Contact{}, err
		}
		update.PhotoBucket = &bucket
		update.PhotoKey = &key

		if contact.PhotoKey != nil && *contact.PhotoKey != key {
			s.enqueuePhotoCleanup(ctx, *contact.PhotoBucket, *contact.PhotoKey)
		}
	}

	if err := s.contacts.Update(ctx, id, update); err != nil {
		return models.Contact{}, err
	}
	return s.contacts.GetByID(ctx, id)
}

// Delete removes the contact and, through the shares table, every grant on
// it. The photo object is cleaned up asynchronously.
func (s *ContactService) Delete(ctx context.Context, user models.User, id string) error {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact.OwnerID != user.ID {
		return ErrNotOwner
	}

	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}

	if contact.PhotoKey != nil {
		s.enqueuePhotoCleanup(ctx, *contact.PhotoBucket, *contact.PhotoKey)
	}
	return nil
}

func (s *ContactService) Share(ctx context.Context, user models.User, id string, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact.OwnerID != user.ID {
		return ErrNotOwner
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrShareTargetUnknown
		}
		return err
	}
	if target.ID == contact.OwnerID {
		return ErrShareWithOwner
	}

	return s.contacts.AddShare(ctx, id, models.ShareEntry{
		UserID: target.ID,
		Email:  target.Email,
	})
}

func (s *ContactService) Unshare(ctx context.Context, user models.User, id string, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact.OwnerID != user.ID {
		return ErrNotOwner
	}

	return s.contacts.RemoveShare(ctx, id, email)
}

func (s *ContactService) storePhoto(ctx context.Context, ownerID, contactID string, file multipart.File, header *multipart.FileHeader) (bucket string, key string, err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return "", "", errors.New("empty photo upload")
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := photo.Detect(head)
	if err != nil {
		return "", "", err
	}

	declared := photo.DeclaredMIME(header)
	if declared != "" && declared != result.MIME {
		return "", "", fmt.Errorf("content type mismatch: declared %s, actual %s", declared, result.MIME)
	}

	key = path.Join(ownerID, fmt.Sprintf("%s.%s", contactID, result.Format))
	if err := s.store.PutPhoto(ctx, key, bytes.NewReader(data), int64(len(data)), result.MIME); err != nil {
		return "", "", err
	}
	return s.store.Bucket(), key, nil
}

func (s *ContactService) enqueuePhotoCleanup(ctx context.Context, bucket, objectKey string) {
	if s.queue == nil {
		return
	}
	_, err := s.queue.XAdd(ctx, &redis.XAddArgs{
		Stream: s.cfg.Worker.Stream,
		Values: map[string]any{
			"type":   "photo_cleanup",
			"bucket": bucket,
			"object": objectKey,
		},
	}).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("object", objectKey).Msg("enqueue photo cleanup failed")
	}
}
