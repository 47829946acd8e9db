package service

import (
	"context"

	"contacthub/internal/models"
	"contacthub/internal/repository"
)

// UserStore is the slice of the user repository the services consume.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, update repository.UserUpdate) error
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
	Delete(ctx context.Context, id string) error
}

// ContactStore is the slice of the contact repository the services consume.
type ContactStore interface {
	Create(ctx context.Context, contact models.Contact) error
	GetByID(ctx context.Context, id string) (models.Contact, error)
	ListVisible(ctx context.Context, userID string) ([]models.Contact, error)
	Update(ctx context.Context, id string, update repository.ContactUpdate) error
	Delete(ctx context.Context, id string) error
	AddShare(ctx context.Context, contactID string, share models.ShareEntry) error
	RemoveShare(ctx context.Context, contactID string, email string) error
}
