package service

import (
	"context"

	"contacthub/internal/models"
	"contacthub/internal/repository"
)

// In-memory stores backing the service tests.

type fakeUserStore struct {
	users     map[string]models.User
	created   []models.User
	updates   map[string]repository.UserUpdate
	deleted   []string
	createErr error
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{
		users:   make(map[string]models.User),
		updates: make(map[string]repository.UserUpdate),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, user)
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, id string, update repository.UserUpdate) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	s.updates[id] = update
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) UpdatePasswordHash(_ context.Context, id string, hash []byte) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeContactStore struct {
	contacts map[string]models.Contact
	updates  map[string]repository.ContactUpdate
	shares   map[string][]models.ShareEntry
	deleted  []string
}

func newFakeContactStore(contacts ...models.Contact) *fakeContactStore {
	s := &fakeContactStore{
		contacts: make(map[string]models.Contact),
		updates:  make(map[string]repository.ContactUpdate),
		shares:   make(map[string][]models.ShareEntry),
	}
	for _, c := range contacts {
		s.contacts[c.ID] = c
	}
	return s
}

func (s *fakeContactStore) Create(_ context.Context, contact models.Contact) error {
	s.contacts[contact.ID] = contact
	return nil
}

func (s *fakeContactStore) GetByID(_ context.Context, id string) (models.Contact, error) {
	c, ok := s.contacts[id]
	if !ok {
		return models.Contact{}, repository.ErrContactNotFound
	}
	c.SharedWith = append(c.SharedWith, s.shares[id]...)
	return c, nil
}

func (s *fakeContactStore) ListVisible(_ context.Context, userID string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range s.contacts {
		if c.OwnerID == userID || c.SharedWithUser(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeContactStore) Update(_ context.Context, id string, update repository.ContactUpdate) error {
	if _, ok := s.contacts[id]; !ok {
		return repository.ErrContactNotFound
	}
	s.updates[id] = update
	return nil
}

func (s *fakeContactStore) Delete(_ context.Context, id string) error {
	if _, ok := s.contacts[id]; !ok {
		return repository.ErrContactNotFound
	}
	delete(s.contacts, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeContactStore) AddShare(_ context.Context, contactID string, share models.ShareEntry) error {
	for _, existing := range s.shares[contactID] {
		if existing.Email == share.Email {
			return repository.ErrShareExists
		}
	}
	s.shares[contactID] = append(s.shares[contactID], share)
	return nil
}

func (s *fakeContactStore) RemoveShare(_ context.Context, contactID string, email string) error {
	entries := s.shares[contactID]
	for i, existing := range entries {
		if existing.Email == email {
			s.shares[contactID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrShareNotFound
}
