package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

// ContactRepository is the client-side view of the contacts collection. The
// collection is not authoritative between refreshes: every mutation is
// expected to be followed by a List, which replaces the cache wholesale.
type ContactRepository struct {
	client *Client

	mu       sync.RWMutex
	contacts []Contact
}

// Photo is an optional photo attachment for create/update.
type Photo struct {
	Filename string
	Data     []byte
}

type ContactForm struct {
	FirstName     string
	LastName      string
	ContactNumber string
	EmailAddress  string
	Photo         *Photo
}

// ContactUpdate carries a partial update; nil fields are not transmitted.
type ContactUpdate struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
	EmailAddress  *string
	Photo         *Photo
}

// List fetches the full collection visible to the session and replaces the
// cached copy.
func (r *ContactRepository) List(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/contacts", nil, true, &contacts); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.contacts = contacts
	r.mu.Unlock()
	return contacts, nil
}

// Cached returns the collection from the last List without a network call.
func (r *ContactRepository) Cached() []Contact {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contact, len(r.contacts))
	copy(out, r.contacts)
	return out
}

func (r *ContactRepository) Get(ctx context.Context, id string) (Contact, error) {
	var contact Contact
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/contacts/"+id, nil, true, &contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, form ContactForm) (Contact, error) {
	fields := map[string]string{
		"firstName":     form.FirstName,
		"lastName":      form.LastName,
		"contactNumber": form.ContactNumber,
		"emailAddress":  form.EmailAddress,
	}

	body, contentType, err := encodeMultipart(fields, form.Photo)
	if err != nil {
		return Contact{}, err
	}

	var contact Contact
	if err := r.client.do(ctx, http.MethodPost, "/api/contacts", body, contentType, true, &contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// Update transmits only the fields the caller supplied.
func (r *ContactRepository) Update(ctx context.Context, id string, update ContactUpdate) (Contact, error) {
	fields := map[string]string{}
	if update.FirstName != nil {
		fields["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["lastName"] = *update.LastName
	}
	if update.ContactNumber != nil {
		fields["contactNumber"] = *update.ContactNumber
	}
	if update.EmailAddress != nil {
		fields["emailAddress"] = *update.EmailAddress
	}

	body, contentType, err := encodeMultipart(fields, update.Photo)
	if err != nil {
		return Contact{}, err
	}

	var contact Contact
	if err := r.client.do(ctx, http.MethodPut, "/api/contacts/"+id, body, contentType, true, &contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.client.doJSON(ctx, http.MethodDelete, "/api/contacts/"+id, nil, true, nil)
}

// Share grants read access to the user behind the given email. Sharing a
// contact with yourself is rejected here, before any request goes out.
func (r *ContactRepository) Share(ctx context.Context, id string, email string) error {
	current := r.client.Current()
	if current != nil && strings.EqualFold(strings.TrimSpace(email), current.Email) {
		return ErrSelfShare
	}

	return r.client.doJSON(ctx, http.MethodPost, "/api/contacts/"+id+"/share", map[string]string{
		"email": email,
	}, true, nil)
}

func (r *ContactRepository) Unshare(ctx context.Context, id string, email string) error {
	return r.client.doJSON(ctx, http.MethodDelete, "/api/contacts/"+id+"/share", map[string]string{
		"email": email,
	}, true, nil)
}

func encodeMultipart(fields map[string]string, photo *Photo) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if photo != nil {
		part, err := writer.CreateFormFile("photo", photo.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create photo part: %w", err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, "", fmt.Errorf("write photo: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
