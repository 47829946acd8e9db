package models

import "time"

// ShareEntry grants a non-owner user read access to a contact.
// Entries are unique per email within one contact.
type ShareEntry struct {
	UserID string
	Email  string
}

type Contact struct {
	ID            string
	OwnerID       string
	FirstName     string
	LastName      string
	ContactNumber string
	EmailAddress  string
	PhotoBucket   *string
	PhotoKey      *string
	SharedWith    []ShareEntry
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SharedWithUser reports whether the contact has been shared with the given user id.
func (c Contact) SharedWithUser(userID string) bool {
	for _, share := range c.SharedWith {
		if share.UserID == userID {
			return true
		}
	}
	return false
}

// SharedWithEmail reports whether a share entry exists for the given email.
func (c Contact) SharedWithEmail(email string) bool {
	for _, share := range c.SharedWith {
		if share.Email == email {
			return true
		}
	}
	return false
}
