package client

// FilterMode selects which slice of the contact collection a view shows.
type FilterMode string

const (
	// ModeAll shows everything the server returned.
	ModeAll FilterMode = "all"
	// ModeMine shows contacts the current user owns.
	ModeMine FilterMode = "my-contacts"
	// ModeShared shows contacts shared with the current user by someone else.
	ModeShared FilterMode = "shared"
)

// FilterContacts partitions a contact collection by view mode. With no
// authenticated user the result is always empty, whatever the mode.
func FilterContacts(contacts []Contact, user *User, mode FilterMode) []Contact {
	if user == nil {
		return nil
	}

	out := make([]Contact, 0, len(contacts))
	for _, contact := range contacts {
		switch mode {
		case ModeMine:
			if contact.Owner == user.ID {
				out = append(out, contact)
			}
		case ModeShared:
			if sharedWith(contact, user.ID) {
				out = append(out, contact)
			}
		default:
			out = append(out, contact)
		}
	}
	return out
}

func sharedWith(contact Contact, userID string) bool {
	for _, share := range contact.SharedWith {
		if share.UserID == userID {
			return true
		}
	}
	return false
}
