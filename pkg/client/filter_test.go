package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterContacts(t *testing.T) {
	owner := &User{ID: "1", Email: "a@x.com"}
	viewer := &User{ID: "2", Email: "b@x.com"}

	contactX := Contact{
		ID:    "x",
		Owner: "1",
		SharedWith: []ShareInfo{
			{UserID: "2", Email: "b@x.com"},
		},
	}
	contactY := Contact{
		ID:    "y",
		Owner: "2",
	}
	contacts := []Contact{contactX, contactY}

	t.Run("all mode keeps everything", func(t *testing.T) {
		got := FilterContacts(contacts, owner, ModeAll)
		assert.Len(t, got, 2)
	})

	t.Run("my-contacts keeps owned only", func(t *testing.T) {
		got := FilterContacts(contacts, owner, ModeMine)
		assert.Len(t, got, 1)
		assert.Equal(t, "x", got[0].ID)
	})

	t.Run("shared keeps contacts shared with the viewer", func(t *testing.T) {
		got := FilterContacts(contacts, viewer, ModeShared)
		assert.Len(t, got, 1)
		assert.Equal(t, "x", got[0].ID)
	})

	t.Run("owner never sees own contact in shared mode", func(t *testing.T) {
		got := FilterContacts(contacts, owner, ModeShared)
		assert.Empty(t, got)
	})

	t.Run("nil user yields empty result in every mode", func(t *testing.T) {
		for _, mode := range []FilterMode{ModeAll, ModeMine, ModeShared} {
			assert.Empty(t, FilterContacts(contacts, nil, mode))
		}
	})

	t.Run("unsharing removes the contact from the shared view", func(t *testing.T) {
		unshared := contactX
		unshared.SharedWith = nil
		got := FilterContacts([]Contact{unshared, contactY}, viewer, ModeShared)
		assert.Empty(t, got)
	})
}
