package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["password"] != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"user": User{
				ID:        "u1",
				Email:     "a@x.com",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Role:      RoleUser,
				Status:    StatusActive,
			},
			"token": "tok-123",
		})
	})

	t.Run("success persists credentials", func(t *testing.T) {
		store := NewMemoryStore()
		c := New(srv.URL, store)

		session, err := c.Login(context.Background(), "a@x.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "tok-123", session.Token)
		assert.Equal(t, "u1", session.User.ID)
		assert.True(t, c.IsAuthenticated())

		creds, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "tok-123", creds.Token)
		assert.Equal(t, "a@x.com", creds.User.Email)
	})

	t.Run("bad password is unauthorized with server message", func(t *testing.T) {
		c := New(srv.URL, NewMemoryStore())

		_, err := c.Login(context.Background(), "a@x.com", "wrong")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.EqualError(t, err, "invalid email or password")
		assert.False(t, c.IsAuthenticated())
	})
}

func TestSignupNeverAuthenticates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "sign up successful, waiting for admin activation"})
	})

	store := NewMemoryStore()
	c := New(srv.URL, store)

	msg, err := c.Signup(context.Background(), SignupData{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@x.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	assert.Contains(t, msg, "waiting for admin activation")

	assert.False(t, c.IsAuthenticated())
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestInitialize(t *testing.T) {
	t.Run("valid stored token restores the session", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/me", r.URL.Path)
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{
				"user": User{ID: "u1", Email: "a@x.com", Role: RoleUser, Status: StatusActive},
			})
		})

		store := NewMemoryStore()
		require.NoError(t, store.Save(&Credentials{Token: "tok-123", User: User{ID: "u1"}}))

		c := New(srv.URL, store)
		session := c.Initialize(context.Background())
		require.NotNil(t, session)
		assert.Equal(t, "u1", session.User.ID)
		assert.True(t, c.IsAuthenticated())
	})

	t.Run("stale token yields no session and clears the store", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
		})

		store := NewMemoryStore()
		require.NoError(t, store.Save(&Credentials{Token: "expired", User: User{ID: "u1"}}))

		c := New(srv.URL, store)
		session := c.Initialize(context.Background())
		assert.Nil(t, session)
		assert.False(t, c.IsAuthenticated())

		creds, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("empty store yields no session", func(t *testing.T) {
		c := New("http://127.0.0.1:0", NewMemoryStore())
		assert.Nil(t, c.Initialize(context.Background()))
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(&Credentials{Token: "tok", User: User{ID: "u1"}}))

	c := New("http://127.0.0.1:0", store)
	c.setSession(&Session{User: User{ID: "u1"}, Token: "tok"})

	c.Logout()
	assert.False(t, c.IsAuthenticated())
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	// Second logout is a no-op.
	c.Logout()
	assert.False(t, c.IsAuthenticated())
}

func TestUnauthorizedResponseInvalidatesSession(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
	})

	store := NewMemoryStore()
	require.NoError(t, store.Save(&Credentials{Token: "revoked", User: User{ID: "u1"}}))

	c := New(srv.URL, store)
	c.setSession(&Session{User: User{ID: "u1"}, Token: "revoked"})

	_, err := c.Contacts().List(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.IsAuthenticated())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestSessionPredicates(t *testing.T) {
	admin := &User{ID: "1", Role: RoleAdmin}
	superAdmin := &User{ID: "2", Role: RoleSuperAdmin}
	regular := &User{ID: "3", Role: RoleUser}

	assert.True(t, IsAdmin(admin))
	assert.True(t, IsAdmin(superAdmin))
	assert.False(t, IsAdmin(regular))
	assert.False(t, IsAdmin(nil))

	assert.True(t, IsSelf(regular, "3"))
	assert.False(t, IsSelf(regular, "1"))
	assert.False(t, IsSelf(nil, "1"))
}
