package client

import (
	"context"
	"net/http"
)

// Session is the authenticated identity plus the bearer token attached to
// API calls.
type Session struct {
	User  User
	Token string
}

type SignupData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Login exchanges credentials for a session and persists it. The server's
// answer for a wrong password and for an unknown email is the same, so a
// failed login reveals nothing about account existence.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false, &resp)
	if err != nil {
		return nil, err
	}

	session := &Session{User: resp.User, Token: resp.Token}
	c.setSession(session)

	if err := c.store.Save(&Credentials{Token: resp.Token, User: resp.User}); err != nil {
		c.log.Warn().Err(err).Msg("persist credentials failed")
	}
	return session, nil
}

// Signup registers an account. The account starts inactive and must be
// activated by an admin, so no session is created here.
func (c *Client) Signup(ctx context.Context, data SignupData) (string, error) {
	var resp apiMessage
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", data, false, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{
		"email": email,
	}, false, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"token":       token,
		"newPassword": newPassword,
	}, false, nil)
}

type meResponse struct {
	User User `json:"user"`
}

// Initialize restores a previous session from the credential store,
// revalidating the token against the server. Any failure yields no session
// and a cleared store; it never returns an error to the caller.
func (c *Client) Initialize(ctx context.Context) *Session {
	creds, err := c.store.Load()
	if err != nil || creds == nil {
		if err != nil {
			c.log.Warn().Err(err).Msg("load credentials failed")
			c.invalidate()
		}
		return nil
	}

	c.setSession(&Session{User: creds.User, Token: creds.Token})

	var resp meResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, true, &resp); err != nil {
		// doJSON already cleared the store on a 401; cover the rest.
		c.invalidate()
		return nil
	}

	session := &Session{User: resp.User, Token: creds.Token}
	c.setSession(session)
	return session
}

// Logout destroys the session and the stored credential. Safe to call at
// any time, logged in or not.
func (c *Client) Logout() {
	c.invalidate()
}

// Current returns the logged-in user, or nil.
func (c *Client) Current() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	user := c.session.User
	return &user
}

func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.Token != ""
}
