package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a contacthub server on behalf of one user session. All
// repositories hang off it and share its credential state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
	log        zerolog.Logger

	mu      sync.RWMutex
	session *Session

	contacts *ContactRepository
	users    *UserRepository
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.contacts = &ContactRepository{client: c}
	c.users = &UserRepository{client: c}
	return c
}

func (c *Client) Contacts() *ContactRepository {
	return c.contacts
}

func (c *Client) Users() *UserRepository {
	return c.users
}

type apiMessage struct {
	Message string `json:"message"`
}

// doJSON sends a JSON request. out may be nil for responses without a body
// of interest.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, authed bool, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", authed, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if authed {
		token := c.token()
		if token == "" {
			return &APIError{Status: http.StatusUnauthorized, Message: "not logged in"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg apiMessage
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			if json.Unmarshal(data, &msg) == nil {
				apiErr.Message = msg.Message
			}
		}

		// A rejected credential invalidates the whole session, token
		// store included.
		if authed && resp.StatusCode == http.StatusUnauthorized {
			c.invalidate()
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// invalidate drops the in-memory session and the stored credential in one
// motion.
func (c *Client) invalidate() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("clear credential store failed")
	}
}

func (c *Client) setSession(session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}
