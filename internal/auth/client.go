// Package auth talks to the Mindora backend and keeps the signed-in
// session in local key-value storage.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://mindora-backend-beta-version-m0bk.onrender.com/api"

// Fallback messages used when the backend does not supply one.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgGeneric            = "Something went wrong. Please try again later."
	MsgResetSent          = "A reset link has been sent to your email address."
)

// ErrNoToken is returned when a login response carries no token.
var ErrNoToken = errors.New("login response did not include a token")

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the hosted backend with a 30s timeout.
func DefaultConfig() Config {
	return Config{BaseURL: DefaultBaseURL, Timeout: 30 * time.Second}
}

// ConfigFromEnv applies MINDORA_API_URL on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MINDORA_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	return cfg
}

// Client is a thin JSON client for the auth endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// LoginResponse is the body of POST /auth/login.
type LoginResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out, MsgInvalidCredentials); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrNoToken
	}
	return &out, nil
}

// Register creates an account and returns the backend's message.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &out, MsgGeneric); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ForgotPassword requests a reset link for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/forgot_password", "", body, &out, MsgGeneric); err != nil {
		return "", err
	}
	if out.Message == "" {
		return MsgResetSent, nil
	}
	return out.Message, nil
}

// Profile fetches the signed-in user's profile as raw JSON.
func (c *Client) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &out, MsgGeneric); err != nil {
		return nil, err
	}
	return out, nil
}

// SignIn logs in and assembles a Session. The user comes from the
// response's user object when present, otherwise from the token claims.
// A failed profile fetch is logged and leaves Profile empty.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s := &Session{Token: resp.Token}
	if u, err := UserFromToken(resp.Token); err == nil {
		if u.Email == "" {
			u.Email = email
		}
		s.User = u
	} else {
		slog.Warn("decode token claims", "error", err)
		s.User = User{Email: email}
	}
	if resp.User != nil {
		s.User = *resp.User
	}

	profile, err := c.Profile(ctx, resp.Token)
	if err != nil {
		slog.Warn("fetch user profile", "error", err)
	} else {
		s.Profile = profile
	}
	return s, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var m messageResponse
		if json.Unmarshal(data, &m) == nil && m.Message != "" {
			msg = m.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// UserMessage returns the text to show a user for err: the backend's
// message for API errors, the generic fallback otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return MsgGeneric
}
