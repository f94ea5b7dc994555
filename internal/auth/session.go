package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys for the signed-in session.
const (
	KeyToken   = "mindora_token"
	KeyUser    = "mindora_user"
	KeyProfile = "mindora_user_profile"
)

// KV is the key-value storage a Session is persisted in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// User is the identity shown in the UI.
type User struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Profile   string `json:"profile,omitempty"`
}

// DisplayName returns the friendliest available name.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	default:
		return "there"
	}
}

// Session is the persisted sign-in state. A zero Session is signed out.
type Session struct {
	Token   string
	User    User
	Profile json.RawMessage
}

// SignedIn reports whether the session carries a token.
func (s *Session) SignedIn() bool {
	return s != nil && s.Token != ""
}

// Save writes the session to kv under the fixed keys.
func (s *Session) Save(ctx context.Context, kv KV) error {
	if err := kv.Set(ctx, KeyToken, s.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := kv.Set(ctx, KeyUser, string(user)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if len(s.Profile) > 0 {
		if err := kv.Set(ctx, KeyProfile, string(s.Profile)); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	} else if err := kv.Delete(ctx, KeyProfile); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

// LoadSession reads the session from kv. A missing token yields a
// signed-out Session and no error.
func LoadSession(ctx context.Context, kv KV) (*Session, error) {
	token, ok, err := kv.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if !ok || token == "" {
		return &Session{}, nil
	}

	s := &Session{Token: token}
	if raw, ok, err := kv.Get(ctx, KeyUser); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}
	if raw, ok, err := kv.Get(ctx, KeyProfile); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	} else if ok {
		s.Profile = json.RawMessage(raw)
	}
	return s, nil
}

// ClearSession removes every session key (logout).
func ClearSession(ctx context.Context, kv KV) error {
	for _, k := range []string{KeyToken, KeyUser, KeyProfile} {
		if err := kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// Claims is the payload the backend signs into its tokens.
type Claims struct {
	jwt.RegisteredClaims
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Profile   string `json:"profile"`
}

// UserFromToken decodes the token payload without verifying the
// signature; the backend holds the key and validates on every request.
func UserFromToken(token string) (User, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return User{}, fmt.Errorf("parse token: %w", err)
	}
	id := claims.ID
	if id == "" {
		id = claims.Subject
	}
	return User{
		ID:        id,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Username:  claims.Username,
		Profile:   claims.Profile,
	}, nil
}
