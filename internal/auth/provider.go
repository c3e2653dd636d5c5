package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Common errors
var (
	ErrUnauthenticated = errors.New("invalid or expired credentials")
	ErrSignupRejected  = errors.New("identity provider rejected signup")
)

// Identity is the authenticated principal as reported by the provider.
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Token is the credential pair issued on login.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// Provider is the identity-service contract. Token issuance and
// verification happen on the provider's side; this service only passes
// credentials through.
type Provider interface {
	Signup(ctx context.Context, email, password, username string) (*Identity, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}

// GoTrueProvider talks to a GoTrue-compatible auth endpoint (Supabase).
type GoTrueProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoTrueProvider creates a provider against baseURL.
func NewGoTrueProvider(baseURL, apiKey string) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         gotrueUser `json:"user"`
}

// Signup registers a new account with the identity provider.
func (p *GoTrueProvider) Signup(ctx context.Context, email, password, username string) (*Identity, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}

	var user gotrueUser
	status, err := p.do(ctx, http.MethodPost, "/signup", "", payload, &user)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, ErrSignupRejected
	}

	return &Identity{UserID: user.ID, Email: user.Email, Username: username}, nil
}

// Login exchanges credentials for a token pair.
func (p *GoTrueProvider) Login(ctx context.Context, email, password string) (*Token, error) {
	payload := map[string]string{"email": email, "password": password}

	var session gotrueSession
	status, err := p.do(ctx, http.MethodPost, "/token?grant_type=password", "", payload, &session)
	if err != nil {
		return nil, err
	}
	if status >= 400 || session.AccessToken == "" {
		return nil, ErrUnauthenticated
	}

	return &Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		UserID:       session.User.ID,
	}, nil
}

// Verify resolves a bearer token to the identity it belongs to.
func (p *GoTrueProvider) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	var user gotrueUser
	status, err := p.do(ctx, http.MethodGet, "/user", accessToken, nil, &user)
	if err != nil {
		return nil, err
	}
	if status >= 400 || user.ID == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{UserID: user.ID, Email: user.Email, Username: user.UserMetadata.Username}, nil
}

func (p *GoTrueProvider) do(ctx context.Context, method, path, bearer string, payload, out interface{}) (int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 400 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
