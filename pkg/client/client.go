// Package client is the Go SDK for a CodeVault server. It owns the reactive
// auth state (SessionStore), the optimistic upvote flow (VoteController) and
// thin wrappers over the HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// AuthErrorKind classifies auth failures for callers that branch on them.
type AuthErrorKind int

const (
	ErrKindUnknown AuthErrorKind = iota
	ErrKindInvalidCredentials
	ErrKindFlowDismissed
	ErrKindLoginRequired
)

type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrInvalidCredentials = &AuthError{Kind: ErrKindInvalidCredentials, Message: "email or password is incorrect"}
	// ErrFlowDismissed means the user abandoned the provider popup or
	// consent page. It is not a failure; no state changes.
	ErrFlowDismissed = &AuthError{Kind: ErrKindFlowDismissed, Message: "sign-in flow was dismissed"}
	ErrLoginRequired = &AuthError{Kind: ErrKindLoginRequired, Message: "sign in to do that"}
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionStore
}

// New builds a client against baseURL (e.g. "https://codevault.example.com").
// The HTTP client carries a cookie jar so the session cookie set by the
// bridge rides along automatically.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		session: NewSessionStore(),
	}, nil
}

// Session exposes the auth-state observable.
func (c *Client) Session() *SessionStore { return c.session }

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("cannot decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

type authResponse struct {
	IDToken  string `json:"id_token"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}

func (c *Client) establishSession(ctx context.Context, idToken *string) error {
	status, err := c.postJSON(ctx, "/api/session", map[string]any{"idToken": idToken}, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("session bridge refused the token (status %d)", status)
	}
	return nil
}

// completeLogin bridges the token into a cookie and publishes the identity.
// Every successful auth path funnels through here.
func (c *Client) completeLogin(ctx context.Context, out authResponse) error {
	if err := c.establishSession(ctx, &out.IDToken); err != nil {
		return err
	}
	c.session.Publish(&Identity{
		UserID:   out.UserID,
		Name:     out.Name,
		Email:    out.Email,
		PhotoURL: out.PhotoURL,
		IDToken:  out.IDToken,
	})
	return nil
}

func (c *Client) LoginWithPassword(ctx context.Context, email, password string) error {
	var out authResponse
	status, err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if status >= 300 {
		return &AuthError{Kind: ErrKindUnknown, Message: fmt.Sprintf("login failed (status %d)", status)}
	}
	return c.completeLogin(ctx, out)
}

func (c *Client) SignupWithPassword(ctx context.Context, email, password, displayName string) error {
	var out authResponse
	status, err := c.postJSON(ctx, "/api/auth/signup", map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}, &out)
	if err != nil {
		return err
	}
	if status >= 300 {
		return &AuthError{Kind: ErrKindUnknown, Message: fmt.Sprintf("signup failed (status %d)", status)}
	}
	return c.completeLogin(ctx, out)
}

// LoginWithGoogle is fire-and-forget: it returns the consent page URL for
// the caller to open. The result of the flow lands later through
// CompleteGoogleLogin and the session subscription, not through this call.
func (c *Client) LoginWithGoogle(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/google", nil)
	if err != nil {
		return "", err
	}

	// capture the redirect target instead of following it to Google
	noRedirect := *c.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	resp, err := noRedirect.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", &AuthError{Kind: ErrKindUnknown, Message: "google sign-in is not configured"}
	}
	location := resp.Header.Get("Location")
	if resp.StatusCode != http.StatusTemporaryRedirect || location == "" {
		return "", &AuthError{Kind: ErrKindUnknown, Message: fmt.Sprintf("unexpected response to google login (status %d)", resp.StatusCode)}
	}
	return location, nil
}

// CompleteGoogleLogin finishes the flow with the code and state the provider
// handed back. An empty code means the user dismissed the consent page:
// ErrFlowDismissed, and the session state stays exactly as it was.
func (c *Client) CompleteGoogleLogin(ctx context.Context, code, state string) error {
	if code == "" {
		return ErrFlowDismissed
	}

	url := fmt.Sprintf("%s/api/auth/google/callback?code=%s&state=%s", c.baseURL, code, state)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &AuthError{Kind: ErrKindUnknown, Message: fmt.Sprintf("google callback failed (status %d)", resp.StatusCode)}
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("cannot decode callback response: %w", err)
	}
	return c.completeLogin(ctx, out)
}

// Logout clears the server session, then publishes the signed-out state. A
// failed server call still signs the client out locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.establishSession(ctx, nil)
	c.session.Publish(nil)
	return err
}
