// Package api implements the HTTP client for the chat backend and the
// narrow interfaces to the external collaborators (generative assistant,
// search).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
)

// PublicUser is the account view returned by the backend. It mirrors the
// server's public account schema.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the outcome of a successful register or login call.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return resp.StatusCode, fmt.Errorf("malformed response: %w", err)
			}
		}
		return resp.StatusCode, nil
	}

	var er errorResponse
	_ = json.Unmarshal(data, &er)
	return resp.StatusCode, mapStatus(resp.StatusCode, er.Error)
}

// mapStatus converts HTTP failure codes into the shared sentinel errors so
// callers can switch on errors.Is.
func mapStatus(code int, message string) error {
	switch code {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorInvalidCredentials
	case http.StatusForbidden:
		return common.ErrInvalidToken
	case http.StatusConflict:
		return common.ErrorEmailExists
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		if message == "" {
			message = "internal error"
		}
		return fmt.Errorf("server error (%d): %s", code, message)
	}
}

// Health probes the backend's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodGet, "/api/health", "", nil, nil)
	return err
}

// Register creates an account and returns the issued token with the public
// account view.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var res AuthResult
	_, err := c.doJSON(ctx, http.MethodPost, "/api/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Login authenticates and returns a fresh token with the public account view.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	_, err := c.doJSON(ctx, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile fetches the account view behind the given bearer token. A 401 or
// 403 response maps to common.ErrorUnauthorized so callers treat both as a
// dead session.
func (c *Client) Profile(ctx context.Context, token string) (*PublicUser, error) {
	var user PublicUser
	code, err := c.doJSON(ctx, http.MethodGet, "/api/profile", token, nil, &user)
	if err != nil {
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return &user, nil
}
