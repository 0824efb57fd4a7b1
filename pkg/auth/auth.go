// Package auth verifies trader credentials against the platform endpoint
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/raykavin/orderalert/pkg/logger"
)

const DefaultTimeout = 10 * time.Second

// Client implements core.Authenticator over the platform HTTP endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        logger.Logger
}

// Option is a function that configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(endpoint string, log logger.Logger, options ...Option) *Client {
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

type request struct {
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	TgUsername string `json:"tg_username"`
	Action     string `json:"action,omitempty"`
}

type response struct {
	Success  bool   `json:"Success"`
	Username string `json:"username"`
}

// Verify checks the credentials typed by a user. A rejection is reported as
// AuthResult{OK: false}; transport failures wrap core.ErrAuthUnavailable.
func (c *Client) Verify(ctx context.Context, login, password, handle string) (core.AuthResult, error) {
	status, body, err := c.post(ctx, request{Username: login, Password: password, TgUsername: handle})
	if err != nil {
		return core.AuthResult{}, err
	}

	if status != http.StatusOK || !body.Success {
		c.log.WithFields(map[string]any{"login": login, "status": status}).Info("credentials rejected")
		return core.AuthResult{OK: false}, nil
	}

	return core.AuthResult{OK: true, Login: confirmedLogin(body, login)}, nil
}

// Validate re-confirms a stored login. Only an explicit Success=false answer
// with HTTP 200 counts as a rejection; any other failure is an error so the
// caller keeps the account.
func (c *Client) Validate(ctx context.Context, login, handle string) (core.AuthResult, error) {
	status, body, err := c.post(ctx, request{Username: login, TgUsername: handle, Action: "validate"})
	if err != nil {
		return core.AuthResult{}, err
	}

	if status != http.StatusOK {
		return core.AuthResult{}, fmt.Errorf("validate %q: unexpected status %d: %w", login, status, core.ErrAuthUnavailable)
	}

	if !body.Success {
		return core.AuthResult{OK: false}, nil
	}

	return core.AuthResult{OK: true, Login: confirmedLogin(body, login)}, nil
}

func (c *Client) post(ctx context.Context, payload request) (int, response, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return 0, response{}, fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(content))
	if err != nil {
		return 0, response{}, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, response{}, fmt.Errorf("auth request: %v: %w", err, core.ErrAuthUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, response{}, fmt.Errorf("auth response: %v: %w", err, core.ErrAuthUnavailable)
	}

	var body response
	if err := json.Unmarshal(raw, &body); err != nil {
		if resp.StatusCode != http.StatusOK {
			// a non-JSON error page is still a definite status
			return resp.StatusCode, response{}, nil
		}
		return 0, response{}, fmt.Errorf("auth response decode: %v: %w", err, core.ErrAuthUnavailable)
	}

	return resp.StatusCode, body, nil
}

func confirmedLogin(body response, typed string) string {
	if body.Username != "" {
		return body.Username
	}
	return typed
}
