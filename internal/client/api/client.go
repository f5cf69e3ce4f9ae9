// Package api is the REST client the CLI uses to talk to the backend.
// Server-side failures are mapped back onto the shared error taxonomy so
// callers can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/anocare/anocare/internal/common"
	"github.com/anocare/anocare/internal/server/models"
)

type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used for admin endpoints.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success           bool                     `json:"success"`
	Error             string                   `json:"error"`
	Token             string                   `json:"token"`
	Nonce             string                   `json:"nonce"`
	Applicant         *models.Applicant        `json:"applicant"`
	Applicants        []models.Applicant       `json:"applicants"`
	User              *models.Applicant        `json:"user"`
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
	Message           string                   `json:"message"`
}

func statusToErr(code int, msg string) error {
	var sentinel error
	switch code {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
	case http.StatusConflict:
		sentinel = common.ErrDuplicate
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = common.ErrNotAuthorized
	default:
		sentinel = common.ErrInternal
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInternal, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, statusToErr(resp.StatusCode, env.Error)
	}

	return &env, nil
}

// Nonce requests a fresh single-use login nonce for the address.
func (c *Client) Nonce(ctx context.Context, address string) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/nonce?address="+url.QueryEscape(address), nil)
	if err != nil {
		return "", err
	}
	return env.Nonce, nil
}

// Login exchanges a signed nonce for a session token and installs it on the
// client for subsequent admin calls.
func (c *Client) Login(ctx context.Context, address, nonce, signature string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"address":   address,
		"nonce":     nonce,
		"signature": signature,
	})
	if err != nil {
		return "", err
	}

	c.token = env.Token
	return env.Token, nil
}

// Submit files a new application for the applicant's address.
func (c *Client) Submit(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	env, err := c.do(ctx, http.MethodPost, "/applications/"+url.PathEscape(a.Address), a)
	if err != nil {
		return nil, err
	}
	return env.Applicant, nil
}

func (c *Client) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	env, err := c.do(ctx, http.MethodGet, "/applications", nil)
	if err != nil {
		return nil, err
	}
	return env.Applicants, nil
}

func (c *Client) ListPending(ctx context.Context) ([]models.Applicant, error) {
	env, err := c.do(ctx, http.MethodGet, "/applications/pending", nil)
	if err != nil {
		return nil, err
	}
	return env.Applicants, nil
}

func (c *Client) Approve(ctx context.Context, address string) error {
	_, err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(address)+"/approve", nil)
	return err
}

func (c *Client) Reject(ctx context.Context, address string) error {
	_, err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(address)+"/reject", nil)
	return err
}

func (c *Client) UserStatus(ctx context.Context, address string) (models.ApplicationStatus, error) {
	env, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(address), nil)
	if err != nil {
		return "", err
	}
	return env.ApplicationStatus, nil
}

func (c *Client) ToggleActive(ctx context.Context, address string) (*models.Applicant, error) {
	env, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(address)+"/status", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}
