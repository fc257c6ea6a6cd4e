// Package rest is the single HTTP boundary to the admin backend. Every
// response travels in a {success, data, message?} envelope; callers get the
// raw data payload back and decode it at the service layer.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty token means the request goes out unauthenticated (login itself).
type TokenSource interface {
	Token() string
}

// APIError carries the backend's HTTP status and message for any non-2xx
// response or success=false envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	base   string
	tokens TokenSource
	http   *http.Client
}

type Config struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
}

func New(cfg Config) *Client {
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{
		base:   strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens: cfg.Tokens,
		http:   h,
	}
}

func (c *Client) Get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, q, nil, "")
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.json(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.json(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// PostMultipart sends a multipart/form-data body built by fill. Used by the
// question-file upload endpoint.
func (c *Client) PostMultipart(ctx context.Context, path string, fill func(w *multipart.Writer) error) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := fill(mw); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType())
}

func (c *Client) json(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, nil, rd, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	// Body may be empty (204) or non-JSON on proxy errors; tolerate both and
	// fall back to the HTTP status alone.
	decodeErr := json.Unmarshal(raw, &env)

	if res.StatusCode/100 != 2 {
		msg := env.Message
		if decodeErr != nil {
			msg = strings.TrimSpace(string(raw))
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: decode envelope: %w", method, path, decodeErr)
	}
	if !env.Success {
		return nil, &APIError{Status: res.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}
