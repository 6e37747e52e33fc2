// Package hmsapi is the client for the hospital REST API. Every response is
// wrapped in the {success, data, message} envelope and data is only trusted
// when success is true.
package hmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// Envelope is the response shape shared by every API endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client talks to the API through an Authorizer-decorated transport.
type Client struct {
	baseURL string
	http    *http.Client
	probe   *http.Client
}

// NewClient returns a client for baseURL (e.g. http://localhost:8080/api).
// Ping bypasses an Authorizer transport so health checks carry no role and
// are not counted as API requests.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	probeTransport := transport
	if a, ok := transport.(*Authorizer); ok {
		probeTransport = a.Base
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		probe:   &http.Client{Transport: probeTransport, Timeout: timeout},
	}
}

// Fetch GETs path and returns the envelope's data.
func (c *Client) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post sends body as JSON to path and returns the envelope's data.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Ping checks that the API answers at all; any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dashboard/summary", nil)
	if err != nil {
		return err
	}
	resp, err := c.probe.Do(req)
	if err != nil {
		return &Error{Message: msgUnreachable, Err: err}
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("hmsapi: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("hmsapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: msgUnreachable, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: "failed to read api response", Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &Error{Status: resp.StatusCode, Message: "malformed api response", Err: decodeErr}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
