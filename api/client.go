// Package api is the typed gateway to the Zavio REST backend. It owns no
// state: the bearer token is read from a TokenProvider on every call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenProvider supplies the bearer token attached to authenticated requests.
// An empty string means the request goes out unauthenticated.
type TokenProvider interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenProvider.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client issues authenticated JSON requests against a single backend host.
// Calls are at-most-once; there is no retry layer.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenProvider
}

// New builds a gateway client. httpc may be nil, in which case
// http.DefaultClient is used (transport/OS default timeouts).
func New(baseURL string, httpc *http.Client, tokens TokenProvider) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		tokens:  tokens,
	}
}

// do builds a request (JSON body for writes, query string for reads),
// attaches the bearer token if present, and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport-level failure: distinguish "could not reach server"
		// from "server rejected" and keep the target URL for diagnosis.
		return &ConnectivityError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectivityError{URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", target, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}
