// Package remote implements the platform API client: GraphQL queries for
// problems and profiles, and the REST endpoints that start and poll judge
// jobs. All network failures are wrapped in leetcli.TransportError; the
// judge's raw status vocabulary is normalized here and never escapes.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	leetcli "github.com/leetcli/leetcli/internal"
	"github.com/leetcli/leetcli/internal/auth"
)

const defaultBaseURL = "https://leetcode.com"

// Client talks to the platform API.
type Client struct {
	baseURL string
	http    *http.Client
	session *auth.Session
}

// New creates a Client. An empty baseURL defaults to the public platform;
// timeout bounds each individual HTTP request.
func New(baseURL string, timeout time.Duration, session *auth.Session) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
	}
}

// do sends req with session cookies, a correlation id, and the headers the
// platform expects, returning the response body.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.CSRFToken(); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
	c.session.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &leetcli.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &leetcli.TransportError{Op: op, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &leetcli.TransportError{
			Op:  op,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return body, nil
}

// graphql posts a query to the GraphQL endpoint and returns the parsed body.
func (c *Client) graphql(ctx context.Context, op, query string, variables map[string]any) (gjson.Result, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: marshal query: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: create request: %w", op, err)
	}

	body, err := c.do(req, op)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(body), nil
}

// postJSON posts a JSON body to path and returns the parsed response.
func (c *Client) postJSON(ctx context.Context, op, path string, body map[string]any) (gjson.Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: marshal body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: create request: %w", op, err)
	}

	respBody, err := c.do(req, op)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(respBody), nil
}

// getJSON fetches path and returns the parsed response.
func (c *Client) getJSON(ctx context.Context, op, path string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s: create request: %w", op, err)
	}

	body, err := c.do(req, op)
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(body), nil
}
