package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const apiPrefix = "/api/v1"

const (
	defaultFreshWindow   = 30 * time.Second
	defaultEvictInterval = 5 * time.Minute
	defaultMaxRetries    = 2
)

// Session carries the bearer token attached to authenticated requests.
// It is set explicitly on the client, never read from process state.
type Session struct {
	AccessToken string
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Option func(*Client)

// Client is a typed API client with a query cache in front of reads.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *queryCache
	maxRetries int

	mu      sync.RWMutex
	session *Session
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      newQueryCache(defaultFreshWindow, defaultEvictInterval),
		maxRetries: defaultMaxRetries,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithFreshWindow(d time.Duration) Option {
	return func(c *Client) {
		c.cache.freshFor = d
	}
}

func WithEvictInterval(d time.Duration) Option {
	return func(c *Client) {
		c.cache.evictAfter = d
	}
}

func WithRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

func (c *Client) SetSession(session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

func (c *Client) ClearSession() {
	c.SetSession(nil)
}

func (c *Client) currentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// get serves a read through the query cache.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	key := "GET " + path

	body, err := c.cache.Get(key, func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	return jsoniter.Unmarshal(body, out)
}

// mutate issues a write, invalidates the affected resource prefixes, and
// decodes the response into out when given.
func (c *Client) mutate(ctx context.Context, method, path string, in, out interface{}, invalidatePrefixes ...string) error {
	var payload []byte
	if in != nil {
		encoded, err := jsoniter.Marshal(in)
		if err != nil {
			return err
		}
		payload = encoded
	}

	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(invalidatePrefixes))
	for _, prefix := range invalidatePrefixes {
		keys = append(keys, "GET "+prefix)
	}
	c.cache.Invalidate(keys...)

	if out == nil {
		return nil
	}
	if err := jsoniter.Unmarshal(body, out); err != nil {
		return err
	}

	// Only PATCH paths double as item read paths; their response is the
	// item's current state. POST bodies (collection or auth paths) must
	// not be seeded, so tokens never sit in the cache.
	if method == http.MethodPatch {
		c.cache.Set("GET "+path, body)
	}
	return nil
}

// do performs the request with up to maxRetries additional attempts.
// Retries are uniform across reads and mutations, matching the consumer
// behavior this client replaces.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}

		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if session := c.currentSession(); session != nil && session.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+session.AccessToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		lastErr = &APIError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(body, resp.StatusCode),
		}
	}

	return nil, lastErr
}

func decodeErrorMessage(body []byte, statusCode int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := jsoniter.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(statusCode)
}
