package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dherreraa1/puzzle-decoder-race/pkg/puzzle"
)

// Common errors.
var (
	ErrNotFound    = errors.New("http: fragment not found")
	ErrServerError = errors.New("http: server error")
	ErrBadResponse = errors.New("http: malformed fragment response")
)

// Options configures the HTTP client.
type Options struct {
	// MaxIdleConnsPerHost sets the maximum idle connections per host.
	// Should be at least the solver's concurrency so keep-alive connections
	// are reused across the many small requests a solve issues.
	// Default: 64
	MaxIdleConnsPerHost int

	// Timeout for individual requests.
	// Default: 5s
	Timeout time.Duration
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxIdleConnsPerHost: 64,
		Timeout:             5 * time.Second,
	}
}

// Client fetches puzzle fragments from the remote service.
type Client struct {
	client  *http.Client
	baseURL string
	opts    Options
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts Options) *Client {
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = DefaultOptions().MaxIdleConnsPerHost
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultOptions().Timeout
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		MaxIdleConns:        opts.MaxIdleConnsPerHost * 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		opts:    opts,
	}
}

// fragmentResponse mirrors the service's success payload. Pointer fields
// distinguish "absent" from zero values during decoding.
type fragmentResponse struct {
	ID    *int    `json:"id"`
	Index *int    `json:"index"`
	Text  *string `json:"text"`
}

// FetchFragment requests the fragment stored under id. It issues exactly one
// request with the configured timeout and returns the decoded fragment, or
// an error for any non-success outcome.
func (c *Client) FetchFragment(ctx context.Context, id int) (*puzzle.Fragment, error) {
	u := c.baseURL + "/fragment?" + url.Values{"id": {strconv.Itoa(id)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fragment %d: %w", id, err)
	}
	defer resp.Body.Close()

	if err := checkStatusCode(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fragment %d: %w", id, err)
	}

	var fr fragmentResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if fr.ID == nil || fr.Index == nil || fr.Text == nil {
		return nil, fmt.Errorf("%w: missing fields", ErrBadResponse)
	}
	if *fr.Index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrBadResponse, *fr.Index)
	}

	return &puzzle.Fragment{
		ID:    *fr.ID,
		Index: *fr.Index,
		Text:  *fr.Text,
	}, nil
}

// checkStatusCode returns an appropriate error for non-success status codes.
func checkStatusCode(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: %d", ErrServerError, code)
	default:
		return fmt.Errorf("unexpected status code: %d", code)
	}
}
