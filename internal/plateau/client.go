// Package plateau is a client for the PLATEAU CityGML API.
package plateau

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public PLATEAU API.
const DefaultEndpoint = "https://api.plateauview.mlit.go.jp"

// ErrUnavailable wraps transport failures, where no response was received.
var ErrUnavailable = errors.New("plateau: api unavailable")

// StatusError is returned when the API keeps answering with an error status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("plateau: %s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Observer receives one call per request attempt.
type Observer interface {
	ObserveUpstream(endpoint string, status int, d time.Duration)
}

// Options configures a Client. Zero values fall back to the defaults:
// three attempts two seconds apart with a 60 second timeout.
type Options struct {
	Endpoint   string
	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration
	// RateLimit is the number of requests per second; zero disables limiting.
	RateLimit  float64
	HTTPClient *http.Client
	Observer   Observer
}

// Client talks to the PLATEAU API. It is safe for concurrent use.
type Client struct {
	endpoint   string
	http       *http.Client
	retries    int
	retryDelay time.Duration
	limiter    *rate.Limiter
	observer   Observer
}

// NewClient creates a new PLATEAU API client
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// The default CheckRedirect follows up to ten redirects.
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = max(1, int(opts.RateLimit))
	}

	return &Client{
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
		http:       httpClient,
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
		limiter:    rate.NewLimiter(limit, burst),
		observer:   opts.Observer,
	}
}

// request describes one logical API call.
type request struct {
	endpoint string // metrics label
	method   string
	path     string
	query    url.Values
	body     any
	// raw skips the JSON content type and leaves the body unread.
	raw bool
}

// response is the outcome of a successful call.
type response struct {
	finalURL    string
	contentType string
	body        []byte
}

// do sends req, retrying on error status codes. Transport errors are not
// retried.
func (c *Client) do(ctx context.Context, req request) (*response, error) {
	target := c.endpoint + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var payload []byte
	if req.body != nil {
		var err error
		payload, err = json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("plateau: failed to encode request body: %w", err)
		}
	}

	var lastErr *StatusError
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("plateau: rate limiter wait: %w", err)
		}

		resp, err := c.attempt(ctx, req, target, payload)
		if err != nil {
			log.Error().Err(err).Str("url", target).Msg("unexpected error while calling PLATEAU API")
			return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.method, target, err)
		}
		if resp.statusErr == nil {
			return resp.response, nil
		}

		lastErr = resp.statusErr
		log.Error().
			Int("status", lastErr.StatusCode).
			Str("url", target).
			Str("body", lastErr.Body).
			Msg("PLATEAU API returned an error status")
		if lastErr.StatusCode == http.StatusForbidden {
			log.Error().Str("url", target).Msg("403 Forbidden: check access permissions")
		}

		if attempt < c.retries {
			log.Info().Int("attempt", attempt).Int("retries", c.retries).Msg("retrying PLATEAU API request")
			if err := sleep(ctx, c.retryDelay); err != nil {
				return nil, fmt.Errorf("plateau: retry cancelled: %w", err)
			}
		}
	}

	return nil, lastErr
}

type attemptResult struct {
	response  *response
	statusErr *StatusError
}

func (c *Client) attempt(ctx context.Context, req request, target string, payload []byte) (*attemptResult, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, err
	}
	if !req.raw {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req.endpoint, 0, start)
		return nil, err
	}
	defer resp.Body.Close()
	c.observe(req.endpoint, resp.StatusCode, start)

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &attemptResult{statusErr: &StatusError{
			Method:     req.method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}}, nil
	}

	out := &response{
		finalURL:    resp.Request.URL.String(),
		contentType: resp.Header.Get("Content-Type"),
	}
	if !req.raw {
		out.body, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	}
	return &attemptResult{response: out}, nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(endpoint, status, time.Since(start))
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, request{endpoint: endpoint, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decode(resp.body, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out any) error {
	resp, err := c.do(ctx, request{endpoint: endpoint, method: http.MethodPost, path: path, body: body})
	if err != nil {
		return err
	}
	return decode(resp.body, out)
}

func decode(data []byte, out any) error {
	if raw, ok := out.(*json.RawMessage); ok {
		if !json.Valid(data) {
			return fmt.Errorf("plateau: response is not valid JSON")
		}
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("plateau: failed to decode response: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
