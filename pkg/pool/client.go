package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/392781/mint-backgrounds/pkg/httputil"
)

// userAgent is a browser-like identity; the pool throttles anonymous
// clients more aggressively.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"

// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
// unexpected status codes).
var ErrNetwork = errors.New("network error")

// Options holds the client tunables. The zero value disables throttling and
// retries entirely, which is only sensible in tests; production callers
// should start from config defaults.
type Options struct {
	RequestDelay    time.Duration // fixed pause before every request
	Jitter          time.Duration // upper bound of random extra pause
	MaxRetries      int           // attempts per page fetch
	RetryDelay      time.Duration // base backoff, multiplied by attempt number
	FetchTimeout    time.Duration // per-request timeout for listing pages
	DownloadTimeout time.Duration // per-request timeout for tarball downloads
}

// Client fetches directory listings and tarballs from a package pool.
// All requests are self-throttled and carry the browser User-Agent; page
// fetches are retried with linear backoff on rate-limit, server-busy and
// transport errors.
//
// The client is a single logical worker: requests are strictly sequential
// and rate limiting is cooperative sleeping, not a shared limiter.
type Client struct {
	baseURL  string
	pages    *http.Client
	tarballs *http.Client
	opts     Options
	logger   *log.Logger
}

// NewClient creates a pool client rooted at baseURL (no trailing slash).
// A nil logger falls back to log.Default().
func NewClient(baseURL string, opts Options, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		baseURL:  baseURL,
		pages:    &http.Client{Timeout: opts.FetchTimeout},
		tarballs: &http.Client{Timeout: opts.DownloadTimeout},
		opts:     opts,
		logger:   logger,
	}
}

// BaseURL returns the pool root this client scrapes.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch retrieves url and returns the decoded body text. On any exhausted
// or non-retryable failure it logs and returns the empty string: callers
// must treat "" as "no entries found", not as an error to propagate.
func (c *Client) Fetch(ctx context.Context, url string) string {
	var body string
	err := httputil.Retry(ctx, c.opts.MaxRetries, httputil.LinearBackoff(c.opts.RetryDelay), func() error {
		c.throttle(ctx)
		return c.get(ctx, url, &body)
	})
	if err != nil {
		c.logger.Warn("fetch failed", "url", url, "err", err)
		return ""
	}
	return body
}

// Directories fetches the pool root listing and returns the sorted set of
// package directory names. An unreachable pool yields an empty slice.
func (c *Client) Directories(ctx context.Context) []string {
	return ParseDirectories(c.Fetch(ctx, c.baseURL+"/"))
}

// Tarballs fetches one directory's listing and returns its release
// tarballs with their parsed sizes.
func (c *Client) Tarballs(ctx context.Context, dir string) []Tarball {
	return ParseTarballs(c.Fetch(ctx, c.baseURL+"/"+dir+"/"), c.baseURL, dir)
}

// Download opens a throttled streaming request for a tarball. The caller
// must close the returned body. Unlike Fetch, download failures are
// reported as errors so the caller can record a per-package failure.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	c.throttle(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.tarballs.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) get(ctx context.Context, url string, body *string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.pages.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		*body = string(data)
		return nil
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
}

// throttle sleeps the fixed request delay plus random jitter, returning
// early if ctx is cancelled.
func (c *Client) throttle(ctx context.Context) {
	d := c.opts.RequestDelay
	if c.opts.Jitter > 0 {
		d += rand.N(c.opts.Jitter)
	}
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
