package rates

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/networth"
	"github.com/etnz/networth/internal/common"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 4 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client performs rate limited JSON GETs for the rate sources.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
	cache      *diskCache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the number of requests per second.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := max(int(requestsPerSecond), 1)
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDiskCache caches successful responses under dir for ttl.
// It lets short lived processes share responses.
func WithDiskCache(dir string, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = &diskCache{dir: dir, ttl: ttl}
	}
}

// NewClient creates a Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache != nil && c.cache.ttl > 0 {
		c.cache.base = c.httpClient.Transport
		if c.cache.base == nil {
			c.cache.base = http.DefaultTransport
		}
		c.cache.logger = c.logger
		c.httpClient.Transport = c.cache
	}
	return c
}

// getJSON GETs addr and decodes the body with numbers kept as json.Number.
func (c *Client) getJSON(ctx context.Context, addr string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %s: %w", addr, err)
	}
	defer resp.Body.Close()
	c.logger.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("rates request")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %s/%s: %s", req.URL.Host, req.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", addr, err)
	}
	return v, nil
}

// number reads a JSON scalar as a Decimal.
func number(v any) (networth.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d := networth.ParseDecimal(n.String())
		return d, d.IsFinite()
	case float64:
		d := networth.D(n)
		return d, d.IsFinite()
	case string:
		d := networth.ParseDecimal(n)
		return d, d.IsFinite()
	}
	return networth.Decimal{}, false
}

// diskCache is a RoundTripper storing responses in dir.
// Keys are bucketed by ttl so entries expire with the bucket.
type diskCache struct {
	base   http.RoundTripper
	dir    string
	ttl    time.Duration
	logger *common.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	bucket := time.Now().Truncate(c.ttl).Unix()
	key := fmt.Sprintf("%d %s %s", bucket, req.Method, req.URL.String())
	key = fmt.Sprintf("nw-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put dumps resp to disk. DumpResponse restores the body so resp stays readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}
