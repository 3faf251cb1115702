// Package scrape provides the shared HTTP and HTML plumbing for county
// court adapters: a throttled browser-like client, HTML node helpers,
// and detection of anti-automation challenges.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	// requestTimeout bounds a single page fetch.
	requestTimeout = 30 * time.Second

	// requestInterval spaces consecutive requests to one site.
	requestInterval = 1500 * time.Millisecond

	// maxBodySize caps how much of a response is read.
	maxBodySize = 4 << 20 // 4 MiB
)

// browserHeaders mimic a regular desktop browser. Court sites serve
// reduced or blocked pages to obvious bots.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// Client is a throttled, cookie-aware HTTP client for one county site.
// Each request waits on a token bucket so consecutive page fetches stay
// a courteous interval apart.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client with browser headers, a cookie jar (several
// county sites are session-based), and the standard request throttle.
func NewClient() *Client {
	jar, _ := cookiejar.New(nil) // only errors on bad options
	return &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Get fetches a page and returns the parsed document root.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*html.Node, error) {
	if params != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse url: %w", err)
		}
		u.RawQuery = params.Encode()
		rawURL = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// PostForm submits a form and returns the parsed response document.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// do applies the throttle and headers, performs the request, and parses
// the body. Non-2xx statuses and anti-automation challenges come back as
// typed errors so adapters can degrade gracefully.
func (c *Client) do(req *http.Request) (*html.Node, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, req.URL.Host, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if HasChallenge(doc) {
		return nil, ErrChallenge
	}
	return doc, nil
}
