// Package transport performs the request/response exchanges with the
// media manager: loading the profile page and posting preference changes.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/profilectl/internal/csrf"
)

// Request describes one preference mutation.
type Request struct {
	Method string
	Path   string
	// Body is encoded as JSON when non-nil.
	Body any
}

// DocumentTokens exposes the token carriers of the currently loaded page.
type DocumentTokens interface {
	CSRFFormField() *string
	CSRFMeta() *string
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	CookieName  string
	CookieValue string
	Logger      zerolog.Logger
}

// Client talks to the settings server. It is safe for concurrent use; widget
// requests run on command goroutines while the UI loop may reload the page.
type Client struct {
	http   *http.Client
	base   *url.URL
	logger zerolog.Logger

	mu  sync.RWMutex
	doc DocumentTokens
}

// New creates a Client with a cookie jar seeded with the session cookie.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if opts.CookieName != "" && opts.CookieValue != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: opts.CookieName, Value: opts.CookieValue, Path: "/"}})
	}

	return &Client{
		http:   &http.Client{Timeout: opts.Timeout, Jar: jar},
		base:   base,
		logger: opts.Logger,
	}, nil
}

// SetDocument records the page whose hidden field and meta tag take
// precedence over the cookie when resolving the anti-forgery token.
func (c *Client) SetDocument(doc DocumentTokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
}

// Cookies returns the cookies the jar would send to the server.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.base)
}

// Token resolves the anti-forgery token from the loaded page and the cookie jar.
func (c *Client) Token() (csrf.Token, bool) {
	c.mu.RLock()
	doc := c.doc
	c.mu.RUnlock()

	src := csrf.Sources{Cookies: c.Cookies()}
	if doc != nil {
		src.FormField = doc.CSRFFormField()
		src.Meta = doc.CSRFMeta()
	}
	return csrf.Lookup(src)
}

func (c *Client) url(path string) string {
	return c.base.String() + path
}

// Get fetches path and returns the raw body. Non-2xx responses are errors.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("close page response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}

// Do performs a preference mutation. A returned error is a transport
// failure (network error or a body that is not a JSON envelope); a server
// that answers with an error envelope is reported through Envelope.OK.
func (c *Client) Do(ctx context.Context, r Request) (Envelope, error) {
	var bodyReader io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	method := r.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(r.Path), bodyReader)
	if err != nil {
		return Envelope{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, ok := c.Token()
	if ok {
		req.Header.Set(csrf.HeaderName, token.Value)
	} else {
		// Sent anyway; the server is expected to reject it.
		c.logger.Error().Ctx(ctx).Str("path", r.Path).Msg("CSRF token not found")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, r.Path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{HTTPStatus: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("method", method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("preference request")

	return decodeEnvelope(resp.StatusCode, body)
}
