package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"go.uber.org/zap"
)

// Catalog defines the read operations the screens depend on.
// This interface is implemented by *Client and can be used for testing.
type Catalog interface {
	ListItems(ctx context.Context, limit, offset int) (ListPage, error)
	GetItemDetail(ctx context.Context, id int) (ItemDetail, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the PokeAPI REST catalog.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.SugaredLogger
}

const (
	// DefaultBaseURL is the public catalog root.
	DefaultBaseURL = "https://pokeapi.co/api/v2/"
	// DefaultTimeout applies separately to connect, read and write.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "dex/0.1"
	maxBodyBytes     = 16 << 20
)

var (
	validate     = validator.New()
	queryEncoder = schema.NewEncoder()

	sharedHTTP = sync.OnceValue(func() *http.Client {
		return NewHTTPClient(DefaultTimeout)
	})
)

// SharedHTTPClient returns the process-wide HTTP client, building it on first use.
func SharedHTTPClient() *http.Client {
	return sharedHTTP()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		userAgent: defaultUserAgent,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = SharedHTTPClient()
	}
	return c, nil
}

// BaseURL returns the normalized catalog root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type listQuery struct {
	Limit  int `schema:"limit"`
	Offset int `schema:"offset"`
}

// ListItems retrieves one page of item summaries.
func (c *Client) ListItems(ctx context.Context, limit, offset int) (ListPage, error) {
	if c == nil {
		return ListPage{}, fmt.Errorf("client is nil")
	}
	if limit <= 0 {
		return ListPage{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		offset = 0
	}
	values := url.Values{}
	if err := queryEncoder.Encode(listQuery{Limit: limit, Offset: offset}, values); err != nil {
		return ListPage{}, fmt.Errorf("encode query: %w", err)
	}
	rel := &url.URL{Path: "pokemon", RawQuery: values.Encode()}
	var page ListPage
	if err := c.doURL(ctx, rel, &page); err != nil {
		return ListPage{}, err
	}
	return page, nil
}

// GetItemDetail retrieves the full record for one item.
func (c *Client) GetItemDetail(ctx context.Context, id int) (ItemDetail, error) {
	if c == nil {
		return ItemDetail{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return ItemDetail{}, fmt.Errorf("item id must be positive, got %d", id)
	}
	rel := &url.URL{Path: "pokemon/" + strconv.Itoa(id)}
	var detail ItemDetail
	if err := c.doURL(ctx, rel, &detail); err != nil {
		return ItemDetail{}, err
	}
	return detail, nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	resource := rel.Path
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.log.Debugf("Fetching %s", reqURL)
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "url", reqURL.String(), "error", err)
		return &NetworkError{Op: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: resource}
	case resp.StatusCode >= 400:
		return &StatusError{Resource: resource, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Warnw("read body failed", "url", reqURL.String(), "error", err)
		return &NetworkError{Op: "read response", Err: err}
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &DecodeError{Resource: resource, Err: err}
	}
	if err := validate.Struct(dest); err != nil {
		return &DecodeError{Resource: resource, Err: err}
	}
	return nil
}

// NewHTTPClient builds an HTTP client whose connect, read and write phases
// each time out after timeout. Reads and writes are measured per call on the
// connection, not across the whole request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, read: timeout, write: timeout}, nil
		},
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport}
}

type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
