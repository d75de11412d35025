package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/http/httpguts"

	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/infra/buildinfo"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
	"github.com/yndnr/ztctl-go/internal/telemetry/metric"
)

const (
	// DefaultEndpoint is the daemon's loopback API address.
	DefaultEndpoint = "http://127.0.0.1:9993"

	// DefaultTimeout bounds every request, including reading the body.
	DefaultTimeout = 10 * time.Second

	// AuthHeader carries the token on every request.
	AuthHeader = "X-ZT1-Auth"

	// RequestIDHeader correlates daemon requests with CLI debug logs.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody limits how much of an error body ends up in messages.
	maxErrorBody = 256
)

// HTTPClient provides HTTP communication with the daemon.
// It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// Option configures an HTTPClient.
type Option func(*options)

type options struct {
	endpoint string
	timeout  time.Duration
	metrics  *metric.Registry
}

// WithEndpoint overrides the daemon base URL.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMetrics records request metrics into r.
func WithMetrics(r *metric.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// NewHTTPClient creates a client that sends token in the X-ZT1-Auth header.
// No network I/O happens here.
func NewHTTPClient(token string, opts ...Option) (*HTTPClient, error) {
	if token == "" {
		return nil, domain.ErrConfig.WithDetails("auth token is empty")
	}
	if !httpguts.ValidHeaderFieldValue(token) {
		return nil, domain.ErrConfig.WithDetails("auth token is not a valid header value")
	}

	o := options{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout <= 0 {
		return nil, domain.ErrConfig.WithDetailsf("timeout must be positive, got %s", o.timeout)
	}

	baseURL := o.endpoint
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if u, err := url.Parse(baseURL); err != nil || u.Host == "" {
		return nil, domain.ErrConfig.WithDetailsf("invalid endpoint %q", o.endpoint)
	}

	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if o.metrics != nil {
		rt = o.metrics.InstrumentRoundTripper(rt)
	}

	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: o.timeout,
			Transport: &authTransport{
				next:      rt,
				token:     token,
				userAgent: buildinfo.UserAgent(),
				clientID:  ulid.Make().String(),
			},
		},
	}, nil
}

// NewHTTPClientFromFile reads the token at path and creates a client.
func NewHTTPClientFromFile(path string, opts ...Option) (*HTTPClient, error) {
	token, err := ReadToken(path)
	if err != nil {
		return nil, err
	}
	c, err := NewHTTPClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("token file %s: %w", path, err)
	}
	logger.Debug("auth token loaded", "path", path, "fingerprint", Fingerprint(token))
	return c, nil
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs a DELETE request.
func (c *HTTPClient) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.L(ctx).Debug("daemon request failed", "method", method, "url", target, "error", err)
		return nil, domain.ErrTransport.WithDetails(method + " " + target).WithCause(err)
	}
	var sent http.Header
	if resp.Request != nil {
		sent = resp.Request.Header
	}
	logger.L(ctx).Debug("daemon request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"headers", sent,
	)
	return resp, nil
}

// authTransport injects the auth and identification headers. The request
// id comes from the request context, so it matches the request_id on log
// lines; clientID stands in when the context carries none.
type authTransport struct {
	next      http.RoundTripper
	token     string
	userAgent string
	clientID  string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := logger.RequestIDFromContext(req.Context())
	if id == "" {
		id = t.clientID
	}

	r := req.Clone(req.Context())
	r.Header.Set(AuthHeader, t.token)
	r.Header.Set("User-Agent", t.userAgent)
	r.Header.Set(RequestIDHeader, id)
	return t.next.RoundTrip(r)
}

// ParseResponse closes the body and maps the response to a domain error,
// or decodes it into target. op names the operation in error details.
func ParseResponse(resp *http.Response, op string, target any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ErrTransport.WithDetails(op + ": read body").WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound.WithDetails(op)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return domain.ErrUnauthorized.WithDetailsf("%s: HTTP %d", op, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return domain.ErrDaemon.WithDetailsf("%s: HTTP %d%s", op, resp.StatusCode, bodySnippet(data))
	}

	if target != nil {
		if err := json.Unmarshal(data, target); err != nil {
			return domain.ErrDecode.WithDetails(op).WithCause(err)
		}
	}

	return nil
}

func bodySnippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return ""
	}
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return ": " + s
}
