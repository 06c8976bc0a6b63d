package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/linktrail/linktrail/internal/model"
)

// HTTPFetcher retrieves pages with a plain HTTP GET. It is the right
// choice for static sites: no browser process, no render phase, one
// request per page.
type HTTPFetcher struct {
	// client performs the requests. Shared across fetches so keep-alive
	// connections are reused within a crawl.
	client *http.Client

	// navTimeout bounds each request from dial to body read.
	navTimeout time.Duration

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64

	// headers are extra request headers applied after the defaults,
	// so they can override Accept or add cookies.
	headers map[string]string
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient replaces the underlying HTTP client.
// Tests use this to point the fetcher at httptest servers with
// self-signed certificates.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// WithHTTPNavigationTimeout sets the per-request deadline.
func WithHTTPNavigationTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.navTimeout = d
	}
}

// WithHTTPUserAgent sets the User-Agent header.
func WithHTTPUserAgent(ua string) HTTPOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHTTPHeaders adds custom headers sent with every request,
// such as authentication cookies for sites behind a login.
func WithHTTPHeaders(headers map[string]string) HTTPOption {
	return func(f *HTTPFetcher) {
		if f.headers == nil {
			f.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// WithHTTPMaxBodySize limits the response bytes read per page.
func WithHTTPMaxBodySize(size int64) HTTPOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// NewHTTPFetcher creates a static-page fetcher with sane defaults:
// 180s navigation timeout, 5MB body cap, descriptive User-Agent.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      &http.Client{},
		navTimeout:  180 * time.Second,
		userAgent:   "linktrail/1.0 (+https://github.com/linktrail/linktrail)",
		maxBodySize: 5 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET for url and converts every fault into a Failure
// result. The navigation timeout applies on top of ctx.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) *model.FetchResult {
	reqCtx, cancel := context.WithTimeout(ctx, f.navTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return model.Failure(fmt.Errorf("%w: %v", ErrFetchTransport, err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Failure(classifyError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return model.Failure(classifyError(err))
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	return model.Content(&model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(body),
	})
}

// Close releases idle keep-alive connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// classifyError maps transport-level errors onto the package's failure
// taxonomy so callers can tell timeouts from connection faults.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrFetchTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrFetchTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrFetchTransport, err)
}
