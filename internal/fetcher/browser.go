package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/linktrail/linktrail/internal/model"
)

// defaultIdleSettle is how long the network must stay quiet before a
// dynamic page counts as settled. Shorter values finish faster but can
// miss late XHR-driven content.
const defaultIdleSettle = 500 * time.Millisecond

// BrowserFetcher retrieves fully rendered pages through a headless
// browser controlled with go-rod. Script-generated links only exist in
// the rendered DOM, so this is the default fetcher.
//
// Design decision: One browser and one tab are reused for the whole
// crawl rather than a tab per fetch because:
//  1. The crawl loop is sequential; there is never more than one fetch
//     in flight
//  2. Tab reuse keeps cookies and cache warm, matching how a real
//     visitor loads successive pages
//  3. Browser startup is expensive; paying it once per crawl matters
//     for short runs
type BrowserFetcher struct {
	// launcher manages the browser process so Close can clean it up.
	launcher *launcher.Launcher

	// browser is the CDP connection.
	browser *rod.Browser

	// page is the single reused tab.
	page *rod.Page

	// launchErr remembers a failed launch so every subsequent fetch
	// fails fast instead of retrying the launch per URL.
	launchErr error

	// navTimeout bounds navigation plus the document load event.
	navTimeout time.Duration

	// idleTimeout bounds the wait for the network-settled condition.
	idleTimeout time.Duration

	// userAgent overrides the browser's default User-Agent.
	userAgent string

	closed bool
}

// BrowserOption configures a BrowserFetcher.
type BrowserOption func(*BrowserFetcher)

// WithNavigationTimeout sets the ceiling for navigation and load.
func WithNavigationTimeout(d time.Duration) BrowserOption {
	return func(f *BrowserFetcher) {
		f.navTimeout = d
	}
}

// WithIdleTimeout sets the ceiling for the network-settled wait.
func WithIdleTimeout(d time.Duration) BrowserOption {
	return func(f *BrowserFetcher) {
		f.idleTimeout = d
	}
}

// WithUserAgent sets the User-Agent the browser reports.
func WithUserAgent(ua string) BrowserOption {
	return func(f *BrowserFetcher) {
		f.userAgent = ua
	}
}

// NewBrowserFetcher creates a rendering fetcher. The browser process is
// launched lazily on the first Fetch so that constructing a crawler is
// cheap and launch failures surface as fetch failures, never panics.
//
// Both timeouts default to a generous 180 seconds: dynamic pages on slow
// hosts can take minutes to settle, and a premature timeout loses the
// links that scripts were still inserting.
func NewBrowserFetcher(opts ...BrowserOption) *BrowserFetcher {
	f := &BrowserFetcher{
		navTimeout:  180 * time.Second,
		idleTimeout: 180 * time.Second,
		userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:88.0) Gecko/20100101 Firefox/88.0",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ensureSession launches the browser on first use.
func (f *BrowserFetcher) ensureSession() error {
	if f.browser != nil {
		return nil
	}
	if f.launchErr != nil {
		return f.launchErr
	}

	// Self-signed and expired certificates are common on small sites;
	// the crawler records links, it does not vouch for transport security.
	f.launcher = launcher.New().
		Headless(true).
		Set("ignore-certificate-errors")

	controlURL, err := f.launcher.Launch()
	if err != nil {
		f.launchErr = fmt.Errorf("%w: browser launch: %v", ErrFetchTransport, err)
		return f.launchErr
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		f.launchErr = fmt.Errorf("%w: browser connect: %v", ErrFetchTransport, err)
		return f.launchErr
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		f.launchErr = fmt.Errorf("%w: open tab: %v", ErrFetchTransport, err)
		return f.launchErr
	}

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			_ = browser.Close()
			f.launchErr = fmt.Errorf("%w: set user agent: %v", ErrFetchTransport, err)
			return f.launchErr
		}
	}

	f.browser = browser
	f.page = page
	return nil
}

// Fetch navigates the shared tab to url, waits for the document load
// event and then for the network to settle, and returns the rendered
// markup. Every fault, including driver panics, becomes a Failure.
func (f *BrowserFetcher) Fetch(ctx context.Context, pageURL string) (result *model.FetchResult) {
	// rod occasionally panics inside CDP handling when the browser
	// process dies mid-operation. A dead browser must read as a failed
	// page, not a crashed crawl.
	defer func() {
		if r := recover(); r != nil {
			result = model.Failure(fmt.Errorf("%w: browser fault: %v", ErrFetchTransport, r))
		}
	}()

	if err := f.ensureSession(); err != nil {
		return model.Failure(err)
	}

	page := f.page.Context(ctx)

	nav := page.Timeout(f.navTimeout)
	if err := nav.Navigate(pageURL); err != nil {
		return model.Failure(classifyError(err))
	}
	if err := nav.WaitLoad(); err != nil {
		return model.Failure(classifyError(err))
	}

	// Second, independent ceiling: wait for in-flight requests to go
	// quiet so script-inserted content is present in the DOM.
	wait := page.Timeout(f.idleTimeout).WaitRequestIdle(defaultIdleSettle, nil, nil, nil)
	wait()

	html, err := page.HTML()
	if err != nil {
		return model.Failure(classifyError(err))
	}

	pageModel := &model.Page{
		URL:  pageURL,
		HTML: html,
	}
	if info, err := page.Info(); err == nil {
		pageModel.Title = info.Title
	}

	return model.Content(pageModel)
}

// Close shuts the browser down and cleans up the launched process.
// It runs on every crawl exit path, including cancellation.
func (f *BrowserFetcher) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
		f.page = nil
	}
	if f.launcher != nil {
		f.launcher.Cleanup()
		f.launcher = nil
	}
	return err
}
