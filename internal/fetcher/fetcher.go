package fetcher

import (
	"context"
	"errors"

	"github.com/linktrail/linktrail/internal/model"
)

// Fetcher retrieves a single page.
//
// Design decision: Fetch returns a FetchResult union instead of
// (*model.Page, error) because the contract is that no per-URL fault
// ever propagates to the caller: timeouts, transport errors, and driver
// panics all become Failure values. The only errors a Fetcher surfaces
// through Close are session-teardown problems.
type Fetcher interface {
	// Fetch retrieves the page at url. The context bounds the whole
	// attempt and cancels it between crawl iterations.
	Fetch(ctx context.Context, url string) *model.FetchResult

	// Close releases the fetch session (browser process, idle
	// connections). Safe to call more than once.
	Close() error
}

// Fetch failure classifications. Fetchers wrap the underlying cause so
// errors.Is can distinguish a timeout from a transport fault in logs
// and tests.
var (
	// ErrFetchTimeout indicates the navigation or idle-settle phase
	// exceeded its ceiling.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrFetchTransport indicates a DNS, connection, or TLS failure.
	ErrFetchTransport = errors.New("fetch transport error")
)
