package model

import "strings"

// Page represents a single fetched web page.
//
// Design decision: We keep only what the crawl loop needs (URL, status,
// content type, title, HTML) rather than a full response capture because:
//  1. Pages live only for one loop iteration; nothing persists the body
//  2. Link extraction needs the HTML string, not raw bytes
//  3. A small struct keeps per-iteration allocations cheap
type Page struct {
	// URL is the normalized absolute URL the page was fetched from.
	URL string

	// StatusCode is the HTTP response status code.
	// Zero for browser-rendered fetches where no status is surfaced.
	StatusCode int

	// ContentType is the MIME type from the Content-Type header,
	// without parameters such as charset.
	ContentType string

	// Title is the page title, when the fetcher extracts one.
	Title string

	// HTML is the (possibly rendered) page markup.
	HTML string
}

// IsHTML reports whether the page content type indicates HTML.
// Browser-rendered pages carry an empty content type and are
// always treated as HTML since the renderer produced markup.
func (p *Page) IsHTML() bool {
	if p.ContentType == "" {
		return true
	}
	return strings.HasPrefix(p.ContentType, "text/html") ||
		strings.HasPrefix(p.ContentType, "application/xhtml+xml")
}
