package crawler

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks parses page markup and returns candidate crawl targets:
// absolute URLs whose host exactly equals the host of baseURL, in
// document order, duplicates included. Deduplication belongs to the
// frontier, not here.
//
// Resolution rules per href value:
//   - values starting with "/" are resolved against baseURL
//     (this includes protocol-relative "//host/path" values, which
//     resolve to a different host and then fail the same-host filter)
//   - absolute http/https URLs are kept as-is
//   - everything else (mailto:, javascript:, tel:, fragment-only,
//     empty) is discarded
//
// Design decision: We parse with golang.org/x/net/html rather than regex
// because it handles the malformed markup common on real pages with a
// best-effort partial parse instead of failing. The only error returned
// here is an invalid baseURL; broken HTML degrades to whatever anchors
// were recoverable.
func ExtractLinks(baseURL, content string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	// html.Parse on an in-memory string cannot fail on malformed input;
	// it builds a best-effort tree for any byte sequence.
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	links := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := anchorHref(n); ok {
				if resolved := resolveLink(base, href); resolved != "" {
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// anchorHref returns the href attribute of an anchor node.
// Anchors without an href are skipped entirely.
func anchorHref(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			return attr.Val, true
		}
	}
	return "", false
}

// resolveLink applies the resolution and same-host rules to one href
// value. It returns the normalized absolute URL, or "" when the value
// is discarded.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)

	var target *url.URL
	switch {
	case strings.HasPrefix(href, "/"):
		ref, err := url.Parse(href)
		if err != nil {
			return ""
		}
		target = base.ResolveReference(ref)
	default:
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		// Only already-absolute http(s) URLs survive; mailto:,
		// javascript:, fragment-only and empty values all fall out here.
		if u.Scheme != "http" && u.Scheme != "https" {
			return ""
		}
		target = u
	}

	// Same-origin filter: exact host match, no subdomain matching.
	if !strings.EqualFold(target.Host, base.Host) {
		return ""
	}

	return NormalizeURL(target.String())
}

// NormalizeURL normalizes a URL to its canonical string form so that set
// membership in the frontier deduplicates equal pages.
//
// Design decision: We normalize because the same page commonly appears
// under several spellings: with and without a fragment, mixed-case
// scheme or host, and bare-host versus trailing-slash root. Without
// this, the frontier would fetch the same page repeatedly.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
