// Package main provides the entry point for the linktrail CLI.
//
// linktrail is a polite same-site web crawler. Starting from one or
// more seed URLs, it walks every same-host link breadth-first and
// appends each visited URL to a text file.
//
// Usage:
//
//	linktrail crawl <url> [<url>...]
//	linktrail history
//
// See --help for all available options.
package main

// main is the entry point for linktrail.
func main() {
	Execute()
}
