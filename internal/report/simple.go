package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/linktrail/linktrail/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display after a crawl finishes.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs all crawl summaries in human-readable format.
func (w *SimpleWriter) Write(summaries []*model.CrawlSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	for i, s := range summaries {
		if i > 0 {
			sb.WriteString(strings.Repeat("-", 70))
			sb.WriteString("\n\n")
		}
		w.writeSummary(&sb, s)
	}

	w.writeTotals(&sb, summaries)

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeSummary writes one per-seed section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s *model.CrawlSummary) {
	if s == nil {
		sb.WriteString("Seed:           (crawl did not start)\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("Seed:           %s\n", s.Seed))
	sb.WriteString(fmt.Sprintf("Pages Visited:  %d\n", s.PagesVisited))
	sb.WriteString(fmt.Sprintf("Pages Failed:   %d\n", s.PagesFailed))
	sb.WriteString(fmt.Sprintf("Pages Pending:  %d\n", s.PagesPending))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", statusText(s)))

	if w.verbose {
		sb.WriteString(fmt.Sprintf("Started:        %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST")))
		sb.WriteString(fmt.Sprintf("Duration:       %s\n", s.Duration.Round(10*time.Millisecond)))
	}

	if s.OutputPath != "" {
		sb.WriteString(fmt.Sprintf("Output:         %s\n", s.OutputPath))
	}

	sb.WriteString("\n")
}

// writeTotals writes the aggregate line across all seeds.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, summaries []*model.CrawlSummary) {
	var visited, failed, pending int
	for _, s := range summaries {
		if s == nil {
			continue
		}
		visited += s.PagesVisited
		failed += s.PagesFailed
		pending += s.PagesPending
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("TOTAL: %d visited, %d failed, %d pending across %d seed(s)\n",
		visited, failed, pending, len(summaries)))
}
