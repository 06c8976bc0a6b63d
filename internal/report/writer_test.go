package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/linktrail/linktrail/internal/model"
)

// createTestSummaries creates sample crawl summaries for testing.
func createTestSummaries() []*model.CrawlSummary {
	return []*model.CrawlSummary{
		{
			Seed:         "https://example.com/",
			PagesVisited: 42,
			PagesFailed:  3,
			PagesPending: 7,
			StartedAt:    time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
			Duration:     5 * time.Minute,
			OutputPath:   "visited_links.txt",
		},
		{
			Seed:         "https://other.example.net/",
			PagesVisited: 10,
			PagesFailed:  0,
			PagesPending: 0,
			StartedAt:    time.Date(2026, 8, 25, 9, 10, 0, 0, time.UTC),
			Duration:     90 * time.Second,
			OutputPath:   "visited_links.txt",
		},
	}
}

// TestSimpleWriter tests the human-readable summary writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and seeds", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "CRAWL SUMMARY") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "https://example.com/") {
			t.Error("expected output to contain first seed")
		}
		if !strings.Contains(output, "https://other.example.net/") {
			t.Error("expected output to contain second seed")
		}
	})

	t.Run("writes counters and totals", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Pages Visited:  42") {
			t.Error("expected output to contain visited count")
		}
		if !strings.Contains(output, "TOTAL: 52 visited, 3 failed, 7 pending across 2 seed(s)") {
			t.Errorf("expected aggregate totals line, got:\n%s", output)
		}
	})

	t.Run("marks budget-capped run", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Budget reached") {
			t.Error("expected status to show the page budget was reached")
		}
	})

	t.Run("marks cancelled run", func(t *testing.T) {
		t.Parallel()

		summaries := createTestSummaries()
		summaries[0].Cancelled = true

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(summaries); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Cancelled (partial results)") {
			t.Error("expected status to show cancellation")
		}
	})

	t.Run("verbose adds timing details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Duration:") {
			t.Error("expected verbose output to contain duration")
		}
		if !strings.Contains(output, "Started:") {
			t.Error("expected verbose output to contain start time")
		}
	})

	t.Run("tolerates nil summary for failed seed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write([]*model.CrawlSummary{nil}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "did not start") {
			t.Error("expected placeholder for a crawl that never started")
		}
	})
}

// TestJSONWriter tests the JSON summary writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("emits valid json envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithVersion("1.0.0"))

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Version string                `json:"version"`
			Seeds   int                   `json:"seeds"`
			Crawls  []*model.CrawlSummary `json:"crawls"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if got.Version != "1.0.0" {
			t.Errorf("Version = %q, want %q", got.Version, "1.0.0")
		}
		if got.Seeds != 2 {
			t.Errorf("Seeds = %d, want 2", got.Seeds)
		}
		if len(got.Crawls) != 2 {
			t.Fatalf("Crawls length = %d, want 2", len(got.Crawls))
		}
		if got.Crawls[0].PagesVisited != 42 {
			t.Errorf("PagesVisited = %d, want 42", got.Crawls[0].PagesVisited)
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("ends with newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})
}

// TestMarkdownWriter tests the Markdown summary writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title and overview table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Crawl Report") {
			t.Error("expected markdown title")
		}
		if !strings.Contains(output, "| Seed ") {
			t.Error("expected overview table header")
		}
		if !strings.Contains(output, "`https://example.com/`") {
			t.Error("expected seed in overview table")
		}
	})

	t.Run("writes per-seed detail sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## https://example.com/") {
			t.Error("expected per-seed section heading")
		}
		if !strings.Contains(output, "mermaid") {
			t.Error("expected mermaid pie chart block")
		}
	})

	t.Run("notes failed pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "3 page(s) failed") {
			t.Error("expected alert mentioning failed pages")
		}
	})
}

// errorWriter always fails, to exercise MultiWriter's error handling.
type errorWriter struct{}

func (errorWriter) Write([]*model.CrawlSummary) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests fan-out across multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&buf1), NewJSONWriter(&buf2))

		if _, err := mw.Write(createTestSummaries()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if buf1.Len() == 0 {
			t.Error("expected simple output to be written")
		}
		if buf2.Len() == 0 {
			t.Error("expected JSON output to be written")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(errorWriter{}, NewSimpleWriter(&buf))

		if _, err := mw.Write(createTestSummaries()); err == nil {
			t.Fatal("expected error from failing writer")
		}

		if buf.Len() != 0 {
			t.Error("expected later writer to be skipped after error")
		}
	})
}
