package sink

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSink(t *testing.T) {
	t.Parallel()

	t.Run("records one url per line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "visited_links.txt")

		s, err := NewFileSink(path)
		if err != nil {
			t.Fatalf("NewFileSink() error = %v", err)
		}

		urls := []string{
			"https://example.com/",
			"https://example.com/about",
		}
		for _, u := range urls {
			if err := s.Record(u); err != nil {
				t.Fatalf("Record(%q) error = %v", u, err)
			}
		}

		if err := s.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		content, err := os.ReadFile(path) //nolint:gosec // test-controlled path
		if err != nil {
			t.Fatal(err)
		}

		want := "https://example.com/\nhttps://example.com/about\n"
		if string(content) != want {
			t.Errorf("file content = %q, want %q", content, want)
		}
	})

	t.Run("appends across runs", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "visited_links.txt")

		for run := 0; run < 2; run++ {
			s, err := NewFileSink(path)
			if err != nil {
				t.Fatalf("NewFileSink() error = %v", err)
			}
			if err := s.Record("https://example.com/"); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
		}

		content, err := os.ReadFile(path) //nolint:gosec // test-controlled path
		if err != nil {
			t.Fatal(err)
		}

		if got := strings.Count(string(content), "\n"); got != 2 {
			t.Errorf("line count = %d, want 2 (second run must append)", got)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "deep", "nested", "out.txt")

		s, err := NewFileSink(path)
		if err != nil {
			t.Fatalf("NewFileSink() error = %v", err)
		}
		defer s.Close()

		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	})

	t.Run("record after close fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")

		s, err := NewFileSink(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}

		if err := s.Record("https://example.com/"); err == nil {
			t.Error("expected error recording to a closed sink")
		}
	})

	t.Run("double close is safe", func(t *testing.T) {
		t.Parallel()

		s, err := NewFileSink(filepath.Join(t.TempDir(), "out.txt"))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("second Close() error = %v, want nil", err)
		}
	})

	t.Run("flushes after every record", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")

		s, err := NewFileSink(path)
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		if err := s.Record("https://example.com/"); err != nil {
			t.Fatal(err)
		}

		// Readable before Close because Record flushes
		content, err := os.ReadFile(path) //nolint:gosec // test-controlled path
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "https://example.com/") {
			t.Error("record not flushed to disk before Close")
		}
	})
}

// recordingSink collects records and can simulate failure.
type recordingSink struct {
	records []string
	err     error
}

func (s *recordingSink) Record(url string) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, url)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func TestMultiSink(t *testing.T) {
	t.Parallel()

	t.Run("fans out to all sinks", func(t *testing.T) {
		t.Parallel()

		a := &recordingSink{}
		b := &recordingSink{}
		m := NewMultiSink(a, b)

		if err := m.Record("https://example.com/"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		if len(a.records) != 1 || len(b.records) != 1 {
			t.Errorf("records = %d/%d, want 1/1", len(a.records), len(b.records))
		}
	})

	t.Run("first failure stops fan-out", func(t *testing.T) {
		t.Parallel()

		a := &recordingSink{err: errors.New("disk full")}
		b := &recordingSink{}
		m := NewMultiSink(a, b)

		if err := m.Record("https://example.com/"); err == nil {
			t.Fatal("expected error from failing sink")
		}

		if len(b.records) != 0 {
			t.Error("later sink received a record after an earlier failure")
		}
	})
}
