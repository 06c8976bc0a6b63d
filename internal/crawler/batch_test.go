package crawler

import (
	"context"
	"errors"
	"testing"
)

func TestSeedRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("summaries are index-aligned with seeds", func(t *testing.T) {
		t.Parallel()

		seeds := []string{"https://a.example/", "https://b.example/"}

		factory := func(seed string) (*Crawler, error) {
			f := newStubFetcher(map[string]string{seed: page()})
			return New([]string{seed}, f, &memorySink{},
				WithDelay(0), WithLogger(quietLogger())), nil
		}

		runner := NewSeedRunner(factory,
			WithRunnerLogger(quietLogger()),
			WithLaunchInterval(0),
		)

		summaries, err := runner.Run(context.Background(), seeds)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if len(summaries) != 2 {
			t.Fatalf("got %d summaries, want 2", len(summaries))
		}
		for i, seed := range seeds {
			if summaries[i] == nil {
				t.Fatalf("summaries[%d] is nil", i)
			}
			if summaries[i].Seed != seed {
				t.Errorf("summaries[%d].Seed = %q, want %q", i, summaries[i].Seed, seed)
			}
			if summaries[i].PagesVisited != 1 {
				t.Errorf("summaries[%d].PagesVisited = %d, want 1", i, summaries[i].PagesVisited)
			}
		}
	})

	t.Run("factory failure does not stop sibling seeds", func(t *testing.T) {
		t.Parallel()

		factory := func(seed string) (*Crawler, error) {
			if seed == "https://broken.example/" {
				return nil, errors.New("browser launch failed")
			}
			f := newStubFetcher(map[string]string{seed: page()})
			return New([]string{seed}, f, &memorySink{},
				WithDelay(0), WithLogger(quietLogger())), nil
		}

		runner := NewSeedRunner(factory,
			WithRunnerLogger(quietLogger()),
			WithLaunchInterval(0),
		)

		summaries, err := runner.Run(context.Background(),
			[]string{"https://broken.example/", "https://ok.example/"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if summaries[0] != nil {
			t.Error("expected nil summary for the seed whose crawler failed to build")
		}
		if summaries[1] == nil || summaries[1].PagesVisited != 1 {
			t.Error("expected the healthy sibling to finish its crawl")
		}
	})

	t.Run("per-seed run errors keep partial summaries", func(t *testing.T) {
		t.Parallel()

		factory := func(seed string) (*Crawler, error) {
			f := newStubFetcher(map[string]string{seed: page()})
			// Sink fails on the only page, making the run fatal.
			return New([]string{seed}, f, &memorySink{failOn: seed},
				WithDelay(0), WithLogger(quietLogger())), nil
		}

		runner := NewSeedRunner(factory,
			WithRunnerLogger(quietLogger()),
			WithLaunchInterval(0),
		)

		summaries, err := runner.Run(context.Background(), []string{"https://a.example/"})
		if err != nil {
			t.Fatalf("Run() error = %v, per-seed failures must stay local", err)
		}

		if summaries[0] == nil {
			t.Fatal("expected the partial summary to be kept")
		}
		if summaries[0].PagesVisited != 1 {
			t.Errorf("PagesVisited = %d, want 1", summaries[0].PagesVisited)
		}
	})

	t.Run("concurrency below one is ignored", func(t *testing.T) {
		t.Parallel()

		runner := NewSeedRunner(nil, WithConcurrency(0))
		if runner.concurrency != 1 {
			t.Errorf("concurrency = %d, want default 1", runner.concurrency)
		}
	})
}
