package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/linktrail/linktrail/internal/model"
)

// MarkdownWriter outputs crawl summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl summaries in Markdown format.
func (w *MarkdownWriter) Write(summaries []*model.CrawlSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")

	w.writeOverview(md, summaries)
	for _, s := range summaries {
		w.writeSeed(md, s)
	}
	w.writeAlert(md, summaries)

	return len(md.String()), md.Build()
}

// writeOverview writes the per-seed overview table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, summaries []*model.CrawlSummary) {
	md.H2("Overview")
	md.PlainText("")

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		if s == nil {
			rows = append(rows, []string{"-", "-", "-", "-", "Not started"})
			continue
		}
		rows = append(rows, []string{
			"`" + s.Seed + "`",
			strconv.Itoa(s.PagesVisited),
			strconv.Itoa(s.PagesFailed),
			strconv.Itoa(s.PagesPending),
			statusText(s),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Seed", "Visited", "Failed", "Pending", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSeed writes the detail section for one crawl.
func (w *MarkdownWriter) writeSeed(md *markdown.Markdown, s *model.CrawlSummary) {
	if s == nil {
		return
	}

	md.H2(s.Seed)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration.Round(10 * time.Millisecond).String()},
			{"Pages Visited", strconv.Itoa(s.PagesVisited)},
			{"Pages Failed", strconv.Itoa(s.PagesFailed)},
			{"Pages Pending", strconv.Itoa(s.PagesPending)},
			{"Output File", "`" + s.OutputPath + "`"},
		},
	})
	md.PlainText("")

	w.writePieChart(md, s)
}

// writePieChart writes a mermaid pie chart of visit outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.CrawlSummary) {
	succeeded := s.PagesVisited - s.PagesFailed
	if succeeded <= 0 && s.PagesFailed <= 0 && s.PagesPending <= 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Visit Outcomes"),
		piechart.WithShowData(true),
	)

	if succeeded > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(succeeded))
	}
	if s.PagesFailed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.PagesFailed))
	}
	if s.PagesPending > 0 {
		chart.LabelAndIntValue("Unvisited", uint64(s.PagesPending))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a closing alert based on the batch outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summaries []*model.CrawlSummary) {
	var failed, cancelled int
	for _, s := range summaries {
		if s == nil {
			continue
		}
		failed += s.PagesFailed
		if s.Cancelled {
			cancelled++
		}
	}

	switch {
	case cancelled > 0:
		md.Warningf(
			"%d crawl(s) were cancelled before finishing; results are partial.",
			cancelled,
		)
	case failed > 0:
		md.Notef(
			"%d page(s) failed to fetch. Failed pages are recorded and never retried.",
			failed,
		)
	default:
		md.Tip("All pages fetched successfully.")
	}
	md.PlainText("")
}
