package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format, suitable for a
// CI job summary or an issue comment.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	s := NewSummary(run)
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeGroups(md, s)
	w.writeBuckets(md, s)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run totals.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1("Persons Template Run")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Categories", s.PrimaryCategory + ", " + s.DeceasedCategory},
			{"Persons", strconv.Itoa(s.Total)},
			{"Deceased", strconv.Itoa(s.Deceased)},
			{"User pages", strconv.Itoa(s.UserPages)},
		},
	})
	md.PlainText("")
}

// writeGroups writes the chosen grouping and its balance.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, s *Summary) {
	md.H2("Groups")
	md.PlainText("")

	if len(s.Groups) == 0 {
		md.PlainText("No groups.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(s.Groups))
	for i, g := range s.Groups {
		status := "✅"
		if g.Oversized {
			status = "⚠️ over ceiling"
		}
		rows[i] = []string{strconv.Itoa(i + 1), g.Label, strconv.Itoa(g.Size), status}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Buckets", "Entries", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	md.BulletList(
		fmt.Sprintf("Ceiling: %d", s.MaxGroupSize),
		fmt.Sprintf("Variance: %.2f", s.Variance),
	)
	md.PlainText("")

	w.writePieChart(md, s)
	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of the group sizes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Entries per Group"),
		piechart.WithShowData(true),
	)
	for _, g := range s.Groups {
		if g.Size > 0 {
			chart.LabelAndIntValue(g.Label, uint64(g.Size))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert flags a plan that could not meet the ceiling.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *Summary) {
	if s.Fallback {
		md.Warningf(
			"No grouping fits the ceiling of %d. Every bucket became its own group; %d group(s) exceed it.",
			s.MaxGroupSize, len(s.OversizedGroups()),
		)
	} else {
		md.Note("Every group is within the ceiling.")
	}
	md.PlainText("")
}

// writeBuckets writes the population of every non-empty bucket.
func (w *MarkdownWriter) writeBuckets(md *markdown.Markdown, s *Summary) {
	md.H2("Buckets")
	md.PlainText("")

	if len(s.Buckets) == 0 {
		md.PlainText("No persons found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(s.Buckets))
	for i, b := range s.Buckets {
		rows[i] = []string{string(b.Key), strconv.Itoa(b.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Bucket", "Entries"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [wikifur-persons-template-bot](https://github.com/TimXiedada/wikifur-persons-template-bot)*")
}
