package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
type SimpleWriter struct {
	baseWriter

	// showEmpty lists all 27 buckets, including empty ones.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty buckets.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	s := NewSummary(run)

	var sb strings.Builder
	w.writeHeader(&sb, s)
	w.writeBuckets(&sb, s)
	w.writeGroups(&sb, s)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 50))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 50))
	sb.WriteString("\n\n")
}

// writeHeader writes the run totals.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *Summary) {
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
	sb.WriteString("              PERSONS TEMPLATE RUN\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Started:    %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Categories: %s, %s\n", s.PrimaryCategory, s.DeceasedCategory)
	fmt.Fprintf(sb, "Persons:    %d\n", s.Total)
	fmt.Fprintf(sb, "Deceased:   %d\n", s.Deceased)
	fmt.Fprintf(sb, "User pages: %d\n", s.UserPages)
	sb.WriteString("\n")
}

// writeBuckets writes the population of every bucket.
func (w *SimpleWriter) writeBuckets(sb *strings.Builder, s *Summary) {
	writeSection(sb, "BUCKETS")

	counts := make(map[model.BucketKey]int, len(s.Buckets))
	for _, b := range s.Buckets {
		counts[b.Key] = b.Count
	}

	keys := make([]model.BucketKey, 0, model.BucketCount)
	if w.showEmpty {
		keys = model.CanonicalKeys()
	} else {
		for _, b := range s.Buckets {
			keys = append(keys, b.Key)
		}
	}

	if len(keys) == 0 {
		sb.WriteString("  No persons found\n\n")
		return
	}
	for _, k := range keys {
		fmt.Fprintf(sb, "  %-2s %5d\n", k, counts[k])
	}
	sb.WriteString("\n")
}

// writeGroups writes the chosen grouping.
func (w *SimpleWriter) writeGroups(sb *strings.Builder, s *Summary) {
	writeSection(sb, "GROUPS")

	if len(s.Groups) == 0 {
		sb.WriteString("  No groups\n\n")
		return
	}
	for i, g := range s.Groups {
		marker := " "
		if g.Oversized {
			marker = "!"
		}
		fmt.Fprintf(sb, "%s %2d. %-12s %5d\n", marker, i+1, g.Label, g.Size)
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Ceiling:  %d\n", s.MaxGroupSize)
	fmt.Fprintf(sb, "  Variance: %.2f\n", s.Variance)
	if s.Fallback {
		sb.WriteString("  WARNING: no grouping fits the ceiling, one group per bucket\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
}
