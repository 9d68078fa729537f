package report

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the summary of a run.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.Run) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the run to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(run *model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Format is a report output format.
type Format string

const (
	// FormatText is the plain text format.
	FormatText Format = "text"

	// FormatJSON is the JSON format.
	FormatJSON Format = "json"

	// FormatMarkdown is the Markdown format.
	FormatMarkdown Format = "markdown"
)

// FormatForPath picks a format from the file extension of path.
// Unknown extensions select FormatText.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// NewWriter creates the writer for a format.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
