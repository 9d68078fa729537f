package report

import (
	"encoding/json"
	"io"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// includeRecords adds the romanized records to the output.
	includeRecords bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithRecords includes every romanized record in the output.
func WithRecords(include bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.includeRecords = include
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps the summary with the optional record list.
type JSONReport struct {
	*Summary

	// Records lists every person with its romanized title and bucket.
	Records []model.RomanizedRecord `json:"records,omitempty"`
}

// Write outputs the run summary in JSON format.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	out := JSONReport{Summary: NewSummary(run)}
	if w.includeRecords {
		out.Records = run.Romanized
	}
	return w.writeJSON(out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
