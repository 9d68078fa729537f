package report

import (
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff labels for the two sides of a template comparison.
const (
	CurrentLabel   = "当前页面"
	GeneratedLabel = "生成模板"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// WriteUnifiedDiff writes a unified diff from current to generated.
// It reports whether the two texts differ; nothing is written when they
// are identical.
func WriteUnifiedDiff(w io.Writer, current, generated string) (bool, error) {
	if current == generated {
		return false, nil
	}

	diff := difflib.UnifiedDiff{
		A:        splitLines(current),
		B:        splitLines(generated),
		FromFile: CurrentLabel,
		ToFile:   GeneratedLabel,
		Context:  diffContext,
	}
	if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
		return true, err
	}
	return true, nil
}

// splitLines splits text into lines that keep their terminator. A final
// line without a newline gets one, so the diff output stays line based.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
