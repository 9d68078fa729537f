package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// createTestRun creates a finished run with sample data.
func createTestRun(fallback bool) *model.Run {
	run := model.NewRun("人物", "逝世的人物")
	run.StartedAt = time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)

	run.Records = []model.PageRecord{
		{ID: 1, Title: "阿狸"},
		{ID: 2, Title: "Bob", IsUserPage: true},
		{ID: 3, Title: "北极", IsDeceased: true},
	}
	for i, r := range run.Records {
		romanized := []string{"ali", "Bob", "beiji"}[i]
		run.Romanized = append(run.Romanized, model.NewRomanizedRecord(r, romanized))
	}
	run.Buckets = model.NewBuckets(map[model.BucketKey][]model.RomanizedRecord{
		"A": {run.Romanized[0]},
		"B": {run.Romanized[1], run.Romanized[2]},
	})

	if fallback {
		run.Plan = model.Plan{
			Groups:       []model.GroupSpec{{Keys: []model.BucketKey{"A"}}, {Keys: []model.BucketKey{"B"}}},
			GroupSizes:   []int{1, 2},
			Variance:     0.25,
			MaxGroupSize: 1,
			Fallback:     true,
		}
	} else {
		run.Plan = model.Plan{
			Groups:       []model.GroupSpec{{Keys: []model.BucketKey{"A", "B"}}},
			GroupSizes:   []int{3},
			MaxGroupSize: 200,
		}
	}
	return run
}

// TestNewSummary tests deriving a summary from a run.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	s := NewSummary(createTestRun(true))
	if s.Total != 3 || s.Deceased != 1 || s.UserPages != 1 {
		t.Errorf("unexpected totals %+v", s)
	}
	if len(s.Buckets) != 2 || s.Buckets[1].Count != 2 {
		t.Errorf("unexpected buckets %+v", s.Buckets)
	}
	if len(s.Groups) != 2 || s.Groups[1].Label != "B" || !s.Groups[1].Oversized {
		t.Errorf("unexpected groups %+v", s.Groups)
	}
	if got := s.OversizedGroups(); len(got) != 1 || got[0] != "B" {
		t.Errorf("OversizedGroups() = %v", got)
	}
}

// TestSimpleWriter tests the text summary.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes totals and groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestRun(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		output := buf.String()
		for _, want := range []string{"PERSONS TEMPLATE RUN", "Persons:    3", "A·B", "Ceiling:  200"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
		if strings.Contains(output, "WARNING") {
			t.Error("unexpected fallback warning")
		}
	})

	t.Run("flags fallback", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestRun(true)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "WARNING: no grouping fits the ceiling") {
			t.Errorf("expected fallback warning:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "!  2. B") {
			t.Errorf("expected oversized marker:\n%s", buf.String())
		}
	})

	t.Run("shows empty buckets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowEmpty(true)).Write(createTestRun(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "  Z      0\n") {
			t.Errorf("expected empty Z bucket:\n%s", buf.String())
		}
	})

	t.Run("empty run", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(model.NewRun("人物", "逝世的人物")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No persons found") || !strings.Contains(buf.String(), "No groups") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON summary.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestRun(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["total"] != float64(3) {
			t.Errorf("expected total 3, got %v", got["total"])
		}
		if _, ok := got["records"]; ok {
			t.Error("records must be omitted by default")
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact single-line output")
		}
	})

	t.Run("pretty print with records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint(), WithRecords(true))
		if _, err := w.Write(createTestRun(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"total\": 3") {
			t.Errorf("expected indented output:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "\"romanized\": \"beiji\"") {
			t.Errorf("expected records in output:\n%s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown summary.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestRun(false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Persons Template Run", "## Groups", "## Buckets", "```mermaid", "A·B", "[!NOTE]"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})

	t.Run("warns on fallback", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestRun(true)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Errorf("expected warning alert:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "over ceiling") {
			t.Errorf("expected oversized group status:\n%s", buf.String())
		}
	})
}

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		m := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))
		n, err := m.Write(createTestRun(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var js bytes.Buffer
		m := NewMultiWriter(NewSimpleWriter(errWriter{}), NewJSONWriter(&js))
		if _, err := m.Write(createTestRun(false)); err == nil {
			t.Error("expected error")
		}
		if js.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

// TestFormatForPath tests format selection by extension.
func TestFormatForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
	}{
		{"summary.md", FormatMarkdown},
		{"out/SUMMARY.MD", FormatMarkdown},
		{"summary.markdown", FormatMarkdown},
		{"summary.json", FormatJSON},
		{"summary.txt", FormatText},
		{"summary", FormatText},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	var buf bytes.Buffer
	if _, ok := NewWriter(FormatMarkdown, &buf).(*MarkdownWriter); !ok {
		t.Error("expected MarkdownWriter for FormatMarkdown")
	}
	if _, ok := NewWriter(FormatJSON, &buf).(*JSONWriter); !ok {
		t.Error("expected JSONWriter for FormatJSON")
	}
	if _, ok := NewWriter(FormatText, &buf).(*SimpleWriter); !ok {
		t.Error("expected SimpleWriter for FormatText")
	}
}

// TestWriteUnifiedDiff tests the template diff.
func TestWriteUnifiedDiff(t *testing.T) {
	t.Parallel()

	t.Run("identical texts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		changed, err := WriteUnifiedDiff(&buf, "a\nb\n", "a\nb\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if changed || buf.Len() != 0 {
			t.Errorf("expected no diff, got changed=%v output %q", changed, buf.String())
		}
	})

	t.Run("changed line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		changed, err := WriteUnifiedDiff(&buf, "a\nb\nc\n", "a\nB\nc\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !changed {
			t.Fatal("expected a difference")
		}

		want := "--- 当前页面\n+++ 生成模板\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"
		if buf.String() != want {
			t.Errorf("diff =\n%s\nwant\n%s", buf.String(), want)
		}
	})

	t.Run("missing page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		changed, err := WriteUnifiedDiff(&buf, "", "x\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !changed || !strings.Contains(buf.String(), "+x\n") {
			t.Errorf("expected added line, got %q", buf.String())
		}
	})
}

// TestSplitLines tests line splitting for the diff.
func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a\n"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b\n"}},
		{"a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}
	for _, tt := range tests {
		got := splitLines(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
