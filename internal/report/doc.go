// Package report writes run summaries and template diffs.
//
// A Summary is derived from a finished model.Run and rendered by one of the
// writers:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: structured JSON for other tools
//   - MarkdownWriter: Markdown with tables and a mermaid pie chart
//
// WriteUnifiedDiff compares the live page with the generated template.
package report
