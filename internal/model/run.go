package model

import "time"

// Run carries the state of one invocation through the pipeline.
// Every step fills in the fields it produces; nothing is kept across runs.
type Run struct {
	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// PrimaryCategory and DeceasedCategory name the source categories.
	PrimaryCategory  string `json:"primary_category"`
	DeceasedCategory string `json:"deceased_category"`

	// Records is the deduplicated person list.
	Records []PageRecord `json:"records"`

	// Romanized holds Records with their romanized titles, in the same order.
	Romanized []RomanizedRecord `json:"romanized"`

	// Buckets groups Romanized by first letter.
	Buckets Buckets `json:"-"`

	// Plan is the balanced grouping of Buckets.
	Plan Plan `json:"plan"`

	// Rendered is the generated template text.
	Rendered string `json:"rendered"`

	// CompletedSteps lists the names of the steps that finished.
	CompletedSteps []string `json:"completed_steps"`
}

// NewRun creates an empty run for the given categories.
func NewRun(primaryCategory, deceasedCategory string) *Run {
	return &Run{
		StartedAt:        time.Now(),
		PrimaryCategory:  primaryCategory,
		DeceasedCategory: deceasedCategory,
	}
}

// DeceasedCount returns the number of records marked deceased.
func (r *Run) DeceasedCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.IsDeceased {
			n++
		}
	}
	return n
}

// UserPageCount returns the number of records that are user pages.
func (r *Run) UserPageCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.IsUserPage {
			n++
		}
	}
	return n
}
