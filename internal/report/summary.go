package report

import (
	"time"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// GroupSummary describes one template column.
type GroupSummary struct {
	// Label is the column header, e.g. "A·B".
	Label string `json:"label"`

	// Size is the number of entries in the column.
	Size int `json:"size"`

	// Oversized is true when Size exceeds the ceiling.
	Oversized bool `json:"oversized"`
}

// Summary is the reportable view of a run.
type Summary struct {
	StartedAt        time.Time          `json:"started_at"`
	PrimaryCategory  string             `json:"primary_category"`
	DeceasedCategory string             `json:"deceased_category"`
	Total            int                `json:"total"`
	Deceased         int                `json:"deceased"`
	UserPages        int                `json:"user_pages"`
	Buckets          []model.BucketSize `json:"buckets"`
	Groups           []GroupSummary     `json:"groups"`
	MaxGroupSize     int                `json:"max_group_size"`
	Variance         float64            `json:"variance"`
	Fallback         bool               `json:"fallback"`
}

// NewSummary builds a Summary from a run.
func NewSummary(run *model.Run) *Summary {
	s := &Summary{
		StartedAt:        run.StartedAt,
		PrimaryCategory:  run.PrimaryCategory,
		DeceasedCategory: run.DeceasedCategory,
		Total:            len(run.Records),
		Deceased:         run.DeceasedCount(),
		UserPages:        run.UserPageCount(),
		Buckets:          run.Buckets.Sizes(),
		MaxGroupSize:     run.Plan.MaxGroupSize,
		Variance:         run.Plan.Variance,
		Fallback:         run.Plan.Fallback,
	}

	for i, g := range run.Plan.Groups {
		size := 0
		if i < len(run.Plan.GroupSizes) {
			size = run.Plan.GroupSizes[i]
		}
		s.Groups = append(s.Groups, GroupSummary{
			Label:     g.Label(),
			Size:      size,
			Oversized: size > run.Plan.MaxGroupSize,
		})
	}
	return s
}

// OversizedGroups returns the labels of the groups above the ceiling.
func (s *Summary) OversizedGroups() []string {
	var out []string
	for _, g := range s.Groups {
		if g.Oversized {
			out = append(out, g.Label)
		}
	}
	return out
}
