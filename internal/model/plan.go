package model

// Plan is the outcome of partitioning buckets into template columns.
type Plan struct {
	// Groups lists the columns in canonical order.
	Groups []GroupSpec `json:"groups"`

	// GroupSizes holds the total record count of each group, parallel to Groups.
	GroupSizes []int `json:"group_sizes"`

	// Variance is the mean squared deviation of GroupSizes.
	Variance float64 `json:"variance"`

	// MaxGroupSize is the ceiling the plan was computed for.
	MaxGroupSize int `json:"max_group_size"`

	// Fallback is true when no grouping met the ceiling and every bucket
	// became its own group. Some groups then exceed MaxGroupSize.
	Fallback bool `json:"fallback"`
}

// Oversized returns the indexes of groups whose size exceeds the ceiling.
func (p Plan) Oversized() []int {
	var out []int
	for i, size := range p.GroupSizes {
		if size > p.MaxGroupSize {
			out = append(out, i)
		}
	}
	return out
}
