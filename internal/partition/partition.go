package partition

import (
	"log/slog"
	"math"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// windowSlack is how far the candidate group count may deviate from the
// lower bound ceil(total / maxGroupSize) in either direction.
const windowSlack = 2

// Partitioner computes balanced groupings for a fixed ceiling.
type Partitioner struct {
	// maxGroupSize is the largest number of records a group may hold.
	maxGroupSize int

	// logger reports the search window and fallbacks.
	logger *slog.Logger
}

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Partitioner) {
		p.logger = logger
	}
}

// New creates a Partitioner. A maxGroupSize below 1 is treated as 1.
func New(maxGroupSize int, opts ...Option) *Partitioner {
	p := &Partitioner{
		maxGroupSize: max(maxGroupSize, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// MaxGroupSize returns the ceiling used by the partitioner.
func (p *Partitioner) MaxGroupSize() int {
	return p.maxGroupSize
}

// Partition is a convenience wrapper returning only the groups of the plan.
func Partition(sizes []model.BucketSize, maxGroupSize int) []model.GroupSpec {
	return New(maxGroupSize).Plan(sizes).Groups
}

// Plan partitions the buckets, given in canonical order, into contiguous
// groups. Every bucket appears in exactly one group and group order follows
// bucket order. Empty input yields an empty plan.
func (p *Partitioner) Plan(sizes []model.BucketSize) model.Plan {
	if len(sizes) == 0 {
		return model.Plan{MaxGroupSize: p.maxGroupSize}
	}

	total := 0
	for _, s := range sizes {
		total += s.Count
	}
	lo, hi := SearchWindow(total, p.maxGroupSize, len(sizes))

	p.logger.Debug("searching group counts",
		"buckets", len(sizes),
		"total", total,
		"maxGroupSize", p.maxGroupSize,
		"minCount", lo,
		"maxCount", hi,
	)

	var (
		best      [][]int
		bestScore = math.Inf(1)
		found     bool
	)
	// The greedy fill is governed by the ceiling alone, so every candidate
	// count in the window produces the same grouping. It is computed once
	// and kept when the window is non-empty, which is exactly the outcome of
	// scoring each candidate and keeping the first minimum.
	if lo <= hi {
		groups := greedyFill(sizes, p.maxGroupSize)
		groupSizes := sumGroups(sizes, groups)
		if feasible(groupSizes, p.maxGroupSize) {
			best = groups
			bestScore = Variance(groupSizes)
			found = true
		}
	}

	if !found {
		best = singletons(len(sizes))
		groupSizes := sumGroups(sizes, best)
		p.logger.Warn("no grouping fits the size ceiling; using one group per bucket",
			"maxGroupSize", p.maxGroupSize,
			"oversized", oversizedKeys(sizes, p.maxGroupSize),
		)
		return p.buildPlan(sizes, best, groupSizes, true)
	}

	plan := p.buildPlan(sizes, best, sumGroups(sizes, best), false)
	p.logger.Debug("selected grouping",
		"groups", len(plan.Groups),
		"variance", bestScore,
	)
	return plan
}

// buildPlan turns index groups into a model.Plan.
func (p *Partitioner) buildPlan(sizes []model.BucketSize, groups [][]int, groupSizes []int, fallback bool) model.Plan {
	specs := make([]model.GroupSpec, len(groups))
	for i, g := range groups {
		keys := make([]model.BucketKey, len(g))
		for j, idx := range g {
			keys[j] = sizes[idx].Key
		}
		specs[i] = model.GroupSpec{Keys: keys}
	}
	return model.Plan{
		Groups:       specs,
		GroupSizes:   groupSizes,
		Variance:     Variance(groupSizes),
		MaxGroupSize: p.maxGroupSize,
		Fallback:     fallback,
	}
}

// SearchWindow returns the inclusive range of candidate group counts:
// [max(1, minGroups-2), min(bucketCount, minGroups+2)] where
// minGroups = ceil(total / maxGroupSize). The range is empty when lo > hi.
func SearchWindow(total, maxGroupSize, bucketCount int) (lo, hi int) {
	maxGroupSize = max(maxGroupSize, 1)
	minGroups := (total + maxGroupSize - 1) / maxGroupSize
	lo = max(1, minGroups-windowSlack)
	hi = min(bucketCount, minGroups+windowSlack)
	return lo, hi
}

// greedyFill walks the buckets left to right, adding each one to the open
// group while the group stays within the ceiling, and opening a new group
// otherwise. A bucket larger than the ceiling still gets a group of its own.
// It returns the bucket indexes of each group.
func greedyFill(sizes []model.BucketSize, maxGroupSize int) [][]int {
	var (
		groups  [][]int
		current []int
		sum     int
	)
	for i, s := range sizes {
		if len(current) > 0 && sum+s.Count > maxGroupSize {
			groups = append(groups, current)
			current = nil
			sum = 0
		}
		current = append(current, i)
		sum += s.Count
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// singletons returns one group per bucket.
func singletons(n int) [][]int {
	groups := make([][]int, n)
	for i := range groups {
		groups[i] = []int{i}
	}
	return groups
}

// sumGroups returns the record count of every group.
func sumGroups(sizes []model.BucketSize, groups [][]int) []int {
	out := make([]int, len(groups))
	for i, g := range groups {
		for _, idx := range g {
			out[i] += sizes[idx].Count
		}
	}
	return out
}

// feasible reports whether no group exceeds the ceiling.
func feasible(groupSizes []int, maxGroupSize int) bool {
	for _, s := range groupSizes {
		if s > maxGroupSize {
			return false
		}
	}
	return true
}

// oversizedKeys lists the buckets that alone exceed the ceiling.
func oversizedKeys(sizes []model.BucketSize, maxGroupSize int) []string {
	var keys []string
	for _, s := range sizes {
		if s.Count > maxGroupSize {
			keys = append(keys, string(s.Key))
		}
	}
	return keys
}

// Variance returns the mean squared deviation of the values, or 0 for none.
func Variance(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return sq / float64(len(values))
}
