package model

import "strings"

// GroupLabelSeparator joins the bucket keys of a group into its header label.
const GroupLabelSeparator = "·"

// BucketSize is the population of one bucket.
type BucketSize struct {
	Key   BucketKey `json:"key"`
	Count int       `json:"count"`
}

// GroupSpec is a contiguous run of buckets, in canonical order, that is
// rendered as one column of the template.
type GroupSpec struct {
	Keys []BucketKey `json:"keys"`
}

// Label returns the header label of the group, e.g. "A·B·C".
func (g GroupSpec) Label() string {
	parts := make([]string, len(g.Keys))
	for i, k := range g.Keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, GroupLabelSeparator)
}

// Contains reports whether the group includes the given bucket.
func (g GroupSpec) Contains(key BucketKey) bool {
	for _, k := range g.Keys {
		if k == key {
			return true
		}
	}
	return false
}
