package model

// Buckets maps bucket keys to their records. Keys are kept in canonical
// order and only non-empty buckets are present; a missing key counts as an
// empty bucket.
type Buckets struct {
	keys    []BucketKey
	entries map[BucketKey][]RomanizedRecord
}

// NewBuckets creates Buckets from a map. Empty slices are dropped and keys
// that are not canonical bucket keys are ignored.
func NewBuckets(entries map[BucketKey][]RomanizedRecord) Buckets {
	b := Buckets{entries: make(map[BucketKey][]RomanizedRecord, len(entries))}
	for _, k := range CanonicalKeys() {
		records := entries[k]
		if len(records) == 0 {
			continue
		}
		b.keys = append(b.keys, k)
		b.entries[k] = records
	}
	return b
}

// Keys returns the present keys in canonical order.
func (b Buckets) Keys() []BucketKey {
	out := make([]BucketKey, len(b.keys))
	copy(out, b.keys)
	return out
}

// Get returns the records of a bucket, or nil when the bucket is empty.
func (b Buckets) Get(key BucketKey) []RomanizedRecord {
	return b.entries[key]
}

// Count returns the number of records in a bucket.
func (b Buckets) Count(key BucketKey) int {
	return len(b.entries[key])
}

// Len returns the number of non-empty buckets.
func (b Buckets) Len() int {
	return len(b.keys)
}

// Total returns the number of records across all buckets.
func (b Buckets) Total() int {
	total := 0
	for _, k := range b.keys {
		total += len(b.entries[k])
	}
	return total
}

// Sizes returns the population of every present bucket in canonical order.
func (b Buckets) Sizes() []BucketSize {
	sizes := make([]BucketSize, 0, len(b.keys))
	for _, k := range b.keys {
		sizes = append(sizes, BucketSize{Key: k, Count: len(b.entries[k])})
	}
	return sizes
}
