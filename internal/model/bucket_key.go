package model

import "unicode"

// BucketKey names one alphabetic bucket: a single uppercase letter A-Z, or
// OtherKey for everything that does not start with a Latin letter.
type BucketKey string

// OtherKey is the catch-all bucket. It sorts after Z.
const OtherKey BucketKey = "#"

// BucketCount is the number of canonical buckets (A..Z plus #).
const BucketCount = 27

// CanonicalKeys returns all bucket keys in canonical order: A..Z, then #.
func CanonicalKeys() []BucketKey {
	keys := make([]BucketKey, 0, BucketCount)
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, BucketKey(string(c)))
	}
	return append(keys, OtherKey)
}

// KeyFor derives the bucket key of a romanized title from its first rune.
// An empty string, or a first rune that is not a Latin letter once
// uppercased, yields OtherKey.
func KeyFor(romanized string) BucketKey {
	for _, r := range romanized {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			return BucketKey(string(r))
		}
		return OtherKey
	}
	return OtherKey
}

// Index returns the position of the key in canonical order, or -1 for a
// value that is not a bucket key.
func (k BucketKey) Index() int {
	if k == OtherKey {
		return BucketCount - 1
	}
	if len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z' {
		return int(k[0] - 'A')
	}
	return -1
}

// Valid reports whether k is one of the 27 canonical keys.
func (k BucketKey) Valid() bool {
	return k.Index() >= 0
}

// Less reports whether k sorts before other in canonical order.
func (k BucketKey) Less(other BucketKey) bool {
	return k.Index() < other.Index()
}
