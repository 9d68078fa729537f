package bucket

import (
	"slices"
	"strings"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// Bucket groups records by bucket key. Within a bucket, records are sorted
// ascending by romanized title; records with equal romanized titles keep
// their input order. Only non-empty buckets are present in the result.
//
// The key stored on each record is recomputed from its romanized title, so a
// record built without NewRomanizedRecord still lands in the right bucket.
func Bucket(records []model.RomanizedRecord) model.Buckets {
	entries := make(map[model.BucketKey][]model.RomanizedRecord)
	for _, r := range records {
		r.Key = model.KeyFor(r.Romanized)
		entries[r.Key] = append(entries[r.Key], r)
	}

	for _, list := range entries {
		slices.SortStableFunc(list, func(a, b model.RomanizedRecord) int {
			return strings.Compare(a.Romanized, b.Romanized)
		})
	}

	return model.NewBuckets(entries)
}
