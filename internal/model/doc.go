// Package model defines the data structures shared by the persons template bot.
//
// This package contains the following main types:
//   - PageRecord: A person page taken from the category listing
//   - RomanizedRecord: A PageRecord with its romanized title and bucket key
//   - BucketKey: One of the 27 alphabetic buckets (A..Z and the catch-all #)
//   - GroupSpec: A contiguous run of buckets rendered as one template column
//   - Run: The state of one bot invocation as it moves through the pipeline
//
// Models live in their own package so that the collector, the bucketer, the
// partitioner, the renderer and the reports can share them without import
// cycles.
package model
