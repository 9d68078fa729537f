// Package partition splits the alphabetic buckets into a small number of
// template columns of roughly equal size.
//
// The buckets keep their canonical order (A..Z, then #) and each column is a
// contiguous run of buckets. A column may hold at most MaxGroupSize records.
// Candidate groupings are produced by a left-to-right greedy fill and scored
// by the population variance of their column sizes; the lowest score wins.
//
// When a single bucket is larger than the ceiling no grouping can satisfy it.
// The partitioner then falls back to one column per bucket, flags the plan and
// logs a warning instead of failing the run.
//
// Everything in this package is pure and safe for concurrent use on
// independent inputs.
package partition
