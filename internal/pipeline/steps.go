package pipeline

import (
	"context"
	"log/slog"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/bucket"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/navbox"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/partition"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/roster"
)

// Step names.
const (
	StepFetch     = "fetch"
	StepRomanize  = "romanize"
	StepBucket    = "bucket"
	StepPartition = "partition"
	StepRender    = "render"
)

// progressInterval is how many titles are romanized between progress logs.
const progressInterval = 1000

// StepOption configures any of the built-in steps.
type StepOption func(*stepConfig)

type stepConfig struct {
	logger *slog.Logger
}

// WithStepLogger sets the logger of a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(c *stepConfig) {
		c.logger = logger
	}
}

func newStepConfig(opts []StepOption) stepConfig {
	c := stepConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FetchStep collects the person list from the wiki.
type FetchStep struct {
	source roster.CategorySource
	logger *slog.Logger
}

// NewFetchStep creates a step reading categories from source.
func NewFetchStep(source roster.CategorySource, opts ...StepOption) *FetchStep {
	c := newStepConfig(opts)
	return &FetchStep{source: source, logger: c.logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	records, err := roster.Collect(ctx, s.source, run.PrimaryCategory, run.DeceasedCategory)
	if err != nil {
		return err
	}
	run.Records = records

	s.logger.Info("fetched person pages",
		"count", len(records),
		"deceased", run.DeceasedCount(),
		"user_pages", run.UserPageCount(),
	)
	return nil
}

// Romanizer converts titles to Latin script. *romanize.Romanizer satisfies it.
type Romanizer interface {
	Romanize(title string) string
}

// RomanizeStep attaches a romanized title to every record.
type RomanizeStep struct {
	romanizer Romanizer
	logger    *slog.Logger
}

// NewRomanizeStep creates a step using romanizer.
func NewRomanizeStep(romanizer Romanizer, opts ...StepOption) *RomanizeStep {
	c := newStepConfig(opts)
	return &RomanizeStep{romanizer: romanizer, logger: c.logger}
}

// Name returns the step name.
func (s *RomanizeStep) Name() string {
	return StepRomanize
}

// Do executes the romanize step.
func (s *RomanizeStep) Do(ctx context.Context, run *model.Run) error {
	out := make([]model.RomanizedRecord, 0, len(run.Records))
	for i, r := range run.Records {
		if i > 0 && i%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.logger.Info("romanizing titles", "done", i, "total", len(run.Records))
		}
		romanized := s.romanizer.Romanize(r.Title)
		out = append(out, model.NewRomanizedRecord(r, romanized))
		s.logger.Debug("romanized title", "title", r.Title, "romanized", romanized)
	}
	run.Romanized = out

	s.logger.Info("romanized titles", "count", len(out))
	return nil
}

// BucketStep groups the romanized records by first letter.
type BucketStep struct {
	logger *slog.Logger
}

// NewBucketStep creates a bucket step.
func NewBucketStep(opts ...StepOption) *BucketStep {
	c := newStepConfig(opts)
	return &BucketStep{logger: c.logger}
}

// Name returns the step name.
func (s *BucketStep) Name() string {
	return StepBucket
}

// Do executes the bucket step.
func (s *BucketStep) Do(_ context.Context, run *model.Run) error {
	run.Buckets = bucket.Bucket(run.Romanized)

	for _, size := range run.Buckets.Sizes() {
		s.logger.Debug("bucket", "key", string(size.Key), "count", size.Count)
	}
	s.logger.Info("bucketed records", "buckets", run.Buckets.Len(), "total", run.Buckets.Total())
	return nil
}

// PartitionStep chooses the template columns.
type PartitionStep struct {
	partitioner *partition.Partitioner
	logger      *slog.Logger
}

// NewPartitionStep creates a step using partitioner.
func NewPartitionStep(partitioner *partition.Partitioner, opts ...StepOption) *PartitionStep {
	c := newStepConfig(opts)
	return &PartitionStep{partitioner: partitioner, logger: c.logger}
}

// Name returns the step name.
func (s *PartitionStep) Name() string {
	return StepPartition
}

// Do executes the partition step.
func (s *PartitionStep) Do(_ context.Context, run *model.Run) error {
	run.Plan = s.partitioner.Plan(run.Buckets.Sizes())

	labels := make([]string, len(run.Plan.Groups))
	for i, g := range run.Plan.Groups {
		labels[i] = g.Label()
	}
	s.logger.Info("partitioned buckets",
		"groups", labels,
		"sizes", run.Plan.GroupSizes,
		"variance", run.Plan.Variance,
	)
	return nil
}

// RenderStep writes the template text.
type RenderStep struct {
	logger *slog.Logger
}

// NewRenderStep creates a render step.
func NewRenderStep(opts ...StepOption) *RenderStep {
	c := newStepConfig(opts)
	return &RenderStep{logger: c.logger}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return StepRender
}

// Do executes the render step.
func (s *RenderStep) Do(_ context.Context, run *model.Run) error {
	run.Rendered = navbox.Render(run.Plan.Groups, run.Buckets)
	s.logger.Info("rendered template", "bytes", len(run.Rendered))
	return nil
}

// Default creates the standard generation pipeline:
// fetch, romanize, bucket, partition, render.
// The pipeline logger is also given to every step.
func Default(source roster.CategorySource, romanizer Romanizer, partitioner *partition.Partitioner, opts ...Option) *Pipeline {
	p := New(opts...)
	stepOpts := []StepOption{WithStepLogger(p.logger)}

	p.AddSteps(
		NewFetchStep(source, stepOpts...),
		NewRomanizeStep(romanizer, stepOpts...),
		NewBucketStep(stepOpts...),
		NewPartitionStep(partitioner, stepOpts...),
		NewRenderStep(stepOpts...),
	)
	return p
}
