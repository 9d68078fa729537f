package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/partition"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/romanize"
)

// fakeSource serves fixed category listings.
type fakeSource struct {
	categories map[string][]model.Member
	err        error
}

func (f *fakeSource) CategoryMembers(_ context.Context, category string) ([]model.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories[category], nil
}

// identityRomanizer returns titles unchanged.
type identityRomanizer struct{}

func (identityRomanizer) Romanize(title string) string {
	return title
}

func discardLogger() StepOption {
	return WithStepLogger(slog.New(slog.DiscardHandler))
}

func newFakeSource() *fakeSource {
	return &fakeSource{categories: map[string][]model.Member{
		"人物": {
			{PageID: 1, Title: "Bob", Namespace: model.NamespaceMain},
			{PageID: 2, Title: "用户:alice", Namespace: model.NamespaceUser},
			{PageID: 3, Title: "Anna", Namespace: model.NamespaceMain},
			{PageID: 4, Title: "42", Namespace: model.NamespaceMain},
			{PageID: 5, Title: "Anna/作品", Namespace: model.NamespaceMain},
		},
		"逝世的人物": {
			{PageID: 1, Title: "Bob", Namespace: model.NamespaceMain},
		},
	}}
}

// TestFetchStep tests collecting records into the run.
func TestFetchStep(t *testing.T) {
	t.Parallel()

	t.Run("fills records", func(t *testing.T) {
		t.Parallel()

		run := newTestRun()
		step := NewFetchStep(newFakeSource(), discardLogger())
		if step.Name() != StepFetch {
			t.Errorf("unexpected name %q", step.Name())
		}
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Records) != 4 {
			t.Fatalf("expected 4 records, got %+v", run.Records)
		}
		if !run.Records[0].IsDeceased || run.DeceasedCount() != 1 {
			t.Errorf("expected Bob to be deceased, got %+v", run.Records)
		}
		if !run.Records[1].IsUserPage || run.Records[1].Title != "alice" {
			t.Errorf("unexpected user page record %+v", run.Records[1])
		}
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		step := NewFetchStep(&fakeSource{err: errBoom}, discardLogger())
		if err := step.Do(context.Background(), newTestRun()); !errors.Is(err, errBoom) {
			t.Errorf("expected fetch error, got %v", err)
		}
	})
}

// TestRomanizeStep tests attaching romanized titles.
func TestRomanizeStep(t *testing.T) {
	t.Parallel()

	run := newTestRun()
	run.Records = []model.PageRecord{{ID: 1, Title: "Bob"}, {ID: 2, Title: "42"}}

	step := NewRomanizeStep(identityRomanizer{}, discardLogger())
	if err := step.Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(run.Romanized) != 2 {
		t.Fatalf("expected 2 romanized records, got %d", len(run.Romanized))
	}
	if run.Romanized[0].Key != "B" || run.Romanized[1].Key != model.OtherKey {
		t.Errorf("unexpected keys %q %q", run.Romanized[0].Key, run.Romanized[1].Key)
	}
}

// TestDefault tests the full generation pipeline.
func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("has all steps in order", func(t *testing.T) {
		t.Parallel()

		p := Default(newFakeSource(), identityRomanizer{}, partition.New(200))
		want := []string{StepFetch, StepRomanize, StepBucket, StepPartition, StepRender}
		if strings.Join(p.StepNames(), ",") != strings.Join(want, ",") {
			t.Errorf("StepNames() = %v, want %v", p.StepNames(), want)
		}
	})

	t.Run("renders template", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.DiscardHandler)
		p := Default(newFakeSource(), identityRomanizer{}, partition.New(2), WithLogger(logger))

		run := newTestRun()
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(run.CompletedSteps) != 5 {
			t.Errorf("expected 5 completed steps, got %v", run.CompletedSteps)
		}
		if run.Buckets.Count("A") != 2 || run.Buckets.Count("B") != 1 || run.Buckets.Count(model.OtherKey) != 1 {
			t.Errorf("unexpected buckets %+v", run.Buckets.Sizes())
		}

		// A=2, B=1, #=1 under a ceiling of 2 groups as [A], [B, #].
		// Uppercase sorts before lowercase within a bucket.
		if len(run.Plan.Groups) != 2 || run.Plan.Groups[1].Label() != "B·#" {
			t.Errorf("unexpected plan %+v", run.Plan)
		}
		for _, want := range []string{
			"|group1 = A\n|list1 = [[Anna]] {{·}} [[用户:alice|alice]]\n\n",
			"|group2 = B·#\n|list2 = {{Departed|[[Bob]]}} {{·}} [[42]]\n\n",
		} {
			if !strings.Contains(run.Rendered, want) {
				t.Errorf("expected %q in rendered template:\n%s", want, run.Rendered)
			}
		}
	})

	t.Run("works with the pinyin romanizer", func(t *testing.T) {
		t.Parallel()

		r, err := romanize.New()
		if err != nil {
			t.Fatalf("failed to create romanizer: %v", err)
		}
		src := &fakeSource{categories: map[string][]model.Member{
			"人物": {{PageID: 1, Title: "小明", Namespace: model.NamespaceMain}},
		}}

		run := newTestRun()
		p := Default(src, r, partition.New(200), WithLogger(slog.New(slog.DiscardHandler)))
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(run.Rendered, "|group1 = X\n|list1 = [[小明]]\n\n") {
			t.Errorf("unexpected template:\n%s", run.Rendered)
		}
	})
}
