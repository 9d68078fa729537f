package roster

import (
	"context"
	"fmt"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// CategorySource lists the members of a category.
// *wiki.Client satisfies it.
type CategorySource interface {
	CategoryMembers(ctx context.Context, category string) ([]model.Member, error)
}

// Collect reads the deceased category, then the primary category, and
// returns one record per distinct page.
//
// Records from the primary category come first in listing order; the first
// occurrence of an identity wins. Pages only found in the deceased category
// are appended afterwards in their listing order.
func Collect(ctx context.Context, source CategorySource, primary, deceased string) ([]model.PageRecord, error) {
	deceasedRecords, err := candidates(ctx, source, deceased)
	if err != nil {
		return nil, err
	}
	primaryRecords, err := candidates(ctx, source, primary)
	if err != nil {
		return nil, err
	}

	deceasedSet := make(map[model.Identity]struct{}, len(deceasedRecords))
	for _, r := range deceasedRecords {
		deceasedSet[r.Identity()] = struct{}{}
	}

	seen := make(map[model.Identity]struct{}, len(primaryRecords)+len(deceasedRecords))
	records := make([]model.PageRecord, 0, len(primaryRecords))
	for _, r := range primaryRecords {
		id := r.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		_, r.IsDeceased = deceasedSet[id]
		records = append(records, r)
	}
	for _, r := range deceasedRecords {
		id := r.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		r.IsDeceased = true
		records = append(records, r)
	}

	return records, nil
}

// candidates lists a category and keeps the members that can be persons.
func candidates(ctx context.Context, source CategorySource, category string) ([]model.PageRecord, error) {
	members, err := source.CategoryMembers(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", category, err)
	}

	records := make([]model.PageRecord, 0, len(members))
	for _, m := range members {
		if !m.IsPersonCandidate() {
			continue
		}
		records = append(records, model.NewPageRecord(m))
	}
	return records, nil
}
