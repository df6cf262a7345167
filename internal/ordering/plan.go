package ordering

import (
	"slices"
	"sort"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

// Plan is a validated full list reorder for one container.
type Plan struct {
	Container string
	Order     []uuid.UUID
	// Changed is false when the requested order equals the stored order.
	Changed bool
}

// Build validates requested against the container's current children.
// requested must contain exactly the current ids, each once, in any order.
func Build(container string, current, requested []uuid.UUID) (Plan, error) {
	if err := Verify(container, current, requested); err != nil {
		return Plan{}, err
	}
	return Plan{
		Container: container,
		Order:     slices.Clone(requested),
		Changed:   !slices.Equal(current, requested),
	}, nil
}

// Verify returns a ReorderMismatchError describing how requested differs
// from current, or nil when both hold the same id set.
func Verify(container string, current, requested []uuid.UUID) error {
	known := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		known[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(requested))
	mismatch := &domain.ReorderMismatchError{Container: container}
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			mismatch.Duplicates = append(mismatch.Duplicates, id)
			continue
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; !ok {
			mismatch.Extra = append(mismatch.Extra, id)
		}
	}
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			mismatch.Missing = append(mismatch.Missing, id)
		}
	}
	if len(mismatch.Missing) == 0 && len(mismatch.Extra) == 0 && len(mismatch.Duplicates) == 0 {
		return nil
	}
	return mismatch
}

// Positions maps every id in the plan to its new zero based position.
func (p Plan) Positions() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(p.Order))
	for idx, id := range p.Order {
		out[id] = idx
	}
	return out
}

// Positioned is a child id with its stored position.
type Positioned struct {
	ID       uuid.UUID
	Position int
}

// Compact renumbers items to {0..n-1} keeping their relative order and
// returns only the entries whose position changed.
func Compact(items []Positioned) []Positioned {
	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position == sorted[j].Position {
			return sorted[i].ID.String() < sorted[j].ID.String()
		}
		return sorted[i].Position < sorted[j].Position
	})
	var moved []Positioned
	for idx, item := range sorted {
		if item.Position != idx {
			moved = append(moved, Positioned{ID: item.ID, Position: idx})
		}
	}
	return moved
}

// Dense reports whether positions are exactly {0..n-1}.
func Dense(positions []int) bool {
	seen := make([]bool, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= len(positions) || seen[pos] {
			return false
		}
		seen[pos] = true
	}
	return true
}
