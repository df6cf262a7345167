package ordering

import (
	"errors"
	"testing"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestBuildAcceptsPermutation(t *testing.T) {
	current := ids(3)
	requested := []uuid.UUID{current[2], current[0], current[1]}

	plan, err := Build("page", current, requested)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !plan.Changed {
		t.Fatalf("expected plan to be marked changed")
	}
	positions := plan.Positions()
	if positions[current[2]] != 0 || positions[current[0]] != 1 || positions[current[1]] != 2 {
		t.Fatalf("unexpected positions %v", positions)
	}
}

func TestBuildSameOrderIsUnchanged(t *testing.T) {
	current := ids(2)
	plan, err := Build("page", current, append([]uuid.UUID(nil), current...))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Changed {
		t.Fatalf("expected unchanged plan")
	}
}

func TestBuildRejectsMismatches(t *testing.T) {
	current := ids(3)
	stranger := uuid.New()

	cases := map[string]struct {
		requested []uuid.UUID
		check     func(*domain.ReorderMismatchError) bool
	}{
		"missing": {
			requested: current[:2],
			check:     func(e *domain.ReorderMismatchError) bool { return len(e.Missing) == 1 && e.Missing[0] == current[2] },
		},
		"extra": {
			requested: append(append([]uuid.UUID(nil), current...), stranger),
			check:     func(e *domain.ReorderMismatchError) bool { return len(e.Extra) == 1 && e.Extra[0] == stranger },
		},
		"duplicate": {
			requested: []uuid.UUID{current[0], current[0], current[1], current[2]},
			check:     func(e *domain.ReorderMismatchError) bool { return len(e.Duplicates) == 1 },
		},
		"swap": {
			requested: []uuid.UUID{current[0], current[1], stranger},
			check: func(e *domain.ReorderMismatchError) bool {
				return len(e.Missing) == 1 && len(e.Extra) == 1
			},
		},
	}

	for name, tc := range cases {
		_, err := Build("page", current, tc.requested)
		var mismatch *domain.ReorderMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("%s: expected ReorderMismatchError, got %v", name, err)
		}
		if !errors.Is(err, domain.ErrReorderMismatch) {
			t.Fatalf("%s: expected sentinel", name)
		}
		if !tc.check(mismatch) {
			t.Fatalf("%s: unexpected mismatch %+v", name, mismatch)
		}
	}
}

func TestBuildEmptyContainer(t *testing.T) {
	plan, err := Build("page", nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if plan.Changed {
		t.Fatalf("expected empty plan to be unchanged")
	}
}

func TestCompactClosesGaps(t *testing.T) {
	all := ids(3)
	moved := Compact([]Positioned{
		{ID: all[0], Position: 0},
		{ID: all[1], Position: 2},
		{ID: all[2], Position: 3},
	})
	if len(moved) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moved))
	}
	if moved[0].ID != all[1] || moved[0].Position != 1 {
		t.Fatalf("unexpected move %+v", moved[0])
	}
	if moved[1].ID != all[2] || moved[1].Position != 2 {
		t.Fatalf("unexpected move %+v", moved[1])
	}
}

func TestDense(t *testing.T) {
	if !Dense([]int{2, 0, 1}) {
		t.Fatalf("expected dense")
	}
	if Dense([]int{0, 2}) || Dense([]int{0, 0}) || Dense([]int{-1, 0}) {
		t.Fatalf("expected non dense")
	}
	if !Dense(nil) {
		t.Fatalf("expected empty set to be dense")
	}
}
