package tracker

import (
	"context"
	"slices"
	"testing"

	"github.com/spigell/careerdeck/internal/storage"
)

func TestSaveAndUnsave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr, _ := newTestTracker(storage.NewMemory())

	for _, id := range []string{"job-003", "job-001", "job-003"} {
		if err := tr.Save(ctx, id); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	saved, err := tr.Saved(ctx)
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if !slices.Equal(saved, []string{"job-003", "job-001"}) {
		t.Fatalf("unexpected saved jobs: %v", saved)
	}

	if err := tr.Unsave(ctx, "job-003"); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if err := tr.Unsave(ctx, "job-404"); err != nil {
		t.Fatalf("unsave unknown: %v", err)
	}

	set, err := tr.SavedSet(ctx)
	if err != nil {
		t.Fatalf("saved set: %v", err)
	}
	if len(set) != 1 || !set["job-001"] {
		t.Fatalf("unexpected saved set: %v", set)
	}
}

func TestSavedIsNeverNil(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(storage.NewMemory())
	saved, err := tr.Saved(context.Background())
	if err != nil {
		t.Fatalf("saved: %v", err)
	}
	if saved == nil {
		t.Fatalf("expected empty, non-nil slice")
	}
}
