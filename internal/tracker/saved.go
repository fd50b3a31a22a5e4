package tracker

import (
	"context"
	"slices"

	"github.com/spigell/careerdeck/internal/logger"
	"github.com/spigell/careerdeck/internal/storage"
)

// Saved returns the ids of saved jobs in the order they were saved.
func (t *Tracker) Saved(ctx context.Context) ([]string, error) {
	ids, err := load[[]string](ctx, t, SavedKey)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SavedSet returns the saved ids as a set.
func (t *Tracker) SavedSet(ctx context.Context) (map[string]bool, error) {
	ids, err := t.Saved(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Save adds jobID to the saved jobs. Saving twice is a no-op.
func (t *Tracker) Save(ctx context.Context, jobID string) error {
	ids, err := t.Saved(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, jobID) {
		return nil
	}
	if err := storage.SetJSON(ctx, t.store, SavedKey, append(ids, jobID)); err != nil {
		return err
	}
	logger.WithListingFields(t.logger, jobID).Info("job saved")
	return nil
}

func (t *Tracker) Unsave(ctx context.Context, jobID string) error {
	ids, err := t.Saved(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == jobID })
	if len(kept) == len(ids) {
		return nil
	}
	if err := storage.SetJSON(ctx, t.store, SavedKey, kept); err != nil {
		return err
	}
	logger.WithListingFields(t.logger, jobID).Info("job removed from saved")
	return nil
}
