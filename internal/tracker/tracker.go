package tracker

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/logger"
	"github.com/spigell/careerdeck/internal/storage"
)

const (
	StatusesKey = "jobTrackerStatuses"
	UpdatesKey  = "jobTrackerStatusUpdates"
	SavedKey    = "savedJobs"

	// DefaultRecent is the number of updates shown on the dashboard.
	DefaultRecent = 5
)

// Update records one status change. Timestamp is in milliseconds since epoch.
type Update struct {
	JobID     string `json:"jobId"`
	JobTitle  string `json:"jobTitle"`
	Company   string `json:"company"`
	Status    Status `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

func (u Update) Time() time.Time {
	return time.UnixMilli(u.Timestamp)
}

type Tracker struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

func New(store storage.Store, log *zap.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger.WithFields(log),
		now:    time.Now,
	}
}

// load decodes the value stored under key. Missing and unreadable values
// yield the zero value; only store failures are returned.
func load[T any](ctx context.Context, t *Tracker, key string) (T, error) {
	var value T
	err := storage.GetJSON(ctx, t.store, key, &value)
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrCorrupt):
		t.logger.Warn("ignoring unreadable tracker data", zap.String(logger.FieldStorageKey, key), zap.Error(err))
	default:
		return value, err
	}

	var zero T
	return zero, nil
}

// Statuses returns the status of every job that has one.
func (t *Tracker) Statuses(ctx context.Context) (map[string]Status, error) {
	statuses, err := load[map[string]Status](ctx, t, StatusesKey)
	if err != nil {
		return nil, err
	}
	if statuses == nil {
		statuses = map[string]Status{}
	}
	return statuses, nil
}

// StatusOf returns the status of a job, StatusNotApplied when it has none.
func (t *Tracker) StatusOf(ctx context.Context, jobID string) (Status, error) {
	statuses, err := t.Statuses(ctx)
	if err != nil {
		return "", err
	}
	if s, ok := statuses[jobID]; ok && s != "" {
		return s, nil
	}
	return StatusNotApplied, nil
}

// SetStatus stores the status of listing and appends an update to the log.
func (t *Tracker) SetStatus(ctx context.Context, listing *jobs.Listing, status Status) error {
	if listing == nil {
		return errors.New("listing is required")
	}
	if !status.Valid() {
		parsed, err := ParseStatus(string(status))
		if err != nil {
			return err
		}
		status = parsed
	}

	statuses, err := t.Statuses(ctx)
	if err != nil {
		return err
	}
	statuses[listing.ID] = status
	if err := storage.SetJSON(ctx, t.store, StatusesKey, statuses); err != nil {
		return err
	}

	updates, err := load[[]Update](ctx, t, UpdatesKey)
	if err != nil {
		return err
	}
	updates = append(updates, Update{
		JobID:     listing.ID,
		JobTitle:  listing.Title,
		Company:   listing.Company,
		Status:    status,
		Timestamp: t.now().UnixMilli(),
	})
	if err := storage.SetJSON(ctx, t.store, UpdatesKey, updates); err != nil {
		return err
	}

	logger.WithListingFields(t.logger, listing.ID).Info("status updated", zap.String("status", string(status)))
	return nil
}

// Updates returns the status log, newest first.
func (t *Tracker) Updates(ctx context.Context) ([]Update, error) {
	updates, err := load[[]Update](ctx, t, UpdatesKey)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(updates, func(a, b Update) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	return updates, nil
}

// Recent returns at most limit updates, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]Update, error) {
	updates, err := t.Updates(ctx)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}
	if len(updates) > limit {
		updates = updates[:limit]
	}
	return updates, nil
}

// ClearStatuses drops every status and the update log.
func (t *Tracker) ClearStatuses(ctx context.Context) error {
	if err := t.store.Remove(ctx, StatusesKey); err != nil {
		return err
	}
	return t.store.Remove(ctx, UpdatesKey)
}
