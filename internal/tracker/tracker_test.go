package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/storage"
)

func newTestTracker(store storage.Store) (*Tracker, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	tr := New(store, zap.New(core))

	clock := time.UnixMilli(1_700_000_000_000)
	tr.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return tr, observed
}

func listing(id string) *jobs.Listing {
	return &jobs.Listing{ID: id, Title: "Title " + id, Company: "Company " + id}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Status
	}{
		{"Applied", StatusApplied},
		{"not-applied", StatusNotApplied},
		{"  NOT_APPLIED ", StatusNotApplied},
		{"selected", StatusSelected},
		{"rejected", StatusRejected},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if err != nil || got != tt.want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}

	if _, err := ParseStatus("interviewing"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestStatusDefaultsToNotApplied(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(storage.NewMemory())
	got, err := tr.StatusOf(context.Background(), "job-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusNotApplied {
		t.Fatalf("expected %q, got %q", StatusNotApplied, got)
	}
}

func TestSetStatusRecordsUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr, observed := newTestTracker(storage.NewMemory())

	steps := []struct {
		id     string
		status Status
	}{
		{"job-001", StatusApplied},
		{"job-002", StatusApplied},
		{"job-001", StatusSelected},
	}
	for _, step := range steps {
		if err := tr.SetStatus(ctx, listing(step.id), step.status); err != nil {
			t.Fatalf("set status: %v", err)
		}
	}

	statuses, err := tr.Statuses(ctx)
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if statuses["job-001"] != StatusSelected || statuses["job-002"] != StatusApplied || len(statuses) != 2 {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}

	updates, err := tr.Updates(ctx)
	if err != nil {
		t.Fatalf("updates: %v", err)
	}
	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}
	if updates[0].JobID != "job-001" || updates[0].Status != StatusSelected || updates[2].Status != StatusApplied {
		t.Fatalf("expected newest first, got %+v", updates)
	}
	if updates[0].JobTitle != "Title job-001" || updates[0].Company != "Company job-001" {
		t.Fatalf("unexpected update: %+v", updates[0])
	}
	if !updates[0].Time().After(updates[1].Time()) {
		t.Fatalf("expected increasing timestamps")
	}

	recent, err := tr.Recent(ctx, 2)
	if err != nil || len(recent) != 2 || recent[0].JobID != "job-001" {
		t.Fatalf("unexpected recent updates: %+v, %v", recent, err)
	}

	if observed.FilterMessage("status updated").Len() != 3 {
		t.Fatalf("expected a log entry per status change")
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(storage.NewMemory())
	if err := tr.SetStatus(context.Background(), listing("job-001"), Status("Ghosted")); err == nil {
		t.Fatalf("expected error")
	}
	if err := tr.SetStatus(context.Background(), nil, StatusApplied); err == nil {
		t.Fatalf("expected error for nil listing")
	}
}

func TestCorruptDataFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemory()
	for _, key := range []string{StatusesKey, UpdatesKey, SavedKey} {
		if err := store.Set(ctx, key, []byte(`{"broken`)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	tr, observed := newTestTracker(store)

	statuses, err := tr.Statuses(ctx)
	if err != nil || len(statuses) != 0 {
		t.Fatalf("expected empty statuses, got %+v, %v", statuses, err)
	}
	updates, err := tr.Updates(ctx)
	if err != nil || len(updates) != 0 {
		t.Fatalf("expected no updates, got %+v, %v", updates, err)
	}
	saved, err := tr.Saved(ctx)
	if err != nil || len(saved) != 0 {
		t.Fatalf("expected no saved jobs, got %+v, %v", saved, err)
	}
	if observed.FilterLevelExact(zapcore.WarnLevel).Len() != 3 {
		t.Fatalf("expected a warning per unreadable key")
	}

	// Writing over corrupt data recovers.
	if err := tr.SetStatus(ctx, listing("job-001"), StatusApplied); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got, _ := tr.StatusOf(ctx, "job-001"); got != StatusApplied {
		t.Fatalf("expected recovered status, got %q", got)
	}
}

type failingStore struct {
	storage.Store
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestStoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTracker(failingStore{Store: storage.NewMemory()})
	if _, err := tr.Statuses(context.Background()); err == nil {
		t.Fatalf("expected store error")
	}
	if err := tr.Save(context.Background(), "job-001"); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestClearStatuses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr, _ := newTestTracker(storage.NewMemory())
	if err := tr.SetStatus(ctx, listing("job-001"), StatusRejected); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := tr.ClearStatuses(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if updates, _ := tr.Updates(ctx); len(updates) != 0 {
		t.Fatalf("expected no updates after clear")
	}
	if got, _ := tr.StatusOf(ctx, "job-001"); got != StatusNotApplied {
		t.Fatalf("expected default status after clear, got %q", got)
	}
}

func TestSetStatusNormalizesInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr, _ := newTestTracker(storage.NewMemory())
	if err := tr.SetStatus(ctx, listing("job-001"), Status("selected")); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got, _ := tr.StatusOf(ctx, "job-001"); got != StatusSelected {
		t.Fatalf("expected %q, got %q", StatusSelected, got)
	}
}
