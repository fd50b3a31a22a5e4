package filtering

import (
	"context"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/tracker"
)

type statusFilter struct {
	toggle
	status tracker.Status
}

// NewStatus creates a filter keeping listings with the configured
// application status. Listings without one count as not applied.
func NewStatus() Filter {
	return &statusFilter{}
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Validate(cfg *Config) error {
	f.status = ""
	if cfg.Status == "" {
		return nil
	}
	status, err := tracker.ParseStatus(cfg.Status)
	if err != nil {
		return err
	}
	f.status = status
	return nil
}

func (f *statusFilter) Apply(_ context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error) {
	if f.status == "" {
		return passThrough(v)
	}

	next, step := keep(deps, f.Name(), v, func(l *jobs.Listing) bool {
		status, ok := deps.Statuses[l.ID]
		if !ok || status == "" {
			status = tracker.StatusNotApplied
		}
		return status == f.status
	})
	return next, step, nil
}

func (f *statusFilter) Status() Status {
	details := map[string]string{}
	if f.status != "" {
		details["status"] = string(f.status)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type savedOnlyFilter struct {
	toggle
	on bool
}

// NewSavedOnly creates a filter keeping saved listings when requested.
func NewSavedOnly() Filter {
	return &savedOnlyFilter{}
}

func (f *savedOnlyFilter) Name() string { return "saved_only" }

func (f *savedOnlyFilter) Validate(cfg *Config) error {
	f.on = cfg.SavedOnly
	return nil
}

func (f *savedOnlyFilter) Apply(_ context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error) {
	if !f.on {
		return passThrough(v)
	}

	next, step := keep(deps, f.Name(), v, func(l *jobs.Listing) bool {
		return deps.Saved[l.ID]
	})
	return next, step, nil
}
