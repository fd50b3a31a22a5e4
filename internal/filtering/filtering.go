package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/logger"
	"github.com/spigell/careerdeck/internal/preferences"
	"github.com/spigell/careerdeck/internal/tracker"
)

// Filter represents a single filtering step applied to listings.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger      *zap.Logger
	Preferences *preferences.Preferences
	Statuses    map[string]tracker.Status
	Saved       map[string]bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config holds the dashboard filter values. Empty values match everything.
type Config struct {
	Keyword     string `mapstructure:"keyword"`
	Location    string `mapstructure:"location"`
	Mode        string `mapstructure:"mode"`
	Experience  string `mapstructure:"experience"`
	Source      string `mapstructure:"source"`
	Status      string `mapstructure:"status"`
	SavedOnly   bool   `mapstructure:"saved-only"`
	OnlyMatches bool   `mapstructure:"only-matches"`
	Sort        string `mapstructure:"sort"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Defaults returns every dashboard filter in the order they run. The
// only_matches step is disabled when no preferences are set.
func Defaults(prefs *preferences.Preferences) []Filter {
	steps := []Filter{
		NewKeyword(),
		NewLocation(),
		NewMode(),
		NewExperience(),
		NewSource(),
		NewStatus(),
		NewSavedOnly(),
		NewOnlyMatches(),
	}
	if prefs == nil {
		DisableByName(steps, OnlyMatchesName, "no preferences configured")
	}
	return steps
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially and returns what is left.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, v *jobs.Listings) (*jobs.Listings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	deps.Logger = logger.WithFields(deps.Logger)

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("filter disabled", zap.String(logger.FieldFilter, step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Debug("filter step",
			zap.String(logger.FieldFilter, step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		v = next
	}

	return v, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle carries the enabled state shared by every filter.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// keep applies keep to v and logs the dropped listings.
func keep(deps Deps, name string, v *jobs.Listings, match func(*jobs.Listing) bool) (*jobs.Listings, Step) {
	initial := v.Len()
	excluded := v.Keep(match)
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding listings",
			zap.String(logger.FieldFilter, name),
			zap.Strings("excluded_listings", excluded),
			zap.Int("listings_left", v.Len()),
		)
	}
	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}
}

func passThrough(v *jobs.Listings) (*jobs.Listings, Step, error) {
	return v, Step{Initial: v.Len(), Dropped: 0, Left: v.Len()}, nil
}
