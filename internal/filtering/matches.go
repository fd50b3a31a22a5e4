package filtering

import (
	"context"
	"errors"
	"strconv"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/matching"
)

const OnlyMatchesName = "only_matches"

type onlyMatchesFilter struct {
	toggle
	on        bool
	threshold int
}

// NewOnlyMatches creates a filter keeping listings that reach the
// preferences' minimum match score.
func NewOnlyMatches() Filter {
	return &onlyMatchesFilter{}
}

func (f *onlyMatchesFilter) Name() string { return OnlyMatchesName }

func (f *onlyMatchesFilter) Validate(cfg *Config) error {
	f.on = cfg.OnlyMatches
	return nil
}

func (f *onlyMatchesFilter) Apply(_ context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error) {
	if !f.on {
		return passThrough(v)
	}
	if deps.Preferences == nil {
		return v, Step{}, errors.New("preferences are required")
	}

	f.threshold = deps.Preferences.MinMatchScore
	next, step := keep(deps, f.Name(), v, func(l *jobs.Listing) bool {
		return matching.Score(l, deps.Preferences) >= f.threshold
	})
	return next, step, nil
}

func (f *onlyMatchesFilter) Status() Status {
	details := map[string]string{}
	if f.on {
		details["min_match_score"] = strconv.Itoa(f.threshold)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
