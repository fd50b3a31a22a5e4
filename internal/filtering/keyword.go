package filtering

import (
	"context"
	"strings"

	"github.com/spigell/careerdeck/internal/jobs"
)

type keywordFilter struct {
	toggle
	keyword string
}

// NewKeyword creates a filter keeping listings whose title or company
// contains the configured keyword.
func NewKeyword() Filter {
	return &keywordFilter{}
}

func (f *keywordFilter) Name() string { return "keyword" }

func (f *keywordFilter) Validate(cfg *Config) error {
	f.keyword = strings.ToLower(strings.TrimSpace(cfg.Keyword))
	return nil
}

func (f *keywordFilter) Apply(_ context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error) {
	if f.keyword == "" {
		return passThrough(v)
	}

	next, step := keep(deps, f.Name(), v, func(l *jobs.Listing) bool {
		return strings.Contains(strings.ToLower(l.Title), f.keyword) ||
			strings.Contains(strings.ToLower(l.Company), f.keyword)
	})
	return next, step, nil
}

func (f *keywordFilter) Status() Status {
	details := map[string]string{}
	if f.keyword != "" {
		details["keyword"] = f.keyword
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
