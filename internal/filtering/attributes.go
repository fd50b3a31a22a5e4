package filtering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/preferences"
)

// attributeFilter keeps listings whose attribute equals the configured
// value, ignoring case.
type attributeFilter struct {
	toggle
	name    string
	value   string
	config  func(*Config) string
	field   func(*jobs.Listing) string
	allowed []string
}

func NewLocation() Filter {
	return &attributeFilter{
		name:   "location",
		config: func(c *Config) string { return c.Location },
		field:  func(l *jobs.Listing) string { return l.Location },
	}
}

func NewMode() Filter {
	allowed := make([]string, 0, len(jobs.Modes))
	for _, m := range jobs.Modes {
		allowed = append(allowed, string(m))
	}
	return &attributeFilter{
		name:    "mode",
		config:  func(c *Config) string { return c.Mode },
		field:   func(l *jobs.Listing) string { return string(l.Mode) },
		allowed: allowed,
	}
}

func NewExperience() Filter {
	return &attributeFilter{
		name:    "experience",
		config:  func(c *Config) string { return c.Experience },
		field:   func(l *jobs.Listing) string { return l.Experience },
		allowed: preferences.ExperienceLevels,
	}
}

func NewSource() Filter {
	return &attributeFilter{
		name:   "source",
		config: func(c *Config) string { return c.Source },
		field:  func(l *jobs.Listing) string { return l.Source },
	}
}

func (f *attributeFilter) Name() string { return f.name }

func (f *attributeFilter) Validate(cfg *Config) error {
	f.value = strings.TrimSpace(f.config(cfg))
	if f.value == "" || len(f.allowed) == 0 {
		return nil
	}
	if !slices.ContainsFunc(f.allowed, func(a string) bool { return strings.EqualFold(a, f.value) }) {
		return fmt.Errorf("unsupported value %q, expected one of %s", f.value, strings.Join(f.allowed, ", "))
	}
	return nil
}

func (f *attributeFilter) Apply(_ context.Context, deps Deps, v *jobs.Listings) (*jobs.Listings, Step, error) {
	if f.value == "" {
		return passThrough(v)
	}

	next, step := keep(deps, f.Name(), v, func(l *jobs.Listing) bool {
		return strings.EqualFold(strings.TrimSpace(f.field(l)), f.value)
	})
	return next, step, nil
}

func (f *attributeFilter) Status() Status {
	details := map[string]string{}
	if f.value != "" {
		details[f.name] = f.value
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
