package filtering

import (
	"context"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/preferences"
	"github.com/spigell/careerdeck/internal/tracker"
)

func sampleListings() *jobs.Listings {
	return jobs.NewListings([]*jobs.Listing{
		{ID: "a", Title: "Go Developer", Company: "Acme", Location: "Pune", Mode: jobs.ModeRemote, Experience: "1-3", Source: "LinkedIn", SalaryRange: "10–14 LPA", PostedDaysAgo: 4, Skills: []string{"Go"}},
		{ID: "b", Title: "Java Engineer", Company: "Initech", Location: "Bangalore", Mode: jobs.ModeOnsite, Experience: "3-5", Source: "Naukri", SalaryRange: "18–24 LPA", PostedDaysAgo: 1, Skills: []string{"Java"}},
		{ID: "c", Title: "Frontend Intern", Company: "Golden Labs", Location: "Remote", Mode: jobs.ModeRemote, Experience: "Fresher", Source: "Indeed", SalaryRange: "₹15k–₹25k/month Internship", PostedDaysAgo: 0, Skills: []string{"React"}},
		{ID: "d", Title: "Backend Developer", Company: "Globex", Location: "pune", Mode: jobs.ModeHybrid, Experience: "1-3", Source: "LinkedIn", SalaryRange: "6–10 LPA", PostedDaysAgo: 7, Skills: []string{"Go", "SQL"}},
	})
}

func ids(v *jobs.Listings) []string {
	out := make([]string, 0, v.Len())
	for _, l := range v.Items {
		out = append(out, l.ID)
	}
	return out
}

func TestRun(t *testing.T) {
	t.Parallel()

	prefs := &preferences.Preferences{RoleKeywords: []string{"developer"}, Skills: []string{"go"}, MinMatchScore: 40}
	deps := Deps{
		Preferences: prefs,
		Statuses:    map[string]tracker.Status{"b": tracker.StatusApplied, "d": tracker.StatusApplied},
		Saved:       map[string]bool{"a": true, "c": true},
	}

	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{name: "no filters", cfg: Config{}, want: []string{"a", "b", "c", "d"}},
		{name: "keyword matches title", cfg: Config{Keyword: "developer"}, want: []string{"a", "d"}},
		{name: "keyword matches company", cfg: Config{Keyword: "GO"}, want: []string{"a", "c"}},
		{name: "location ignores case", cfg: Config{Location: "Pune"}, want: []string{"a", "d"}},
		{name: "mode", cfg: Config{Mode: "remote"}, want: []string{"a", "c"}},
		{name: "experience", cfg: Config{Experience: "1-3"}, want: []string{"a", "d"}},
		{name: "source", cfg: Config{Source: "linkedin"}, want: []string{"a", "d"}},
		{name: "status applied", cfg: Config{Status: "Applied"}, want: []string{"b", "d"}},
		{name: "status defaults to not applied", cfg: Config{Status: "not-applied"}, want: []string{"a", "c"}},
		{name: "saved only", cfg: Config{SavedOnly: true}, want: []string{"a", "c"}},
		{name: "only matches", cfg: Config{OnlyMatches: true}, want: []string{"a", "d"}},
		{name: "combined", cfg: Config{Location: "pune", Status: "applied"}, want: []string{"d"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			got, err := Run(context.Background(), &cfg, deps, Defaults(prefs), sampleListings())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{{Mode: "Office"}, {Experience: "10+"}, {Status: "Ghosted"}} {
		cfg := cfg
		if _, err := Run(context.Background(), &cfg, Deps{}, Defaults(nil), sampleListings()); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestOnlyMatchesDisabledWithoutPreferences(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	steps := Defaults(nil)

	got, err := Run(context.Background(), &Config{OnlyMatches: true}, Deps{Logger: zap.New(core)}, steps, sampleListings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("expected nothing filtered, got %v", ids(got))
	}
	if observed.FilterMessage("filter disabled").Len() != 1 {
		t.Fatalf("expected the disabled filter to be logged")
	}

	for _, status := range Describe(steps) {
		if status.Name != OnlyMatchesName {
			continue
		}
		if status.Enabled || status.Reason != "no preferences configured" {
			t.Fatalf("unexpected status: %+v", status)
		}
		return
	}
	t.Fatalf("only_matches missing from description")
}

func TestRunLogsSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	_, err := Run(context.Background(), &Config{Location: "pune"}, Deps{Logger: zap.New(core)}, []Filter{NewLocation()}, sampleListings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("filter step").All()
	if len(entries) != 1 {
		t.Fatalf("expected one step entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["filter"] != "location" || ctx["initial"] != int64(4) || ctx["dropped"] != int64(2) || ctx["left"] != int64(2) {
		t.Fatalf("unexpected step fields: %+v", ctx)
	}

	excluded := observed.FilterMessage("excluding listings").All()
	if len(excluded) != 1 {
		t.Fatalf("expected exclusion entry")
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Defaults(&preferences.Preferences{})
	if _, err := Run(context.Background(), &Config{Keyword: " Go ", Mode: "Remote"}, Deps{Preferences: &preferences.Preferences{}}, steps, sampleListings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := map[string]Status{}
	for _, s := range Describe(steps) {
		byName[s.Name] = s
	}
	if len(byName) != 8 {
		t.Fatalf("expected 8 filters, got %d", len(byName))
	}
	if byName["keyword"].Details["keyword"] != "go" {
		t.Fatalf("unexpected keyword status: %+v", byName["keyword"])
	}
	if byName["mode"].Details["mode"] != "Remote" {
		t.Fatalf("unexpected mode status: %+v", byName["mode"])
	}
	if !byName[OnlyMatchesName].Enabled {
		t.Fatalf("expected only_matches enabled with preferences")
	}
}
