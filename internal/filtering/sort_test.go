package filtering

import (
	"slices"
	"testing"

	"github.com/spigell/careerdeck/internal/preferences"
)

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	if order, err := ParseSortOrder(""); err != nil || order != SortLatest {
		t.Fatalf("expected latest by default, got %q, %v", order, err)
	}
	if order, err := ParseSortOrder(" Salary "); err != nil || order != SortSalary {
		t.Fatalf("expected salary, got %q, %v", order, err)
	}
	if _, err := ParseSortOrder("oldest"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	prefs := &preferences.Preferences{RoleKeywords: []string{"developer"}, Skills: []string{"go"}}

	tests := []struct {
		order SortOrder
		prefs *preferences.Preferences
		want  []string
	}{
		{order: SortLatest, want: []string{"c", "b", "a", "d"}},
		// a and d both score 45, a is more recent.
		{order: SortMatch, prefs: prefs, want: []string{"a", "d", "c", "b"}},
		{order: SortMatch, want: []string{"c", "b", "a", "d"}},
		// c has no LPA figure but its first number is 15.
		{order: SortSalary, want: []string{"b", "c", "a", "d"}},
	}

	for _, tt := range tests {
		v := sampleListings()
		Sort(v, tt.order, tt.prefs)
		if !slices.Equal(ids(v), tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.order, tt.want, ids(v))
		}
	}
}
