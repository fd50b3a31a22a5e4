package filtering

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/matching"
	"github.com/spigell/careerdeck/internal/preferences"
)

type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortMatch  SortOrder = "match"
	SortSalary SortOrder = "salary"
)

var SortOrders = []SortOrder{SortLatest, SortMatch, SortSalary}

// ParseSortOrder returns SortLatest for an empty value.
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortLatest, nil
	}
	order := SortOrder(s)
	if !slices.Contains(SortOrders, order) {
		return "", fmt.Errorf("unsupported sort order %q", s)
	}
	return order, nil
}

// Sort orders v in place. Ties are broken by recency, then by the original
// order. Without preferences every match score is 0.
func Sort(v *jobs.Listings, order SortOrder, prefs *preferences.Preferences) {
	recency := func(a, b *jobs.Listing) int {
		return cmp.Compare(a.PostedDaysAgo, b.PostedDaysAgo)
	}

	switch order {
	case SortMatch:
		scores := make(map[*jobs.Listing]int, v.Len())
		for _, l := range v.Items {
			scores[l] = matching.Score(l, prefs)
		}
		slices.SortStableFunc(v.Items, func(a, b *jobs.Listing) int {
			if c := cmp.Compare(scores[b], scores[a]); c != 0 {
				return c
			}
			return recency(a, b)
		})
	case SortSalary:
		slices.SortStableFunc(v.Items, func(a, b *jobs.Listing) int {
			if c := cmp.Compare(b.SalaryFloor(), a.SalaryFloor()); c != 0 {
				return c
			}
			return recency(a, b)
		})
	default:
		slices.SortStableFunc(v.Items, recency)
	}
}
