// Package digest builds the daily shortlist of best matching jobs.
package digest

import (
	"cmp"
	"slices"
	"time"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/matching"
	"github.com/spigell/careerdeck/internal/preferences"
)

const (
	// MaxJobs caps the number of listings in a digest.
	MaxJobs = 10

	DateLayout = "2006-01-02"
	keyPrefix  = "jobTrackerDigest_"
)

type Digest struct {
	Date        string    `json:"date"`
	GeneratedAt time.Time `json:"generatedAt"`
	Jobs        []Job     `json:"jobs"`
}

// Job is the part of a listing that ends up in the digest.
type Job struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	MatchScore int    `json:"matchScore"`
	ApplyURL   string `json:"applyUrl"`
}

// Key returns the storage key of the digest for the given date.
func Key(date string) string {
	return keyPrefix + date
}

// Today formats t as a digest date in t's own location.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

type scored struct {
	listing *jobs.Listing
	score   int
}

// Build ranks all listings against prefs and keeps the best ones. It
// returns nil when prefs is nil.
//
// Listings scoring below prefs.MinMatchScore are dropped; the rest are
// ordered by score, then by how recently they were posted.
func Build(all []*jobs.Listing, prefs *preferences.Preferences, today string, generatedAt time.Time) *Digest {
	if prefs == nil {
		return nil
	}

	matched := make([]scored, 0, len(all))
	for _, listing := range all {
		if listing == nil {
			continue
		}
		score := matching.Score(listing, prefs)
		if score < prefs.MinMatchScore {
			continue
		}
		matched = append(matched, scored{listing: listing, score: score})
	}

	slices.SortStableFunc(matched, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.listing.PostedDaysAgo, b.listing.PostedDaysAgo)
	})

	if len(matched) > MaxJobs {
		matched = matched[:MaxJobs]
	}

	out := make([]Job, 0, len(matched))
	for _, m := range matched {
		out = append(out, Job{
			ID:         m.listing.ID,
			Title:      m.listing.Title,
			Company:    m.listing.Company,
			Location:   m.listing.Location,
			Experience: m.listing.Experience,
			MatchScore: m.score,
			ApplyURL:   m.listing.ApplyURL,
		})
	}

	return &Digest{
		Date:        today,
		GeneratedAt: generatedAt,
		Jobs:        out,
	}
}
