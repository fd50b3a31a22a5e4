// Package tracker keeps application statuses and saved jobs.
package tracker

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus matches s against the known statuses ignoring case, spaces,
// dashes and underscores, so "not-applied" and "Not Applied" are the same.
func ParseStatus(s string) (Status, error) {
	want := squash(s)
	for _, known := range Statuses {
		if squash(string(known)) == want {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func squash(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
