package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Mode is the work arrangement offered by a listing.
type Mode string

const (
	ModeRemote Mode = "Remote"
	ModeHybrid Mode = "Hybrid"
	ModeOnsite Mode = "Onsite"
)

// Modes lists every supported work mode.
var Modes = []Mode{ModeRemote, ModeHybrid, ModeOnsite}

func (m Mode) Valid() bool {
	return slices.Contains(Modes, m)
}

const SourceLinkedIn = "LinkedIn"

const (
	ListingIDField      = "ID"
	ListingCompanyField = "Company"
)

type Listings struct {
	Items []*Listing
}

type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Mode          Mode     `json:"mode"`
	Experience    string   `json:"experience"`
	Skills        []string `json:"skills"`
	SalaryRange   string   `json:"salaryRange"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
	Source        string   `json:"source"`
	ApplyURL      string   `json:"applyUrl"`
}

func (l *Listing) GetStringField(name string) string {
	switch name {
	case ListingIDField:
		return l.ID
	case ListingCompanyField:
		return l.Company
	default:
		return ""
	}
}

// SalaryFloor returns the first number of the salary range, e.g. 12 for
// "12–18 LPA". Listings without a number report 0.
func (l *Listing) SalaryFloor() int {
	start := strings.IndexFunc(l.SalaryRange, unicode.IsDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(l.SalaryRange) && unicode.IsDigit(rune(l.SalaryRange[end])) {
		end++
	}
	n, err := strconv.Atoi(l.SalaryRange[start:end])
	if err != nil {
		return 0
	}
	return n
}

func NewListings(items []*Listing) *Listings {
	return &Listings{Items: slices.Clone(items)}
}

func (v *Listings) Len() int {
	return len(v.Items)
}

func (v *Listings) FindByID(id string) *Listing {
	for _, listing := range v.Items {
		if listing.ID == id {
			return listing
		}
	}
	return nil
}

// Keep retains the listings for which keep returns true, preserving order,
// and returns the IDs of the dropped ones.
func (v *Listings) Keep(keep func(*Listing) bool) []string {
	var dropped []string
	kept := v.Items[:0:0]
	for _, listing := range v.Items {
		if keep(listing) {
			kept = append(kept, listing)
			continue
		}
		dropped = append(dropped, listing.ID)
	}
	v.Items = kept
	return dropped
}

// Exclude drops listings whose field equals one of targets.
func (v *Listings) Exclude(name string, targets []string) []string {
	return v.Keep(func(l *Listing) bool {
		return !slices.Contains(targets, l.GetStringField(name))
	})
}

// ReportByCompany groups listings by company for a quick overview.
func (v *Listings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, listing := range v.Items {
		report[listing.Company] = append(report[listing.Company], map[string]string{
			"id":         listing.ID,
			"title":      listing.Title,
			"location":   listing.Location,
			"mode":       string(listing.Mode),
			"experience": listing.Experience,
			"salary":     listing.SalaryRange,
			"url":        listing.ApplyURL,
			"posted":     fmt.Sprintf("%d days ago", listing.PostedDaysAgo),
		})
	}
	return report
}

func (v *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
