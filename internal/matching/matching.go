// Package matching scores job listings against a user's preferences.
package matching

import (
	"slices"
	"strings"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/preferences"
)

const (
	titleWeight       = 25
	descriptionWeight = 15
	locationWeight    = 15
	modeWeight        = 10
	experienceWeight  = 10
	skillsWeight      = 15
	freshWeight       = 5
	sourceWeight      = 5

	freshDays = 2
	maxScore  = 100
)

// Score rates how well job fits prefs on a 0-100 scale. A nil prefs means
// nothing is configured yet and always scores 0.
func Score(job *jobs.Listing, prefs *preferences.Preferences) int {
	if prefs == nil || job == nil {
		return 0
	}

	keywords := lowerAll(prefs.RoleKeywords)
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)

	score := 0
	if containsAny(title, keywords) {
		score += titleWeight
	}
	if containsAny(description, keywords) {
		score += descriptionWeight
	}
	if slices.Contains(prefs.PreferredLocations, job.Location) {
		score += locationWeight
	}
	if slices.Contains(prefs.PreferredModes, job.Mode) {
		score += modeWeight
	}
	if job.Experience == prefs.ExperienceLevel {
		score += experienceWeight
	}
	if skillsOverlap(lowerAll(job.Skills), lowerAll(prefs.Skills)) {
		score += skillsWeight
	}
	if job.PostedDaysAgo <= freshDays {
		score += freshWeight
	}
	if job.Source == jobs.SourceLinkedIn {
		score += sourceWeight
	}

	return min(score, maxScore)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// skillsOverlap treats "react" and "react native" as overlapping.
func skillsOverlap(jobSkills, userSkills []string) bool {
	for _, user := range userSkills {
		for _, job := range jobSkills {
			if strings.Contains(job, user) || strings.Contains(user, job) {
				return true
			}
		}
	}
	return false
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}
