package resume

import (
	"regexp"
	"strings"
)

const (
	summaryAward          = 15
	projectsAward         = 10
	experienceAward       = 10
	skillsAward           = 10
	linksAward            = 10
	measurableImpactAward = 15
	educationAward        = 10

	minSummaryWords = 40
	maxSummaryWords = 120
	minProjects     = 2
	minSkills       = 8

	// maxScore caps the total. Current awards sum to 80, so it only matters
	// once new rules are added.
	maxScore       = 100
	maxSuggestions = 3
)

// Suggestions returned by Score, in the order the rules are checked.
// At most three appear in one result.
const (
	SuggestionSummary    = "Write a stronger summary (40–120 words)."
	SuggestionProjects   = "Add at least 2 projects."
	SuggestionImpact     = "Add measurable impact (numbers) in bullets."
	SuggestionSkills     = "Add more skills (target 8+)."
	SuggestionLinks      = "Add GitHub or LinkedIn link."
	SuggestionExperience = "Add at least 1 work experience entry."
)

var numberPattern = regexp.MustCompile(`\d+%?|\d+k|\d+m|\d+x|\d+\s*(percent|times|x|fold)|\$\d+`)

// Breakdown holds the points each rule awarded. A rule either grants its
// full weight or zero.
type Breakdown struct {
	Summary          int `json:"summary"`
	Projects         int `json:"projects"`
	Experience       int `json:"experience"`
	Skills           int `json:"skills"`
	Links            int `json:"links"`
	MeasurableImpact int `json:"measurableImpact"`
	Education        int `json:"education"`
}

// Sum adds up the awarded points before the score cap is applied.
func (b Breakdown) Sum() int {
	return b.Summary + b.Projects + b.Experience + b.Skills + b.Links + b.MeasurableImpact + b.Education
}

// ATSResult is the outcome of Score. Suggestions name the first failing
// rules, at most three of them.
type ATSResult struct {
	Score       int       `json:"score"`
	Breakdown   Breakdown `json:"breakdown"`
	Suggestions []string  `json:"suggestions"`
}

// Score rates how ready the résumé is for applicant tracking systems.
// It never fails and does not modify r.
func Score(r *Record) *ATSResult {
	if r == nil {
		r = Empty()
	}

	words := r.SummaryWordCount()
	summaryOK := words >= minSummaryWords && words <= maxSummaryWords

	var b Breakdown
	if summaryOK {
		b.Summary = summaryAward
	}
	if len(r.Projects) >= minProjects {
		b.Projects = projectsAward
	}
	if len(r.Experience) >= 1 {
		b.Experience = experienceAward
	}
	if r.Skills.Len() >= minSkills {
		b.Skills = skillsAward
	}
	if r.Links.HasAny() {
		b.Links = linksAward
	}
	if HasMeasurableImpact(r) {
		b.MeasurableImpact = measurableImpactAward
	}
	for _, edu := range r.Education {
		if edu.Complete() {
			b.Education = educationAward
			break
		}
	}

	return &ATSResult{
		Score:       min(b.Sum(), maxScore),
		Breakdown:   b,
		Suggestions: suggestions(r, b, summaryOK),
	}
}

func suggestions(r *Record, b Breakdown, summaryOK bool) []string {
	checks := []struct {
		failed  func() bool
		message string
	}{
		{func() bool { return !summaryOK }, SuggestionSummary},
		{func() bool { return len(r.Projects) < minProjects }, SuggestionProjects},
		{func() bool { return b.MeasurableImpact == 0 }, SuggestionImpact},
		{func() bool { return r.Skills.Len() < minSkills }, SuggestionSkills},
		{func() bool { return !r.Links.HasAny() }, SuggestionLinks},
		{func() bool { return len(r.Experience) == 0 }, SuggestionExperience},
	}

	out := make([]string, 0, maxSuggestions)
	for _, check := range checks {
		if len(out) == maxSuggestions {
			break
		}
		if check.failed() {
			out = append(out, check.message)
		}
	}
	return out
}

// HasMeasurableImpact reports whether any experience or project
// description mentions a number.
func HasMeasurableImpact(r *Record) bool {
	for _, exp := range r.Experience {
		if ContainsNumber(exp.Description) {
			return true
		}
	}
	for _, proj := range r.Projects {
		if ContainsNumber(proj.Description) {
			return true
		}
	}
	return false
}

// ContainsNumber reports whether text holds a figure such as 40%, 3x,
// 10k or $500.
func ContainsNumber(text string) bool {
	return numberPattern.MatchString(strings.ToLower(text))
}
