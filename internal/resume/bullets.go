package resume

import (
	"regexp"
	"slices"
	"strings"
)

var actionVerbs = []string{
	"built", "developed", "designed", "implemented", "led", "improved", "created",
	"optimized", "automated", "managed", "architected", "engineered", "launched",
	"delivered", "spearheaded", "pioneered", "streamlined", "reduced", "increased",
	"achieved", "collaborated", "coordinated", "executed", "facilitated", "generated",
	"integrated", "maintained", "mentored", "negotiated", "orchestrated", "produced",
	"refactored", "resolved", "scaled", "secured", "trained", "transformed",
	"analyzed", "conducted", "defined", "established", "evaluated", "identified",
	"investigated", "measured", "monitored", "researched", "tested", "validated",
}

var wordSeparator = regexp.MustCompile(`[\s\W]+`)

type BulletFeedback struct {
	HasActionVerb bool     `json:"hasActionVerb"`
	HasNumbers    bool     `json:"hasNumbers"`
	Suggestions   []string `json:"suggestions"`
}

// AnalyzeBullet checks a single bullet for a leading action verb and a
// quantified result.
func AnalyzeBullet(text string) BulletFeedback {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return BulletFeedback{Suggestions: []string{}}
	}

	first := wordSeparator.Split(trimmed, 2)[0]
	feedback := BulletFeedback{
		HasActionVerb: slices.Contains(actionVerbs, first),
		HasNumbers:    ContainsNumber(trimmed),
		Suggestions:   []string{},
	}

	if !feedback.HasActionVerb {
		feedback.Suggestions = append(feedback.Suggestions, "Start with a strong action verb.")
	}
	if !feedback.HasNumbers {
		feedback.Suggestions = append(feedback.Suggestions, "Add measurable impact (numbers).")
	}

	return feedback
}
