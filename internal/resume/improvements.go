package resume

import "slices"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Improvement struct {
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
}

// TopImprovements returns the three most important improvements for the
// improvement panel. Unlike the ATS suggestions it also covers incomplete
// education and only flags summaries that are too short.
func TopImprovements(r *Record, ats *ATSResult) []Improvement {
	if r == nil {
		r = Empty()
	}
	if ats == nil {
		ats = Score(r)
	}

	var items []Improvement
	add := func(p Priority, msg string) {
		items = append(items, Improvement{Priority: p, Message: msg})
	}

	if len(r.Projects) < minProjects {
		add(PriorityHigh, "Add at least 2 projects to showcase your work.")
	}
	if ats.Breakdown.MeasurableImpact == 0 {
		add(PriorityHigh, "Add measurable impact (numbers) to your experience and projects.")
	}
	if r.SummaryWordCount() < minSummaryWords {
		add(PriorityMedium, "Expand your summary to 40-120 words for better impact.")
	}
	if r.Skills.Len() < minSkills {
		add(PriorityMedium, "Add more skills (target 8+) to improve ATS matching.")
	}
	if len(r.Experience) == 0 {
		add(PriorityHigh, "Add work experience or internship/project work.")
	}
	if !r.Links.HasAny() {
		add(PriorityLow, "Add GitHub or LinkedIn link to strengthen your profile.")
	}
	if ats.Breakdown.Education == 0 {
		add(PriorityMedium, "Complete all education fields (school, degree, field).")
	}

	slices.SortStableFunc(items, func(a, b Improvement) int {
		return a.Priority.rank() - b.Priority.rank()
	})

	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	return items
}
