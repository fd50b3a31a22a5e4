package resume

import (
	"fmt"
	"strings"
)

const sectionRule = 50

// PlainText renders the résumé as plain text suitable for pasting into
// application forms.
func PlainText(r *Record) string {
	var lines []string
	section := func(title string) {
		lines = append(lines, title, strings.Repeat("-", sectionRule))
	}

	if r.PersonalInfo.Name != "" {
		lines = append(lines, r.PersonalInfo.Name, "")
	}

	contact := nonEmpty(r.PersonalInfo.Location, r.PersonalInfo.Email, r.PersonalInfo.Phone)
	if len(contact) > 0 {
		lines = append(lines, strings.Join(contact, " | "), "")
	}

	var links []string
	if r.Links.LinkedIn != "" {
		links = append(links, "LinkedIn: "+r.Links.LinkedIn)
	}
	if r.Links.GitHub != "" {
		links = append(links, "GitHub: "+r.Links.GitHub)
	}
	if len(links) > 0 {
		lines = append(lines, strings.Join(links, " | "), "")
	}

	if r.Summary != "" {
		section("SUMMARY")
		lines = append(lines, r.Summary, "")
	}

	if len(r.Experience) > 0 {
		section("EXPERIENCE")
		for _, exp := range r.Experience {
			lines = append(lines,
				fmt.Sprintf("%s | %s", exp.Role, exp.Company),
				fmt.Sprintf("%s - %s", exp.StartDate, exp.EndDate),
			)
			if exp.Description != "" {
				lines = append(lines, exp.Description)
			}
			lines = append(lines, "")
		}
	}

	if len(r.Education) > 0 {
		section("EDUCATION")
		for _, edu := range r.Education {
			degree := edu.Degree
			if edu.Degree != "" && edu.Field != "" {
				degree += ", "
			}
			lines = append(lines,
				edu.School,
				degree+edu.Field,
				fmt.Sprintf("%s - %s", edu.StartDate, edu.EndDate),
				"",
			)
		}
	}

	if len(r.Projects) > 0 {
		section("PROJECTS")
		for _, proj := range r.Projects {
			lines = append(lines, proj.Name)
			if len(proj.Technologies) > 0 {
				lines = append(lines, "Technologies: "+strings.Join(proj.Technologies, ", "))
			}
			if proj.Description != "" {
				lines = append(lines, proj.Description)
			}
			if proj.LiveURL != "" {
				lines = append(lines, "Live: "+proj.LiveURL)
			}
			if proj.GithubURL != "" {
				lines = append(lines, "GitHub: "+proj.GithubURL)
			}
			lines = append(lines, "")
		}
	}

	if r.Skills.Len() > 0 {
		section("SKILLS")
		if len(r.Skills.Technical) > 0 {
			lines = append(lines, "Technical: "+strings.Join(r.Skills.Technical, ", "))
		}
		if len(r.Skills.Soft) > 0 {
			lines = append(lines, "Soft Skills: "+strings.Join(r.Skills.Soft, ", "))
		}
		if len(r.Skills.Tools) > 0 {
			lines = append(lines, "Tools: "+strings.Join(r.Skills.Tools, ", "))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// ValidateForExport lists warnings for résumés that would look incomplete
// once exported. Export is never blocked.
func ValidateForExport(r *Record) []string {
	var warnings []string
	if strings.TrimSpace(r.PersonalInfo.Name) == "" {
		warnings = append(warnings, "Your resume may look incomplete: Name is missing.")
	}
	if len(r.Experience) == 0 && len(r.Projects) == 0 {
		warnings = append(warnings, "Your resume may look incomplete: Add at least one project or experience.")
	}
	return warnings
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
