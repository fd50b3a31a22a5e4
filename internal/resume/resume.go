package resume

import "strings"

// StorageKey is the key the résumé is persisted under.
const StorageKey = "resumeBuilderData"

type Record struct {
	PersonalInfo PersonalInfo `json:"personalInfo" mapstructure:"personalInfo"`
	Summary      string       `json:"summary" mapstructure:"summary"`
	Education    []Education  `json:"education" mapstructure:"education"`
	Experience   []Experience `json:"experience" mapstructure:"experience"`
	Projects     []Project    `json:"projects" mapstructure:"projects"`
	Skills       Skills       `json:"skills" mapstructure:"skills"`
	Links        Links        `json:"links" mapstructure:"links"`
}

type PersonalInfo struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
	Location string `json:"location" mapstructure:"location"`
}

type Education struct {
	ID        string `json:"id" mapstructure:"id"`
	School    string `json:"school" mapstructure:"school"`
	Degree    string `json:"degree" mapstructure:"degree"`
	Field     string `json:"field" mapstructure:"field"`
	StartDate string `json:"startDate" mapstructure:"startDate"`
	EndDate   string `json:"endDate" mapstructure:"endDate"`
}

// Complete reports whether school, degree and field are all filled in.
func (e Education) Complete() bool {
	return strings.TrimSpace(e.School) != "" &&
		strings.TrimSpace(e.Degree) != "" &&
		strings.TrimSpace(e.Field) != ""
}

type Experience struct {
	ID          string `json:"id" mapstructure:"id"`
	Company     string `json:"company" mapstructure:"company"`
	Role        string `json:"role" mapstructure:"role"`
	StartDate   string `json:"startDate" mapstructure:"startDate"`
	EndDate     string `json:"endDate" mapstructure:"endDate"`
	Description string `json:"description" mapstructure:"description"`
}

type Project struct {
	ID           string   `json:"id" mapstructure:"id"`
	Name         string   `json:"name" mapstructure:"name"`
	Description  string   `json:"description" mapstructure:"description"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
	LiveURL      string   `json:"liveUrl,omitempty" mapstructure:"liveUrl"`
	GithubURL    string   `json:"githubUrl,omitempty" mapstructure:"githubUrl"`
}

// Skills groups skills into the three buckets the builder exposes.
type Skills struct {
	Technical []string `json:"technical" mapstructure:"technical"`
	Soft      []string `json:"soft" mapstructure:"soft"`
	Tools     []string `json:"tools" mapstructure:"tools"`
}

func (s Skills) Len() int {
	return len(s.Technical) + len(s.Soft) + len(s.Tools)
}

func (s Skills) All() []string {
	all := make([]string, 0, s.Len())
	all = append(all, s.Technical...)
	all = append(all, s.Soft...)
	all = append(all, s.Tools...)
	return all
}

type Links struct {
	GitHub   string `json:"github" mapstructure:"github"`
	LinkedIn string `json:"linkedin" mapstructure:"linkedin"`
}

// HasAny reports whether at least one profile link is set.
func (l Links) HasAny() bool {
	return strings.TrimSpace(l.GitHub) != "" || strings.TrimSpace(l.LinkedIn) != ""
}

// Empty returns a record with every list initialised.
func Empty() *Record {
	r := &Record{}
	r.fillNils()
	return r
}

func (r *Record) fillNils() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []string{}
	}
	if r.Skills.Soft == nil {
		r.Skills.Soft = []string{}
	}
	if r.Skills.Tools == nil {
		r.Skills.Tools = []string{}
	}
}

// SummaryWordCount counts whitespace separated words in the summary.
func (r *Record) SummaryWordCount() int {
	return len(strings.Fields(r.Summary))
}
