package resume

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Decode parses a stored résumé document and normalizes it.
func Decode(data []byte) (*Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}
	return Normalize(raw)
}

// Normalize converts any stored résumé shape into the current Record.
//
// Older documents kept skills as a flat list and project technologies as a
// comma-joined string; both are upgraded here. Entries without an ID get a
// fresh one. The input map is not modified.
func Normalize(raw map[string]any) (*Record, error) {
	doc := maps.Clone(raw)
	if doc == nil {
		doc = map[string]any{}
	}

	doc["skills"] = migrateSkills(doc["skills"])
	if projects, ok := doc["projects"].([]any); ok {
		doc["projects"] = migrateProjects(projects)
	}

	record := &Record{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           record,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}

	record.fillNils()
	assignIDs(record)

	return record, nil
}

func migrateSkills(v any) any {
	switch skills := v.(type) {
	case []any:
		return map[string]any{"technical": skills, "soft": []any{}, "tools": []any{}}
	case string:
		return map[string]any{"technical": splitList(skills), "soft": []any{}, "tools": []any{}}
	case nil:
		return map[string]any{}
	default:
		return v
	}
}

func migrateProjects(projects []any) []any {
	out := make([]any, 0, len(projects))
	for _, p := range projects {
		project, ok := p.(map[string]any)
		if !ok {
			out = append(out, p)
			continue
		}
		project = maps.Clone(project)
		if tech, ok := project["technologies"].(string); ok {
			project["technologies"] = splitList(tech)
		}
		// "link" predates the separate live and GitHub URLs.
		if link, ok := project["link"].(string); ok {
			if _, set := project["githubUrl"]; !set {
				project["githubUrl"] = link
			}
			delete(project, "link")
		}
		out = append(out, project)
	}
	return out
}

func splitList(s string) []any {
	var out []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		return []any{}
	}
	return out
}

func assignIDs(r *Record) {
	for i := range r.Education {
		if r.Education[i].ID == "" {
			r.Education[i].ID = uuid.NewString()
		}
	}
	for i := range r.Experience {
		if r.Experience[i].ID == "" {
			r.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range r.Projects {
		if r.Projects[i].ID == "" {
			r.Projects[i].ID = uuid.NewString()
		}
	}
}
