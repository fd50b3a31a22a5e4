package preferences

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/careerdeck/internal/jobs"
)

// StorageKey is the key preferences are persisted under.
const StorageKey = "jobTrackerPreferences"

// ExperienceLevels are the levels offered when editing preferences.
var ExperienceLevels = []string{"Fresher", "0-1", "1-3", "3-5"}

type Preferences struct {
	RoleKeywords       []string    `json:"roleKeywords" mapstructure:"roleKeywords"`
	PreferredLocations []string    `json:"preferredLocations" mapstructure:"preferredLocations"`
	PreferredModes     []jobs.Mode `json:"preferredMode" mapstructure:"preferredMode" validate:"dive,oneof=Remote Hybrid Onsite"`
	ExperienceLevel    string      `json:"experienceLevel" mapstructure:"experienceLevel"`
	Skills             []string    `json:"skills" mapstructure:"skills"`
	MinMatchScore      int         `json:"minMatchScore" mapstructure:"minMatchScore" validate:"min=0,max=100"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the score threshold and work modes.
func (p *Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// Decode parses stored preferences. Older documents stored keyword and
// location lists as comma-joined strings and a single work mode; those are
// accepted too.
func Decode(data []byte) (*Preferences, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse preferences: empty document")
	}

	doc := maps.Clone(raw)
	for _, key := range []string{"roleKeywords", "preferredLocations", "skills", "preferredMode"} {
		if s, ok := doc[key].(string); ok {
			doc[key] = ParseCommaSeparated(s)
		}
	}
	// "locations" was renamed to "preferredLocations".
	if legacy, ok := doc["locations"]; ok {
		if _, set := doc["preferredLocations"]; !set {
			if s, isString := legacy.(string); isString {
				legacy = ParseCommaSeparated(s)
			}
			doc["preferredLocations"] = legacy
		}
	}

	prefs := &Preferences{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           prefs,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}

	prefs.fillNils()
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (p *Preferences) fillNils() {
	if p.RoleKeywords == nil {
		p.RoleKeywords = []string{}
	}
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if p.PreferredModes == nil {
		p.PreferredModes = []jobs.Mode{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
}

// ParseCommaSeparated splits a comma separated input into trimmed,
// non-empty items.
func ParseCommaSeparated(input string) []string {
	items := []string{}
	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// FormatList joins items back into the comma separated form.
func FormatList(items []string) string {
	return strings.Join(items, ", ")
}
