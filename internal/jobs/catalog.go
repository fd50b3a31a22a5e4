package jobs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

//go:embed catalog.json
var defaultCatalog []byte

// LoadCatalog returns the job catalog stored at path, or the built-in one
// when path is empty.
func LoadCatalog(path string) (*Listings, error) {
	data := defaultCatalog
	if path = strings.TrimSpace(path); path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %q: %w", path, err)
		}
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes a JSON array of listings.
func ParseCatalog(data []byte) (*Listings, error) {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var listings []*Listing
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &listings,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(listings))
	for i, listing := range listings {
		if listing == nil || listing.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := seen[listing.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", listing.ID)
		}
		seen[listing.ID] = struct{}{}

		if !listing.Mode.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown mode %q", listing.ID, listing.Mode)
		}
		if listing.Skills == nil {
			listing.Skills = []string{}
		}
	}

	return &Listings{Items: listings}, nil
}
