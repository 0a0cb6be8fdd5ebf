package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadItems reads an evaluation set. Files ending in .yaml or .yml are parsed as YAML,
// anything else as JSON. Both hold a list of {query, expected_doc_id}.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read evaluation set: %w", err)
	}
	return ParseItems(data, filepath.Ext(path))
}

// ParseItems decodes an evaluation set in the format implied by ext.
func ParseItems(data []byte, ext string) ([]Item, error) {
	var items []Item
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse YAML evaluation set: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse JSON evaluation set: %w", err)
		}
	}

	for i, item := range items {
		if strings.TrimSpace(item.Query) == "" {
			return nil, fmt.Errorf("item %d: query is required", i)
		}
		if strings.TrimSpace(item.ExpectedDocID) == "" {
			return nil, fmt.Errorf("item %d: expected_doc_id is required", i)
		}
	}
	return items, nil
}
