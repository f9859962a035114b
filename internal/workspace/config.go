package workspace

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for workspace documents that are not a flat
// mapping of non-empty names to non-empty prefixes.
var ErrInvalidConfig = errors.New("invalid workspace configuration")

// DefaultEntries are used when nothing is configured.
var DefaultEntries = []Entry{
	{Name: "Parex", Prefix: "parex"},
	{Name: "ParkPlace", Prefix: "parkplace"},
}

// ParseEntries decodes a YAML or JSON mapping of workspace name to prefix,
// preserving document order. An empty document yields no entries.
func ParseEntries(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of name to prefix", ErrInvalidConfig)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: name and prefix must be strings", ErrInvalidConfig, key.Line)
		}
		if key.Value == "" || val.Value == "" {
			return nil, fmt.Errorf("%w: line %d: empty name or prefix", ErrInvalidConfig, key.Line)
		}
		entries = append(entries, Entry{Name: key.Value, Prefix: val.Value})
	}
	return entries, nil
}

// LoadFile reads workspace entries from a YAML or JSON file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
