package orgchart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAliases reads the optional canonical short-name table: a flat YAML
// mapping from alias to full unit path. Aliases let operators pin exact
// resolutions for names that would otherwise go through fuzzy matching.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias table: %w", err)
	}
	var aliases map[string]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("decode alias table: %w", err)
	}
	return aliases, nil
}
