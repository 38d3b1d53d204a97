package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSetFlags converts --set key=value flags into a runtime override
// document. Dotted keys address nested mappings (resources.memory=1Gi) and
// values are parsed as YAML scalars, so max_instances=10 arrives as an int
// and memory=1Gi as a string.
func ParseSetFlags(flags []string) (map[string]any, error) {
	overrides := make(map[string]any)

	for _, flag := range flags {
		idx := strings.Index(flag, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("%w: --set %q (expected key=value)", ErrInvalidInput, flag)
		}

		key := flag[:idx]
		value := parseScalar(flag[idx+1:])

		overrides = DeepMerge(overrides, nestedValue(strings.Split(key, "."), value))
	}

	return overrides, nil
}

// nestedValue builds a single-path nested map for a dotted key.
func nestedValue(path []string, value any) map[string]any {
	result := map[string]any{path[len(path)-1]: value}
	for i := len(path) - 2; i >= 0; i-- {
		result = map[string]any{path[i]: result}
	}
	return result
}

// parseScalar interprets a flag value the way a YAML document would.
func parseScalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	if value == nil {
		return ""
	}
	return value
}
