package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultCountsFile is the occupancy file used when no path is given
const DefaultCountsFile = "counts.json"

// LoadCounts reads the circle occupancy mapping (circle id -> people present)
func LoadCounts(path string) (map[int]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts file: %w", err)
	}

	return ParseCounts(data)
}

// ParseCounts decodes a YAML or JSON mapping of circle ids to counts. Keys are
// strings in JSON, so they are converted here.
func ParseCounts(data []byte) (map[int]int, error) {
	var raw map[string]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse counts file: %w", err)
	}

	counts := make(map[int]int, len(raw))
	for key, count := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid circle id %q in counts: %w", key, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("negative count %d for circle %d", count, id)
		}
		counts[id] = count
	}

	return counts, nil
}
