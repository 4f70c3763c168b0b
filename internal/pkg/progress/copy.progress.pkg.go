package progress

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Copy is the loading-page text file:
//
//	statuses:
//	  - Checking your details
//	  - Almost done
type Copy struct {
	Statuses []string `yaml:"statuses"`
}

// LoadStatuses reads status texts from a YAML file. An empty path yields
// DefaultStatuses.
func LoadStatuses(path string) ([]string, error) {
	if path == "" {
		return DefaultStatuses, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read loading copy: %w", err)
	}
	return ParseStatuses(data)
}

func ParseStatuses(data []byte) ([]string, error) {
	var c Copy
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse loading copy: %w", err)
	}

	out := make([]string, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("loading copy has no statuses")
	}
	return out, nil
}
