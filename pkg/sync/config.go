package sync

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
)

// Source is one configured remote, e.g.
//
//	remotes:
//	  - name: backend
//	    provider: github
//	    repo: acme/backend
//	    prs: true
//	    labels: [team/backend]
type Source struct {
	Name         string   `mapstructure:"name"`
	Provider     string   `mapstructure:"provider"`
	Repo         string   `mapstructure:"repo"`
	Path         string   `mapstructure:"path"` // working directory for providers that need one
	Issues       bool     `mapstructure:"issues"`
	PullRequests bool     `mapstructure:"prs"`
	Labels       []string `mapstructure:"labels"` // added to every note from this source
	Output       string   `mapstructure:"output"`
}

// OutputPath returns where the source's envelope is written.
func (s Source) OutputPath(defaultDir string) string {
	if s.Output != "" {
		return s.Output
	}
	return filepath.Join(defaultDir, s.Name+".json")
}

// DecodeSources decodes the raw `remotes` config value. A source that
// selects neither issues nor pull requests syncs issues.
func DecodeSources(raw interface{}) ([]Source, error) {
	if raw == nil {
		return []Source{}, nil // No config, no syncs
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("remotes config is not a list")
	}

	sources := make([]Source, 0, len(list))
	seen := make(map[string]bool)
	for i, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("remotes entry %d is not a map", i)
		}

		var src Source
		if err := mapstructure.Decode(m, &src); err != nil {
			return nil, fmt.Errorf("failed to decode remotes entry %d: %w", i, err)
		}

		if src.Provider == "" {
			return nil, fmt.Errorf("remotes entry %d missing 'provider' field", i)
		}
		if src.Name == "" {
			return nil, fmt.Errorf("remotes entry %d missing 'name' field", i)
		}
		if seen[src.Name] {
			return nil, fmt.Errorf("remotes entry %d: duplicate name %q", i, src.Name)
		}
		seen[src.Name] = true
		if !src.Issues && !src.PullRequests {
			src.Issues = true
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// OutputFiles returns the envelope paths of sources.
func OutputFiles(sources []Source, defaultDir string) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.OutputPath(defaultDir))
	}
	return out
}
