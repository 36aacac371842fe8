package frontmatter

import (
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// Frontmatter represents the structured metadata at the beginning of a note
type Frontmatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author,omitempty"`
	Origin   string   `yaml:"origin,omitempty"` // local or remote; empty means the loader decides
	Labels   []string `yaml:"labels,flow"`
	Tags     []string `yaml:"tags,flow"`
	Created  string   `yaml:"created"`
	Modified string   `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	frontmatterStr := matches[1]
	bodyContent := matches[2]

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(frontmatterStr), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Ensure arrays are never nil
	if fm.Labels == nil {
		fm.Labels = []string{}
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	return &fm, bodyContent, nil
}

// RawLabels returns the note's raw label list: `labels` followed by `tags`,
// first occurrence kept.
func (fm *Frontmatter) RawLabels() []string {
	if fm == nil {
		return []string{}
	}
	return MergeLabels(fm.Labels, fm.Tags)
}

// ParseTimestamp parses a frontmatter timestamp string into time.Time
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

// MergeLabels combines multiple label sources and removes duplicates
func MergeLabels(sources ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, labels := range sources {
		for _, label := range labels {
			if label != "" && !seen[label] {
				seen[label] = true
				result = append(result, label)
			}
		}
	}

	return result
}
