package labels

import (
	"strings"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// Separator splits a label into hierarchy segments.
const Separator = "/"

// ParsePath splits a label into its non-empty segments.
// "  work//a/ " yields ["work", "a"]; a blank label yields nil.
func ParsePath(label string) []string {
	var segments []string
	for _, part := range strings.Split(strings.TrimSpace(label), Separator) {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// RootTag resolves the root segment a label is grouped under. The origin's
// tag wins when set, otherwise the label's own first segment is used.
// An empty result means the label cannot be placed in the hierarchy.
func RootTag(label string, origin models.Origin) string {
	if tag := origin.Tag(); tag != "" {
		return tag
	}
	segments := ParsePath(label)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

// Leaf returns the last segment of a node identity, which is what gets displayed.
func Leaf(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}
