package labels

import "github.com/mattsolo1/grove-labels/pkg/models"

// IsOriginLabel reports whether label is one of the origin tags that are
// attached by the loader rather than by users.
func IsOriginLabel(label string) bool {
	return label == models.OriginLocal.Tag() || label == models.OriginRemote.Tag()
}

// Editable returns the labels a user may edit. With onlyNonEditable set it
// returns the complement: the origin tags.
func Editable(labels []string, onlyNonEditable bool) []string {
	out := []string{}
	for _, l := range labels {
		if IsOriginLabel(l) == onlyNonEditable {
			out = append(out, l)
		}
	}
	return out
}
