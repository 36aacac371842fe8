package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  []string
	}{
		{"single segment", "work", []string{"work"}},
		{"two segments", "work/a", []string{"work", "a"}},
		{"surrounding whitespace", "  work/a  ", []string{"work", "a"}},
		{"empty segments dropped", "/work//a/", []string{"work", "a"}},
		{"blank", "   ", nil},
		{"only separators", "///", nil},
		{"inner spaces kept", "work/ a b", []string{"work", " a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.label))
		})
	}
}

func TestRootTag(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		origin models.Origin
		want   string
	}{
		{"local override", "foo/bar", models.OriginLocal, "local"},
		{"remote override", "foo/bar", models.OriginRemote, "remote"},
		{"first segment", "foo/bar", models.OriginNone, "foo"},
		{"leading separator", "/foo/bar", models.OriginNone, "foo"},
		{"empty without origin", "", models.OriginNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RootTag(tt.label, tt.origin))
		})
	}
}

func TestLeaf(t *testing.T) {
	assert.Equal(t, "a", Leaf("work/a"))
	assert.Equal(t, "work", Leaf("work"))
	assert.Equal(t, "c", Leaf("local/b/c"))
}

func TestEditable(t *testing.T) {
	raw := []string{"local", "work/a", "remote", "home"}

	assert.Equal(t, []string{"work/a", "home"}, Editable(raw, false))
	assert.Equal(t, []string{"local", "remote"}, Editable(raw, true))
	assert.Empty(t, Editable(nil, false))
}
