package models

import (
	"testing"
	"time"
)

func TestOriginTag(t *testing.T) {
	tests := []struct {
		origin Origin
		tag    string
	}{
		{OriginLocal, "local"},
		{OriginRemote, "remote"},
		{OriginNone, ""},
		{Origin("bogus"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.origin), func(t *testing.T) {
			if got := tt.origin.Tag(); got != tt.tag {
				t.Errorf("Expected tag %q for origin %q, got %q", tt.tag, tt.origin, got)
			}
		})
	}
}

func TestOriginDisplayName(t *testing.T) {
	if got := OriginLocal.DisplayName(); got != "Local" {
		t.Errorf("Expected 'Local', got %s", got)
	}
	if got := OriginRemote.DisplayName(); got != "Remote" {
		t.Errorf("Expected 'Remote', got %s", got)
	}
	if got := OriginNone.DisplayName(); got != "Unsorted" {
		t.Errorf("Expected 'Unsorted', got %s", got)
	}
}

func TestParseOrigin(t *testing.T) {
	if ParseOrigin("Local") != OriginLocal {
		t.Error("Expected Local to parse")
	}
	if ParseOrigin("remote") != OriginRemote {
		t.Error("Expected remote to parse")
	}
	if ParseOrigin("elsewhere") != OriginNone {
		t.Error("Expected unknown origin to map to none")
	}
}

func TestStoredNoteToNote(t *testing.T) {
	stored := &StoredNote{
		NoteVersion: EnvelopeVersion,
		Content:     "hello",
		Date:        1700000000000,
		Author:      "@alice:matrix.org",
		URL:         "https://example.org/#/abc/01/02",
		Labels:      []string{"work/a"},
	}

	note := stored.ToNote(OriginRemote)

	if note.Origin != OriginRemote {
		t.Errorf("Expected remote origin, got %s", note.Origin)
	}
	if !note.Date.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Unexpected date %v", note.Date)
	}
	if note.ID != stored.URL {
		t.Errorf("Expected ID %s, got %s", stored.URL, note.ID)
	}

	// Labels are copied, not shared.
	note.Labels[0] = "changed"
	if stored.Labels[0] != "work/a" {
		t.Error("Expected stored labels to be untouched")
	}
}
