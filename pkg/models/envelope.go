package models

import "time"

// EnvelopeVersion is the notes file format written by the converter and read
// as remote notes.
const EnvelopeVersion = 3

// Envelope is a notes file: a versioned list of notes.
type Envelope struct {
	Version int           `json:"version"`
	Notes   []*StoredNote `json:"notes"`
}

// StoredNote is the on-disk shape of a note inside an Envelope.
type StoredNote struct {
	NoteVersion    int      `json:"noteVersion"`
	Content        string   `json:"content"`
	Date           int64    `json:"date"` // unix milliseconds
	Author         string   `json:"author"`
	URL            string   `json:"url"`
	Version        string   `json:"version"`
	SelectionStart string   `json:"selectionStart"`
	SelectionEnd   string   `json:"selectionEnd"`
	Labels         []string `json:"labels"`
}

// ToNote converts a stored note to a Note with the given origin.
func (s *StoredNote) ToNote(origin Origin) *Note {
	labels := make([]string, len(s.Labels))
	copy(labels, s.Labels)
	return &Note{
		ID:      s.URL,
		Title:   s.URL,
		Content: s.Content,
		Author:  s.Author,
		Date:    time.UnixMilli(s.Date),
		Labels:  labels,
		Origin:  origin,
	}
}
