package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Origin classifies where a note came from.
type Origin string

const (
	OriginNone   Origin = ""
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Tag returns the root segment that labels of this origin are grouped under.
// Notes without an origin have no override and return "".
func (o Origin) Tag() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	default:
		return ""
	}
}

// DisplayName returns the origin as shown to users ("Local", "Remote").
func (o Origin) DisplayName() string {
	if o == OriginNone {
		return "Unsorted"
	}
	return cases.Title(language.English).String(string(o))
}

// ParseOrigin maps a config or frontmatter value to an Origin.
func ParseOrigin(s string) Origin {
	switch s {
	case "local", "Local":
		return OriginLocal
	case "remote", "Remote":
		return OriginRemote
	default:
		return OriginNone
	}
}

// RemoteMetadata describes the remote item a note was imported from
type RemoteMetadata struct {
	Provider  string    `json:"provider,omitempty"`
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url,omitempty"`
	State     string    `json:"state,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Note is a single note together with its raw label list.
type Note struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title,omitempty"`
	Path    string    `json:"path,omitempty"`
	Content string    `json:"content"`
	Author  string    `json:"author,omitempty"`
	Date    time.Time `json:"date"`

	// Labels is the flat, ordered list of raw label strings.
	Labels []string `json:"labels"`
	Origin Origin   `json:"origin,omitempty"`

	Remote *RemoteMetadata `json:"remote,omitempty"`
}
