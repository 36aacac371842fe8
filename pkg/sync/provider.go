package sync

import (
	"context"
	"time"
)

// Provider defines the interface for a source of remote notes (e.g., GitHub).
type Provider interface {
	// Name returns the provider's name (e.g., "github").
	Name() string
	// Fetch returns every item the source selects.
	Fetch(ctx context.Context, source Source) ([]*Item, error)
}

// Item represents a generic remote entity.
type Item struct {
	ID        string // The unique ID on the remote platform (e.g., issue number "123").
	Type      string // "issue" or "pr".
	Title     string
	Body      string
	State     string
	URL       string
	Author    string
	Labels    []string
	UpdatedAt time.Time
}

// Report summarizes the results of syncing one source.
type Report struct {
	Source   string
	Provider string
	Output   string
	Notes    int
}
