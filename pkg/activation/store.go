package activation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-labels/pkg/kv"
	"github.com/mattsolo1/grove-labels/pkg/labels"
)

// StorageKey is the key activation entries are kept under.
const StorageKey = "labels-v2"

// Store persists label activation entries in a kv.Store. It never fails the
// caller: unreadable state loads as empty and write failures are logged.
type Store struct {
	kv     kv.Store
	key    string
	logger *logrus.Entry
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store on top of backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:  backend,
		key: StorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = logrus.NewEntry(discard)
	}
	s.logger = s.logger.WithField("sub-component", "activation-store")
	return s
}

// Load returns the persisted entries. A missing key, unreadable backend or
// malformed payload yields an empty list; individual entries failing
// Validate are dropped.
func (s *Store) Load() []labels.Entry {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.WithError(err).Warn("Error reading labels")
		return []labels.Entry{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []labels.Entry{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WithError(err).Warn("Error reading labels")
		return []labels.Entry{}
	}

	entries := make([]labels.Entry, 0, len(items))
	for i, item := range items {
		entry, err := Validate(item)
		if err != nil {
			s.logger.WithField("index", i).WithError(err).Debug("Dropping stored label entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Save writes entries. An empty list is not written, so whatever is stored
// stays. Failures are logged and swallowed; the in-memory state stays
// authoritative for the session.
func (s *Store) Save(entries []labels.Entry) {
	if len(entries) == 0 {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.WithError(err).Error("Unable to save labels state")
		return
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		s.logger.WithError(err).Error("Unable to save labels state")
	}
}

// Validation errors returned by Validate.
var (
	ErrNotObject       = errors.New("entry is not an object")
	ErrMissingLabel    = errors.New("entry has no string label")
	ErrMissingIsActive = errors.New("entry has no boolean isActive")
)

// Validate checks the minimal shape of one stored entry: an object with a
// string "label" and a boolean "isActive". Extra fields are ignored.
func Validate(raw json.RawMessage) (labels.Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return labels.Entry{}, ErrNotObject
	}

	var entry labels.Entry
	if err := decodeField(fields, "label", &entry.Label); err != nil {
		return labels.Entry{}, fmt.Errorf("%w: %v", ErrMissingLabel, err)
	}
	if err := decodeField(fields, "isActive", &entry.IsActive); err != nil {
		return labels.Entry{}, fmt.Errorf("%w: %v", ErrMissingIsActive, err)
	}
	return entry, nil
}

// decodeField strictly decodes fields[name] into dst; JSON null is rejected.
func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	value, ok := fields[name]
	if !ok {
		return fmt.Errorf("field %q missing", name)
	}
	if strings.TrimSpace(string(value)) == "null" {
		return fmt.Errorf("field %q is null", name)
	}
	return json.Unmarshal(value, dst)
}
