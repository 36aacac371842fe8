package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// ReadEnvelope reads a notes envelope file.
func ReadEnvelope(path string) (*models.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse notes envelope %s: %w", path, err)
	}
	if env.Version != models.EnvelopeVersion {
		return nil, fmt.Errorf("notes envelope %s: unsupported version %d", path, env.Version)
	}
	return &env, nil
}

// WriteEnvelope writes env to path, creating parent directories.
func WriteEnvelope(path string, env *models.Envelope) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal notes envelope: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write notes envelope: %w", err)
	}
	return nil
}
