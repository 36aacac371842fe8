package sync

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-labels/pkg/frontmatter"
	"github.com/mattsolo1/grove-labels/pkg/models"
	"github.com/mattsolo1/grove-labels/pkg/notes"
)

// ProviderFactory is a function that creates a Provider instance.
type ProviderFactory func() Provider

// Syncer pulls remote items and stores them as notes envelopes, one file
// per source. Remote notes are read-only; nothing is pushed back.
type Syncer struct {
	outputDir         string
	providerFactories map[string]ProviderFactory
	logger            *logrus.Entry
}

// NewSyncer creates a Syncer writing envelopes under outputDir unless a
// source names its own output.
func NewSyncer(outputDir string, logger *logrus.Entry) *Syncer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	return &Syncer{
		outputDir:         outputDir,
		providerFactories: make(map[string]ProviderFactory),
		logger:            logger.WithField("component", "syncer"),
	}
}

// RegisterProvider registers a provider factory for a given provider name.
func (s *Syncer) RegisterProvider(name string, factory ProviderFactory) {
	s.providerFactories[name] = factory
}

// Sync fetches every source. A failing source is logged and skipped; the
// reports cover the sources that were written.
func (s *Syncer) Sync(ctx context.Context, sources []Source) ([]*Report, error) {
	var reports []*Report
	var failed []string
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		factory, ok := s.providerFactories[src.Provider]
		if !ok {
			s.logger.WithField("provider", src.Provider).Warn("Unsupported or unregistered provider")
			failed = append(failed, src.Name)
			continue
		}

		report, err := s.syncSource(ctx, factory(), src)
		if err != nil {
			s.logger.WithField("source", src.Name).WithError(err).Error("Sync failed")
			failed = append(failed, src.Name)
			continue
		}
		reports = append(reports, report)
	}

	if len(failed) > 0 {
		return reports, fmt.Errorf("%d source(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return reports, nil
}

func (s *Syncer) syncSource(ctx context.Context, provider Provider, src Source) (*Report, error) {
	items, err := provider.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("provider %s fetch failed: %w", provider.Name(), err)
	}

	env := &models.Envelope{
		Version: models.EnvelopeVersion,
		Notes:   make([]*models.StoredNote, 0, len(items)),
	}
	for _, item := range items {
		env.Notes = append(env.Notes, ItemToNote(item, src.Labels))
	}

	output := src.OutputPath(s.outputDir)
	if err := notes.WriteEnvelope(output, env); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"source": src.Name,
		"notes":  len(env.Notes),
		"output": output,
	}).Info("Saved remote notes")

	return &Report{
		Source:   src.Name,
		Provider: provider.Name(),
		Output:   output,
		Notes:    len(env.Notes),
	}, nil
}

// ItemToNote converts a remote item into a stored note. The item's labels
// come first, followed by extra.
func ItemToNote(item *Item, extra []string) *models.StoredNote {
	return &models.StoredNote{
		NoteVersion: models.EnvelopeVersion,
		Content:     fmt.Sprintf("# %s\n\n%s", item.Title, item.Body),
		Date:        item.UpdatedAt.UnixMilli(),
		Author:      item.Author,
		URL:         item.URL,
		Labels:      frontmatter.MergeLabels(item.Labels, extra),
	}
}
