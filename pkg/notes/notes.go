package notes

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-labels/pkg/frontmatter"
	"github.com/mattsolo1/grove-labels/pkg/models"
)

// ParseNote reads a markdown note. Labels come from the frontmatter; the
// origin is the frontmatter's when set, else fallback.
func ParseNote(path string, fallback models.Origin) (*models.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contentStr := string(content)

	// Notes with broken frontmatter are still loaded, just without labels.
	fm, _, err := frontmatter.Parse(contentStr)
	if err != nil {
		fm = nil
	}

	note := &models.Note{
		ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Title:   extractTitle(contentStr),
		Path:    path,
		Content: contentStr,
		Date:    info.ModTime(),
		Labels:  []string{},
		Origin:  fallback,
	}

	if fm != nil {
		if fm.ID != "" {
			note.ID = fm.ID
		}
		if fm.Title != "" {
			note.Title = fm.Title
		}
		note.Author = fm.Author
		note.Labels = fm.RawLabels()
		if o := models.ParseOrigin(fm.Origin); o != models.OriginNone {
			note.Origin = o
		}
		if fm.Modified != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Modified); err == nil {
				note.Date = t
			}
		} else if fm.Created != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
				note.Date = t
			}
		}
	}

	return note, nil
}

// extractTitle gets the title from markdown content
func extractTitle(content string) string {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return "Untitled"
}

// withOriginLabel gives a note without usable labels its origin tag, so it
// is shown or hidden with its root node. Labelled notes are left alone:
// they follow the nodes their own labels end at.
func withOriginLabel(note *models.Note) {
	tag := note.Origin.Tag()
	if tag == "" {
		return
	}
	for _, l := range note.Labels {
		if strings.Trim(l, " /") != "" {
			return
		}
	}
	note.Labels = append(note.Labels, tag)
}
