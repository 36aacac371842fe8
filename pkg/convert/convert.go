package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/mattsolo1/grove-labels/pkg/models"
)

// DefaultLinkPattern matches reader links of the form
// https://host/...#/<version>/<start>/<end>.
const DefaultLinkPattern = `(?P<url>https?://[^\s#]+#/(?P<version>[0-9a-fA-F]+)/(?P<start>[0-9a-fA-F]+)/(?P<end>[0-9a-fA-F]+))`

// Message is one exported chat message.
type Message struct {
	Date   string `json:"date"` // ISO 8601
	Sender string `json:"sender"`
	Link   string `json:"link"` // permalink to the message itself
	Msg    string `json:"msg"`
}

// Link is the reference extracted from a message body.
type Link struct {
	URL            string
	Version        string
	SelectionStart string
	SelectionEnd   string
}

// Converter turns messages into notes, one note per distinct link.
type Converter struct {
	pattern *regexp.Regexp
	labels  []string
}

// New creates a Converter. pattern must contain a named group "url"; the
// groups "version", "start" and "end" are optional. Empty means
// DefaultLinkPattern. Every produced note carries labels.
func New(pattern string, labels []string) (*Converter, error) {
	if pattern == "" {
		pattern = DefaultLinkPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile link pattern: %w", err)
	}
	if re.SubexpIndex("url") < 0 {
		return nil, fmt.Errorf("link pattern %q has no (?P<url>...) group", pattern)
	}
	if labels == nil {
		labels = []string{}
	}
	return &Converter{pattern: re, labels: labels}, nil
}

// FindLink returns the first link in content, or nil.
func (c *Converter) FindLink(content string) *Link {
	m := c.pattern.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	group := func(name string) string {
		if i := c.pattern.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}
	return &Link{
		URL:            group("url"),
		Version:        group("version"),
		SelectionStart: group("start"),
		SelectionEnd:   group("end"),
	}
}

// Convert builds an envelope from messages. Messages without a link are
// skipped. Messages sharing a link are merged into the first note for it:
// the date moves to the latest message, the sender is appended to the
// author list and the newer content is placed on top.
func (c *Converter) Convert(messages []Message) (*models.Envelope, error) {
	byURL := make(map[string]*models.StoredNote)
	var order []*models.StoredNote

	for i, msg := range messages {
		link := c.FindLink(msg.Msg)
		if link == nil {
			continue
		}

		date, err := time.Parse(time.RFC3339Nano, msg.Date)
		if err != nil {
			return nil, fmt.Errorf("message %d: parse date %q: %w", i, msg.Date, err)
		}
		content := fmt.Sprintf("%s\n\n---\n%s", msg.Link, msg.Msg)

		if prev, ok := byURL[link.URL]; ok {
			prev.Date = date.UnixMilli()
			prev.Author += ", " + msg.Sender
			prev.Content = content + "\n---\n" + prev.Content
			continue
		}

		labels := make([]string, len(c.labels))
		copy(labels, c.labels)
		note := &models.StoredNote{
			NoteVersion:    models.EnvelopeVersion,
			Content:        content,
			Date:           date.UnixMilli(),
			Author:         msg.Sender,
			URL:            link.URL,
			Version:        link.Version,
			SelectionStart: link.SelectionStart,
			SelectionEnd:   link.SelectionEnd,
			Labels:         labels,
		}
		byURL[link.URL] = note
		order = append(order, note)
	}

	if order == nil {
		order = []*models.StoredNote{}
	}
	return &models.Envelope{
		Version: models.EnvelopeVersion,
		Notes:   order,
	}, nil
}

// ReadMessages reads a JSON array of messages.
func ReadMessages(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse messages %s: %w", path, err)
	}
	return messages, nil
}
