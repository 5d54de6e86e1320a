package version

import (
	"errors"
	"time"
)

// PlaceholderContent is the empty-document marker shown before anything has
// been generated. Content equal to this is treated as no content at all.
const PlaceholderContent = "<!-- Di algo para empezar -->"

// ErrNotFound is returned when an artifact or snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one entry in an artifact's history.
type Snapshot struct {
	ID         string    `json:"id"`
	ArtifactID string    `json:"artifactId"`
	Timestamp  time.Time `json:"timestamp"`

	// Prompt is the request that produced this snapshot.
	Prompt string `json:"prompt"`

	// Content is the full HTML document. Omitted in listings.
	Content string `json:"content,omitempty"`

	// Active marks the snapshot the artifact currently points at.
	Active bool `json:"isActive"`
}

// Info returns a copy of the snapshot without its content.
func (s *Snapshot) Info() *Snapshot {
	info := *s
	info.Content = ""
	return &info
}
