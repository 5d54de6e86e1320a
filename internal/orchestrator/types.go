package orchestrator

import (
	"errors"

	"github.com/fyrsmithlabs/pagesmith/internal/credential"
	"github.com/fyrsmithlabs/pagesmith/internal/prompt"
)

var (
	// ErrMissingPrompt is returned when a request carries no prompt text.
	ErrMissingPrompt = errors.New("missing required field: prompt")

	// ErrTemplateNotFound is returned for an unknown template ID.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingContent is returned when an injection request has no document.
	ErrMissingContent = errors.New("missing required field: content")
)

// Request is a generation request.
type Request struct {
	// Prompt is the natural-language request. Required.
	Prompt string `json:"prompt"`

	// CurrentContent is the document being edited, if any.
	CurrentContent string `json:"currentContent"`

	// ArtifactID ties the request to an existing artifact, when known.
	ArtifactID string `json:"artifactId"`

	// TemplateID applies a catalog template directly, skipping generation.
	TemplateID string `json:"templateId"`

	// Target is the DOM element selected for editing, if any.
	Target *prompt.SelectedTarget `json:"selectedComponent"`
}

// Metadata carries timing and size information about a generation.
type Metadata struct {
	// DurationMS is the total pipeline time in milliseconds.
	DurationMS int64 `json:"duration"`

	// OriginalLength is the raw output size before cleaning.
	OriginalLength int `json:"originalLength"`

	// CleanedLength is the final document size.
	CleanedLength int `json:"cleanedLength"`

	// Retries counts backend attempts beyond the first.
	Retries int `json:"retries,omitempty"`
}

// Response is the outcome of a generation or template application.
type Response struct {
	Content    string `json:"content"`
	Success    bool   `json:"success"`
	ArtifactID string `json:"artifactId"`
	SnapshotID string `json:"snapshotId"`

	// IsTemplate marks responses served from the catalog without generation.
	IsTemplate   bool   `json:"isTemplate,omitempty"`
	TemplateName string `json:"templateName,omitempty"`

	// DetectedCredentials lists services the document needs keys for.
	DetectedCredentials []credential.Requirement `json:"detectedCredentials"`

	Metadata Metadata `json:"metadata"`
}

// InjectRequest asks for credential injection into a document.
type InjectRequest struct {
	Content string            `json:"content"`
	Keys    map[string]string `json:"keys"`
}

// InjectResponse carries the patched document.
type InjectResponse struct {
	Content string `json:"content"`

	// Remaining lists services still detected after injection.
	Remaining []credential.Requirement `json:"remaining"`
}
