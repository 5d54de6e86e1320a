package credential

// Requirement describes a service whose API key a document needs.
type Requirement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	DocsURL     string `json:"docsUrl"`
}

// Strategy detects a service in document content and injects its key.
type Strategy interface {
	// ID returns the service identifier, e.g. "mapbox".
	ID() string

	// Info returns the requirement metadata surfaced to clients.
	Info() Requirement

	// Detect reports whether the document uses this service.
	Detect(content string) bool

	// Inject returns the document with the key in place. Injection is
	// idempotent: running it again with the same key is a no-op.
	Inject(content, key string) string

	// Validate reports whether the key looks usable (non-empty and not the
	// placeholder itself).
	Validate(key string) bool
}
