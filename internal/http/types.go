// Package http provides the HTTP API for pagesmith.
package http

import (
	"github.com/fyrsmithlabs/pagesmith/internal/credential"
	"github.com/fyrsmithlabs/pagesmith/internal/template"
	"github.com/fyrsmithlabs/pagesmith/internal/version"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// TemplateListResponse is the response body for GET /api/v1/templates.
type TemplateListResponse struct {
	Templates []template.Template `json:"templates"`
	Count     int                 `json:"count"`
}

// SnapshotListResponse is the response body for
// GET /api/v1/artifacts/:artifactID/snapshots.
type SnapshotListResponse struct {
	ArtifactID string              `json:"artifactId"`
	Snapshots  []*version.Snapshot `json:"snapshots"`
	Count      int                 `json:"count"`
}

// CredentialListResponse is the response body for GET /api/v1/credentials.
type CredentialListResponse struct {
	Credentials []credential.Requirement `json:"credentials"`
	Count       int                      `json:"count"`
}
