package version

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/pagesmith/internal/version"

// Store provides snapshot history operations.
type Store interface {
	// Append records a new snapshot and makes it the artifact's active one.
	Append(ctx context.Context, artifactID, prompt, content string) *Snapshot

	// List returns an artifact's history without content, oldest first.
	List(ctx context.Context, artifactID string) []*Snapshot

	// Get returns a snapshot with content and reactivates it.
	Get(ctx context.Context, artifactID, snapshotID string) (*Snapshot, error)

	// Has reports whether the artifact exists.
	Has(artifactID string) bool

	// ResolveArtifactID picks the artifact a request belongs to.
	ResolveArtifactID(ctx context.Context, currentContent, suppliedID string) string
}

// artifactHistory is one artifact's snapshots, oldest first. Its mutex
// serializes mutations per artifact; different artifacts never contend.
type artifactHistory struct {
	mu        sync.Mutex
	snapshots []*Snapshot
}

// store implements Store with in-memory history.
type store struct {
	logger *zap.Logger

	tracer         trace.Tracer
	meter          metric.Meter
	appendCounter  metric.Int64Counter
	restoreCounter metric.Int64Counter

	// mu guards the artifacts map only; snapshot mutations happen under
	// the per-artifact mutex.
	mu        sync.RWMutex
	artifacts map[string]*artifactHistory
}

// NewStore creates an empty snapshot store.
func NewStore(logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &store{
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		meter:     otel.Meter(instrumentationName),
		artifacts: make(map[string]*artifactHistory),
	}
	s.initMetrics()
	return s
}

func (s *store) initMetrics() {
	var err error

	s.appendCounter, err = s.meter.Int64Counter(
		"pagesmith.version.appends_total",
		metric.WithDescription("Total number of snapshots appended"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		s.logger.Warn("failed to create append counter", zap.Error(err))
	}

	s.restoreCounter, err = s.meter.Int64Counter(
		"pagesmith.version.restores_total",
		metric.WithDescription("Total number of snapshot restores"),
		metric.WithUnit("{restore}"),
	)
	if err != nil {
		s.logger.Warn("failed to create restore counter", zap.Error(err))
	}
}

// lookup returns the artifact's history, or nil when unknown.
func (s *store) lookup(artifactID string) *artifactHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifacts[artifactID]
}

// history returns the artifact's history, creating it when unknown.
func (s *store) history(artifactID string) *artifactHistory {
	if h := s.lookup(artifactID); h != nil {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.artifacts[artifactID]
	if h == nil {
		h = &artifactHistory{}
		s.artifacts[artifactID] = h
	}
	return h
}

// Append records a new snapshot and makes it the artifact's active one. The
// returned snapshot is a detached copy; later appends do not mutate it.
func (s *store) Append(ctx context.Context, artifactID, prompt, content string) *Snapshot {
	ctx, span := s.tracer.Start(ctx, "version.append")
	defer span.End()
	span.SetAttributes(attribute.String("artifact_id", artifactID))

	snap := &Snapshot{
		ID:         uuid.New().String(),
		ArtifactID: artifactID,
		Timestamp:  time.Now(),
		Prompt:     prompt,
		Content:    content,
		Active:     true,
	}

	h := s.history(artifactID)
	h.mu.Lock()
	for _, prev := range h.snapshots {
		prev.Active = false
	}
	h.snapshots = append(h.snapshots, snap)
	h.mu.Unlock()

	if s.appendCounter != nil {
		s.appendCounter.Add(ctx, 1)
	}

	s.logger.Info("appended snapshot",
		zap.String("snapshot_id", snap.ID),
		zap.String("artifact_id", artifactID),
		zap.Int("content_length", len(content)),
	)

	span.SetAttributes(attribute.String("snapshot_id", snap.ID))
	copied := *snap
	return &copied
}

// List returns an artifact's history without content, oldest first. Unknown
// artifacts yield an empty list.
func (s *store) List(ctx context.Context, artifactID string) []*Snapshot {
	_, span := s.tracer.Start(ctx, "version.list")
	defer span.End()
	span.SetAttributes(attribute.String("artifact_id", artifactID))

	h := s.lookup(artifactID)
	if h == nil {
		return []*Snapshot{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Snapshot, 0, len(h.snapshots))
	for _, snap := range h.snapshots {
		out = append(out, snap.Info())
	}
	return out
}

// Get returns a snapshot with content and reactivates it, deactivating the
// rest of the artifact's history. History order is untouched.
func (s *store) Get(ctx context.Context, artifactID, snapshotID string) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "version.get")
	defer span.End()
	span.SetAttributes(
		attribute.String("artifact_id", artifactID),
		attribute.String("snapshot_id", snapshotID),
	)

	h := s.lookup(artifactID)
	if h == nil {
		return nil, ErrNotFound
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var found *Snapshot
	for _, snap := range h.snapshots {
		if snap.ID == snapshotID {
			found = snap
			break
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}

	for _, snap := range h.snapshots {
		snap.Active = snap.ID == snapshotID
	}

	if s.restoreCounter != nil {
		s.restoreCounter.Add(ctx, 1)
	}

	s.logger.Info("restored snapshot",
		zap.String("snapshot_id", snapshotID),
		zap.String("artifact_id", artifactID),
	)

	copied := *found
	return &copied, nil
}

// Has reports whether the artifact has any history.
func (s *store) Has(artifactID string) bool {
	return s.lookup(artifactID) != nil
}

// ResolveArtifactID picks the artifact a request belongs to. A supplied ID
// with history wins. Empty or placeholder content mints a new artifact.
// Otherwise the content is matched against the latest snapshot of every
// artifact, and a miss mints a new artifact.
func (s *store) ResolveArtifactID(ctx context.Context, currentContent, suppliedID string) string {
	_, span := s.tracer.Start(ctx, "version.resolve_artifact")
	defer span.End()

	if suppliedID != "" && s.lookup(suppliedID) != nil {
		span.SetAttributes(attribute.String("resolution", "supplied"))
		return suppliedID
	}

	if strings.TrimSpace(currentContent) == "" || currentContent == PlaceholderContent {
		span.SetAttributes(attribute.String("resolution", "new"))
		return uuid.New().String()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for artifactID, h := range s.artifacts {
		h.mu.Lock()
		n := len(h.snapshots)
		match := n > 0 && h.snapshots[n-1].Content == currentContent
		h.mu.Unlock()
		if match {
			span.SetAttributes(attribute.String("resolution", "content_match"))
			return artifactID
		}
	}

	span.SetAttributes(attribute.String("resolution", "new"))
	return uuid.New().String()
}
