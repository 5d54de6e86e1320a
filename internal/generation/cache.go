package generation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EstimateTokens approximates the backend token count: one token per four
// characters, rounded up.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// CacheManager registers large payloads with the backend prompt cache.
// Everything here is best-effort: a cache failure just means the next call
// sends the full payload.
type CacheManager struct {
	backend   Backend
	model     string
	minTokens int
	ttl       time.Duration
	logger    *zap.Logger

	mu              sync.Mutex
	systemCacheName string
	contentCaches   map[string]contentCacheEntry
}

// contentCacheEntry memoizes one artifact's cached editing base. The entry
// is stale as soon as the base content changes.
type contentCacheEntry struct {
	content string
	name    string
}

// NewCacheManager creates a cache manager for the given model.
func NewCacheManager(backend Backend, model string, minTokens int, ttl time.Duration, logger *zap.Logger) *CacheManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheManager{
		backend:       backend,
		model:         model,
		minTokens:     minTokens,
		ttl:           ttl,
		logger:        logger,
		contentCaches: make(map[string]contentCacheEntry),
	}
}

// SystemPromptCache returns the cache name for the system instruction,
// creating it on first use. Returns "" when the prompt is below the minimum
// cacheable size or the backend refuses; the process-wide name is reused
// once created.
func (m *CacheManager) SystemPromptCache(ctx context.Context, systemPrompt string) string {
	tokens := EstimateTokens(systemPrompt)
	if tokens < m.minTokens {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.systemCacheName != "" {
		return m.systemCacheName
	}

	name, err := m.backend.CreateCache(ctx, &CacheRequest{
		Model:             m.model,
		DisplayName:       "system-prompt-cache",
		SystemInstruction: systemPrompt,
		TTL:               m.ttl,
	})
	if err != nil {
		m.logger.Warn("system prompt cache unavailable, sending inline", zap.Error(err))
		return ""
	}

	m.systemCacheName = name
	m.logger.Info("system prompt cached",
		zap.Int("estimated_tokens", tokens),
		zap.String("cache", name))
	return name
}

// ContentCache caches a large editing base, bundled with the system
// instruction, for repeated edits against the same artifact. The entry is
// reused while the base is unchanged and replaced when it moves on. Returns
// "" when the base is too small or the backend refuses.
func (m *CacheManager) ContentCache(ctx context.Context, systemPrompt, content, artifactID string) string {
	tokens := EstimateTokens(content)
	if tokens < m.minTokens {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.contentCaches[artifactID]; ok && entry.content == content {
		return entry.name
	}

	name, err := m.backend.CreateCache(ctx, &CacheRequest{
		Model:             m.model,
		DisplayName:       "content-base-" + artifactID,
		SystemInstruction: systemPrompt,
		Content:           content,
		TTL:               m.ttl,
	})
	if err != nil {
		m.logger.Warn("content cache unavailable, sending inline",
			zap.String("artifact_id", artifactID),
			zap.Error(err))
		return ""
	}

	m.contentCaches[artifactID] = contentCacheEntry{content: content, name: name}
	m.logger.Info("editing base cached",
		zap.String("artifact_id", artifactID),
		zap.Int("estimated_tokens", tokens),
		zap.String("cache", name))
	return name
}
