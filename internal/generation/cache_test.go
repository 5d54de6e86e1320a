package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 1024, EstimateTokens(strings.Repeat("x", 4096)))
}

func TestCacheManager_SystemPromptCache(t *testing.T) {
	large := strings.Repeat("instrucción ", 400) // comfortably over 1024 tokens

	t.Run("below minimum skips backend", func(t *testing.T) {
		backend := &mockBackend{cacheName: "caches/abc"}
		m := NewCacheManager(backend, "m", 1024, time.Hour, zap.NewNop())

		assert.Empty(t, m.SystemPromptCache(context.Background(), "tiny"))
		assert.Empty(t, backend.caches)
	})

	t.Run("creates once and reuses", func(t *testing.T) {
		backend := &mockBackend{cacheName: "caches/abc"}
		m := NewCacheManager(backend, "m", 1024, time.Hour, zap.NewNop())

		name := m.SystemPromptCache(context.Background(), large)
		assert.Equal(t, "caches/abc", name)
		assert.Equal(t, "caches/abc", m.SystemPromptCache(context.Background(), large))
		require.Len(t, backend.caches, 1)
		assert.Equal(t, "system-prompt-cache", backend.caches[0].DisplayName)
		assert.Equal(t, large, backend.caches[0].SystemInstruction)
		assert.Equal(t, time.Hour, backend.caches[0].TTL)
	})

	t.Run("backend failure falls back to inline", func(t *testing.T) {
		backend := &mockBackend{cacheErr: errors.New("cache unavailable")}
		m := NewCacheManager(backend, "m", 1024, time.Hour, zap.NewNop())

		assert.Empty(t, m.SystemPromptCache(context.Background(), large))
	})
}

func TestCacheManager_ContentCache(t *testing.T) {
	backend := &mockBackend{cacheName: "caches/base"}
	m := NewCacheManager(backend, "m", 1024, time.Hour, zap.NewNop())

	large := strings.Repeat("<div>bloque</div>", 400)
	name := m.ContentCache(context.Background(), "instrucciones", large, "art-1")
	assert.Equal(t, "caches/base", name)
	require.Len(t, backend.caches, 1)
	assert.Equal(t, "content-base-art-1", backend.caches[0].DisplayName)
	assert.Equal(t, "instrucciones", backend.caches[0].SystemInstruction)
	assert.Equal(t, large, backend.caches[0].Content)

	// Unchanged base reuses the entry without another backend call.
	assert.Equal(t, "caches/base", m.ContentCache(context.Background(), "instrucciones", large, "art-1"))
	assert.Len(t, backend.caches, 1)

	// A changed base replaces the entry.
	changed := large + "<footer></footer>"
	assert.Equal(t, "caches/base", m.ContentCache(context.Background(), "instrucciones", changed, "art-1"))
	assert.Len(t, backend.caches, 2)

	assert.Empty(t, m.ContentCache(context.Background(), "instrucciones", "tiny", "art-1"))
}
