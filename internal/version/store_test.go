package version

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() Store {
	return NewStore(zap.NewNop())
}

func TestStore_AppendActivatesLatest(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := s.Append(ctx, "art-1", "crea un blog", "<html>v1</html>")
	assert.True(t, first.Active)

	second := s.Append(ctx, "art-1", "añade un footer", "<html>v2</html>")
	assert.True(t, second.Active)

	history := s.List(ctx, "art-1")
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.False(t, history[0].Active)
	assert.True(t, history[1].Active)

	// Listings carry no content.
	assert.Empty(t, history[0].Content)
	assert.Equal(t, "crea un blog", history[0].Prompt)
}

func TestStore_GetReactivates(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := s.Append(ctx, "art-1", "v1", "<html>v1</html>")
	s.Append(ctx, "art-1", "v2", "<html>v2</html>")

	restored, err := s.Get(ctx, "art-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", restored.Content)
	assert.True(t, restored.Active)

	// Exactly one active snapshot, history order unchanged.
	history := s.List(ctx, "art-1")
	require.Len(t, history, 2)
	assert.True(t, history[0].Active)
	assert.False(t, history[1].Active)

	// Appending after time travel activates the new snapshot.
	third := s.Append(ctx, "art-1", "v3", "<html>v3</html>")
	history = s.List(ctx, "art-1")
	require.Len(t, history, 3)
	active := 0
	for _, snap := range history {
		if snap.Active {
			active++
			assert.Equal(t, third.ID, snap.ID)
		}
	}
	assert.Equal(t, 1, active)
}

func TestStore_AppendReturnsDetachedCopy(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := s.Append(ctx, "art-1", "v1", "<html>v1</html>")
	s.Append(ctx, "art-1", "v2", "<html>v2</html>")

	// The earlier return value keeps its state; only the stored history
	// is deactivated by the later append.
	assert.True(t, first.Active)
	history := s.List(ctx, "art-1")
	require.Len(t, history, 2)
	assert.False(t, history[0].Active)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	const (
		artifacts = 4
		appends   = 25
	)

	var wg sync.WaitGroup
	for i := 0; i < artifacts; i++ {
		artifactID := fmt.Sprintf("art-%d", i)
		for j := 0; j < appends; j++ {
			wg.Add(1)
			go func(prompt string) {
				defer wg.Done()
				s.Append(ctx, artifactID, prompt, "<html>"+prompt+"</html>")
			}(fmt.Sprintf("edit %d", j))
		}
	}
	wg.Wait()

	// Exactly one active snapshot per artifact, full history retained.
	for i := 0; i < artifacts; i++ {
		history := s.List(ctx, fmt.Sprintf("art-%d", i))
		require.Len(t, history, appends)
		active := 0
		for _, snap := range history {
			if snap.Active {
				active++
			}
		}
		assert.Equal(t, 1, active)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)

	s.Append(ctx, "art-1", "v1", "<html>v1</html>")
	_, err = s.Get(ctx, "art-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListUnknownArtifact(t *testing.T) {
	s := newTestStore()
	assert.Empty(t, s.List(context.Background(), "missing"))
}

func TestStore_ResolveArtifactID(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.Append(ctx, "art-1", "v1", "<html>known</html>")

	t.Run("supplied id with history wins", func(t *testing.T) {
		assert.Equal(t, "art-1", s.ResolveArtifactID(ctx, "<html>other</html>", "art-1"))
	})

	t.Run("unknown supplied id falls through", func(t *testing.T) {
		id := s.ResolveArtifactID(ctx, "", "never-seen")
		assert.NotEqual(t, "never-seen", id)
		assert.NotEmpty(t, id)
	})

	t.Run("empty content mints new artifact", func(t *testing.T) {
		a := s.ResolveArtifactID(ctx, "", "")
		b := s.ResolveArtifactID(ctx, "   ", "")
		assert.NotEqual(t, a, b)
	})

	t.Run("placeholder content mints new artifact", func(t *testing.T) {
		id := s.ResolveArtifactID(ctx, PlaceholderContent, "")
		assert.NotEqual(t, "art-1", id)
	})

	t.Run("latest snapshot content matches", func(t *testing.T) {
		assert.Equal(t, "art-1", s.ResolveArtifactID(ctx, "<html>known</html>", ""))
	})

	t.Run("stale content mints new artifact", func(t *testing.T) {
		s.Append(ctx, "art-1", "v2", "<html>newer</html>")
		// The old content no longer matches the latest snapshot.
		id := s.ResolveArtifactID(ctx, "<html>known</html>", "")
		assert.NotEqual(t, "art-1", id)
	})
}
