package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop())
}

func TestRegistry_Requirements(t *testing.T) {
	r := newTestRegistry()

	reqs := r.Requirements()
	require.Len(t, reqs, 9)
	assert.Equal(t, "mapbox", reqs[0].ID)
	assert.Equal(t, "gemini", reqs[len(reqs)-1].ID)
	for _, req := range reqs {
		assert.NotEmpty(t, req.Name)
		assert.NotEmpty(t, req.Placeholder)
		assert.NotEmpty(t, req.DocsURL)
	}
}

func TestRegistry_DetectRequired(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name    string
		content string
		wantIDs []string
	}{
		{
			name:    "mapbox token assignment",
			content: `<script>mapboxgl.accessToken = 'YOUR_MAPBOX_TOKEN';</script>`,
			wantIDs: []string{"mapbox"},
		},
		{
			name:    "google maps script",
			content: `<script src="https://maps.googleapis.com/maps/api/js?key='YOUR_KEY'"></script>`,
			wantIDs: []string{"googleMaps"},
		},
		{
			name:    "gemini client",
			content: `<script>const genAI = new GoogleGenerativeAI('YOUR_GEMINI_API_KEY');</script>`,
			wantIDs: []string{"gemini"},
		},
		{
			name:    "plain document",
			content: `<html><body><h1>Hola</h1></body></html>`,
			wantIDs: nil,
		},
		{
			name:    "empty content",
			content: "",
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DetectRequired(tt.content)
			ids := make([]string, 0, len(got))
			for _, req := range got {
				ids = append(ids, req.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestGenericStrategy_Inject(t *testing.T) {
	r := newTestRegistry()
	stripe := r.Get("stripe")
	require.NotNil(t, stripe)

	content := `<script>const stripe = Stripe({publishableKey: 'YOUR_STRIPE_API_KEY'});</script>`
	injected := stripe.Inject(content, "pk_test_123")

	assert.NotContains(t, injected, "YOUR_STRIPE_API_KEY")
	assert.Contains(t, injected, "publishableKey: 'pk_test_123'")

	// Idempotent.
	assert.Equal(t, injected, stripe.Inject(injected, "pk_test_123"))
}

func TestMapboxStrategy_Inject(t *testing.T) {
	r := newTestRegistry()
	mapbox := r.Get("mapbox")
	require.NotNil(t, mapbox)

	t.Run("rewrites existing assignment", func(t *testing.T) {
		content := `<script>mapboxgl.accessToken = 'YOUR_MAPBOX_TOKEN';</script>`
		injected := mapbox.Inject(content, "pk.test")

		assert.Contains(t, injected, "mapboxgl.accessToken = 'pk.test';")
		assert.NotContains(t, injected, "YOUR_MAPBOX_TOKEN")
		assert.NotContains(t, injected, ";;")
		assert.Equal(t, injected, mapbox.Inject(injected, "pk.test"))
	})

	t.Run("rewrites assignment without semicolon", func(t *testing.T) {
		content := `<script>mapboxgl.accessToken = "YOUR_MAPBOX_TOKEN"</script>`
		injected := mapbox.Inject(content, "pk.test")

		assert.Contains(t, injected, "mapboxgl.accessToken = 'pk.test';")
		assert.Equal(t, injected, mapbox.Inject(injected, "pk.test"))
	})

	t.Run("inserts after mapbox script tag", func(t *testing.T) {
		content := `<head><script src="https://api.mapbox.com/mapbox-gl-js/v3.0.0/mapbox-gl.js"></script></head>`
		injected := mapbox.Inject(content, "pk.test")

		assert.Contains(t, injected, "<script>mapboxgl.accessToken = 'pk.test';</script>")
		scriptIdx := strings.Index(injected, "mapbox-gl.js")
		tokenIdx := strings.Index(injected, "accessToken")
		assert.Greater(t, tokenIdx, scriptIdx)
	})

	t.Run("falls back to head", func(t *testing.T) {
		content := `<html><head><title>Mapa</title></head><body></body></html>`
		injected := mapbox.Inject(content, "pk.test")

		assert.Contains(t, injected, "mapboxgl.accessToken = 'pk.test';")
		assert.Less(t, strings.Index(injected, "accessToken"), strings.Index(injected, "</head>"))
	})
}

func TestGeminiStrategy_Inject(t *testing.T) {
	r := newTestRegistry()
	gemini := r.Get("gemini")
	require.NotNil(t, gemini)

	t.Run("rewrites existing constructor", func(t *testing.T) {
		content := `<script>const genAI = new GoogleGenerativeAI('YOUR_GEMINI_API_KEY');</script>`
		injected := gemini.Inject(content, "AIzaTest")

		assert.Contains(t, injected, "new GoogleGenerativeAI('AIzaTest')")
		assert.NotContains(t, injected, "YOUR_GEMINI_API_KEY")
		assert.Equal(t, injected, gemini.Inject(injected, "AIzaTest"))
	})

	t.Run("synthesizes init script for bare reference", func(t *testing.T) {
		content := `<html><body><p>Un chat con gemini</p></body></html>`
		injected := gemini.Inject(content, "AIzaTest")

		assert.Contains(t, injected, "https://esm.run/@google/generative-ai")
		assert.Contains(t, injected, "new GoogleGenerativeAI('AIzaTest')")
		assert.Contains(t, injected, "window.genAI")
	})
}

func TestRegistry_InjectAll(t *testing.T) {
	r := newTestRegistry()

	content := `<script>
mapboxgl.accessToken = 'YOUR_MAPBOX_TOKEN';
const stripe = Stripe({publishableKey: 'YOUR_STRIPE_API_KEY'});
</script>`

	injected := r.InjectAll(content, map[string]string{
		"mapbox":  "pk.real",
		"stripe":  "pk_live_456",
		"unknown": "whatever",
	})

	assert.Contains(t, injected, "mapboxgl.accessToken = 'pk.real';")
	assert.Contains(t, injected, "publishableKey: 'pk_live_456'")
}

func TestRegistry_InjectAllSkipsUnusableKeys(t *testing.T) {
	r := newTestRegistry()

	content := `<script>mapboxgl.accessToken = 'YOUR_MAPBOX_TOKEN';</script>`

	// Placeholder-as-key and blank keys are ignored.
	out := r.InjectAll(content, map[string]string{
		"mapbox": "YOUR_MAPBOX_TOKEN",
	})
	assert.Equal(t, content, out)

	out = r.InjectAll(content, map[string]string{"mapbox": "   "})
	assert.Equal(t, content, out)
}
