package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	c := newTestCatalog(t)
	dashboard := c.Get("dashboard")

	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "keyword at start gets early bonus",
			text: "dashboard",
			want: scoreKeyword + scoreEarlyBonus,
		},
		{
			name: "keyword plus synonym",
			text: "un dashboard con estadísticas",
			want: scoreKeyword + scoreEarlyBonus + scoreSynonym,
		},
		{
			name: "context keyword only",
			text: "necesito algo de monitoreo",
			want: scoreContext,
		},
		{
			name: "no match",
			text: "hola mundo",
			want: 0,
		},
		{
			name: "empty text",
			text: "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.text, dashboard))
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name   string
		text   string
		wantID string
	}{
		{
			name:   "dashboard request",
			text:   "quiero un dashboard de ventas",
			wantID: "dashboard",
		},
		{
			name:   "store request",
			text:   "crea una tienda online de ropa",
			wantID: "ecommerce",
		},
		{
			name:   "blog request",
			text:   "haz un blog sobre cocina",
			wantID: "blog",
		},
		{
			name:   "portfolio request",
			text:   "un portfolio para mostrar mis trabajos",
			wantID: "portfolio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := c.FindBestMatch(tt.text)
			require.NotNil(t, m)
			assert.Equal(t, tt.wantID, m.Template.ID)
			assert.Positive(t, m.Score)
		})
	}
}

func TestFindBestMatch_EveryTemplateFoundByOwnKeyword(t *testing.T) {
	c := newTestCatalog(t)

	for _, tpl := range c.List() {
		m := c.FindBestMatch(tpl.Keywords[0])
		require.NotNil(t, m, "keyword %q should match", tpl.Keywords[0])
		// Some keywords are shared across templates; the match just has to
		// include the keyword, not necessarily be this template.
		assert.Positive(t, m.Score)
	}
}

func TestFindBestMatch_NoMatch(t *testing.T) {
	c := newTestCatalog(t)

	assert.Nil(t, c.FindBestMatch(""))
	assert.Nil(t, c.FindBestMatch("   "))
	assert.Nil(t, c.FindBestMatch("hola mundo"))
}

func TestHasSpecificRequirements(t *testing.T) {
	c := newTestCatalog(t)
	dashboard := c.Get("dashboard")

	tests := []struct {
		name   string
		prompt string
		want   bool
	}{
		{
			name:   "generic request",
			prompt: "crea un dashboard",
			want:   false,
		},
		{
			name:   "domain pattern",
			prompt: "quiero un dashboard de ventas",
			want:   true,
		},
		{
			name:   "numbers imply specificity",
			prompt: "dashboard 2024",
			want:   true,
		},
		{
			name:   "management phrase",
			prompt: "dashboard gestión de inventario",
			want:   true,
		},
		{
			name:   "empty prompt",
			prompt: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasSpecificRequirements(tt.prompt, dashboard))
		})
	}
}
