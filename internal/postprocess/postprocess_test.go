package postprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "html fence",
			raw:  "```html\n<html></html>\n```",
			want: "<html></html>",
		},
		{
			name: "bare fence",
			raw:  "```\n<html></html>\n```\n",
			want: "<html></html>",
		},
		{
			name: "no fences",
			raw:  "  <html></html>  ",
			want: "<html></html>",
		},
		{
			name: "fence without newline",
			raw:  "```html<html></html>```",
			want: "<html></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.raw)
			assert.Equal(t, tt.want, got)
			// Idempotent.
			assert.Equal(t, got, Clean(got))
		})
	}
}

func TestNeedsCharts(t *testing.T) {
	assert.True(t, NeedsCharts("un dashboard con gráficos de barras"))
	assert.True(t, NeedsCharts("add a pie chart"))
	assert.True(t, NeedsCharts("GRÁFICA de ventas"))
	assert.False(t, NeedsCharts("crea un blog de cocina"))
	assert.False(t, NeedsCharts(""))
}

func TestInjectChartJS(t *testing.T) {
	t.Run("injects before body close", func(t *testing.T) {
		content := "<html><body><canvas></canvas></body></html>"
		out := InjectChartJS(content)

		require.Contains(t, out, ChartJSCDN)
		assert.Less(t, strings.Index(out, ChartJSCDN), strings.Index(out, "</body>"))
		// Script tag, not a bare URL.
		assert.Contains(t, out, `<script src="`+ChartJSCDN+`"></script>`)
	})

	t.Run("falls back to html close", func(t *testing.T) {
		content := "<html><canvas></canvas></html>"
		out := InjectChartJS(content)
		assert.Less(t, strings.Index(out, ChartJSCDN), strings.Index(out, "</html>"))
	})

	t.Run("appends without closing tags", func(t *testing.T) {
		out := InjectChartJS("<canvas></canvas>")
		assert.True(t, strings.HasSuffix(out, `></script>`))
	})

	t.Run("skips when already loaded", func(t *testing.T) {
		content := `<html><script src="` + ChartJSCDN + `"></script><body></body></html>`
		assert.Equal(t, content, InjectChartJS(content))
	})

	t.Run("idempotent", func(t *testing.T) {
		out := InjectChartJS("<html><body></body></html>")
		assert.Equal(t, out, InjectChartJS(out))
	})
}

func TestEnhance(t *testing.T) {
	content := "<html><body></body></html>"

	withCharts := Enhance(content, "quiero un gráfico de barras")
	assert.Contains(t, withCharts, ChartJSCDN)

	unchanged := Enhance(content, "quiero un blog")
	assert.Equal(t, content, unchanged)
}

func TestRepairTemplate(t *testing.T) {
	intact := `<html><head>
<script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"></script>
<script type="module">import { animate } from "https://cdn.jsdelivr.net/npm/motion@11.11.17/+esm";</script>
</head><body></body></html>`

	t.Run("intact document untouched", func(t *testing.T) {
		out, repaired := RepairTemplate(intact)
		assert.Equal(t, intact, out)
		assert.Empty(t, repaired)
	})

	t.Run("restores tailwind", func(t *testing.T) {
		content := strings.ReplaceAll(intact, "@tailwindcss/browser@4", "nothing")
		out, repaired := RepairTemplate(content)
		assert.Contains(t, out, "@tailwindcss/browser@4")
		assert.Equal(t, []string{"tailwind"}, repaired)
	})

	t.Run("restores motion", func(t *testing.T) {
		content := strings.ReplaceAll(intact, "motion@11.11.17", "nothing")
		out, repaired := RepairTemplate(content)
		assert.Contains(t, out, "motion@11.11.17")
		assert.Equal(t, []string{"motion"}, repaired)
	})

	t.Run("restores both and is idempotent", func(t *testing.T) {
		content := `<html><head><title>x</title></head><body></body></html>`
		out, repaired := RepairTemplate(content)
		assert.Equal(t, []string{"tailwind", "motion"}, repaired)
		assert.Contains(t, out, "@tailwindcss/browser@4")
		assert.Contains(t, out, "motion@11.11.17")

		again, repairedAgain := RepairTemplate(out)
		assert.Equal(t, out, again)
		assert.Empty(t, repairedAgain)
	})

	t.Run("headless document untouched", func(t *testing.T) {
		content := "<p>fragmento</p>"
		out, repaired := RepairTemplate(content)
		assert.Equal(t, content, out)
		assert.Equal(t, []string{"tailwind", "motion"}, repaired)
	})
}
