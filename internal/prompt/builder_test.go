package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testPlaceholder = "<!-- Di algo para empezar -->"

func TestSystemPrompt(t *testing.T) {
	sp := SystemPrompt()

	// All sections present, in order.
	sections := []string{
		"<role>", "<constraints>", "<charts_guidelines>", "<mapbox_guidelines>",
		"<gemini_guidelines>", "<lightbox_gallery_guidelines>", "<editing_mode>",
		"<component_editing_mode>", "<output_format>",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(sp, section)
		assert.Greater(t, idx, last, "section %s out of order", section)
		last = idx
	}

	assert.Contains(t, sp, "chart.js@4.4.0")
	assert.Contains(t, sp, "YOUR_MAPBOX_TOKEN")
	assert.Contains(t, sp, "YOUR_GEMINI_API_KEY")
}

func TestBuildMessage_NewDocument(t *testing.T) {
	b := NewBuilder(testPlaceholder)

	for _, current := range []string{"", "   ", testPlaceholder} {
		msg, usedTemplate := b.BuildMessage("crea un blog", current, nil, "")
		assert.Equal(t, ModeNewDocument, msg.Mode)
		assert.False(t, usedTemplate)
		assert.Contains(t, msg.Text, "crea un blog")
		assert.NotContains(t, msg.Text, "<context>")
	}
}

func TestBuildMessage_IncrementalEdit(t *testing.T) {
	b := NewBuilder(testPlaceholder)

	msg, usedTemplate := b.BuildMessage("añade un footer", "<html>existing</html>", nil, "")
	assert.Equal(t, ModeIncrementalEdit, msg.Mode)
	assert.False(t, usedTemplate)
	assert.Contains(t, msg.Text, "<html>existing</html>")
	assert.Contains(t, msg.Text, "añade un footer")

	// Context precedes the task.
	assert.Less(t, strings.Index(msg.Text, "<context>"), strings.Index(msg.Text, "<task>"))
}

func TestBuildMessage_TemplatePersonalize(t *testing.T) {
	b := NewBuilder(testPlaceholder)
	tpl := "<html>template body</html>"

	msg, usedTemplate := b.BuildMessage("dashboard de ventas", tpl, nil, tpl)
	assert.Equal(t, ModeTemplatePersonalize, msg.Mode)
	assert.True(t, usedTemplate)
	assert.Contains(t, msg.Text, "Template base")
	assert.Contains(t, msg.Text, tpl)

	// Content diverged from the template: normal incremental edit.
	msg, usedTemplate = b.BuildMessage("dashboard de ventas", "<html>edited</html>", nil, tpl)
	assert.Equal(t, ModeIncrementalEdit, msg.Mode)
	assert.False(t, usedTemplate)
}

func TestBuildMessage_ComponentEditWinsOverTemplate(t *testing.T) {
	b := NewBuilder(testPlaceholder)
	tpl := "<html><button id=\"cta\">Comprar</button></html>"
	target := &SelectedTarget{
		TagName:      "button",
		Selector:     "#cta",
		FullSelector: "html > button#cta",
		HTML:         `<button id="cta">Comprar</button>`,
		TextContent:  "Comprar",
		Attributes:   map[string]string{"id": "cta"},
	}

	msg, usedTemplate := b.BuildMessage("cámbialo a verde", tpl, target, tpl)
	assert.Equal(t, ModeComponentEdit, msg.Mode)
	assert.True(t, usedTemplate)
	assert.Contains(t, msg.Text, "#cta")
	assert.Contains(t, msg.Text, "<selected_component>")
	assert.Contains(t, msg.Text, "cámbialo a verde")
}

func TestBuildMessage_ComponentEditEmptyText(t *testing.T) {
	b := NewBuilder(testPlaceholder)
	target := &SelectedTarget{
		TagName:  "img",
		Selector: "img.hero",
		HTML:     `<img class="hero" src="x.png">`,
	}

	msg, _ := b.BuildMessage("haz la imagen más grande", "<html><img class=\"hero\"></html>", target, "")
	assert.Equal(t, ModeComponentEdit, msg.Mode)
	assert.Contains(t, msg.Text, "Texto visible: N/A")
}

func TestCachedBaseMessage(t *testing.T) {
	b := NewBuilder(testPlaceholder)

	msg, ok := b.CachedBaseMessage(ModeIncrementalEdit, "añade un footer")
	assert.True(t, ok)
	assert.Equal(t, ModeIncrementalEdit, msg.Mode)
	assert.Contains(t, msg.Text, "añade un footer")
	assert.Contains(t, msg.Text, "contexto cacheado")

	msg, ok = b.CachedBaseMessage(ModeTemplatePersonalize, "hazlo de ventas")
	assert.True(t, ok)
	assert.Equal(t, ModeTemplatePersonalize, msg.Mode)
	assert.Contains(t, msg.Text, "hazlo de ventas")
	assert.Contains(t, msg.Text, "contexto cacheado")

	// Component edits embed the selection and new documents have no base.
	_, ok = b.CachedBaseMessage(ModeComponentEdit, "cambia el botón")
	assert.False(t, ok)
	_, ok = b.CachedBaseMessage(ModeNewDocument, "crea un blog")
	assert.False(t, ok)
}
