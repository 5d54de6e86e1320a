package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode identifies the message shape chosen for a request.
type Mode string

const (
	// ModeNewDocument generates a document from scratch.
	ModeNewDocument Mode = "new_document"

	// ModeIncrementalEdit modifies existing content, preserving the rest.
	ModeIncrementalEdit Mode = "incremental_edit"

	// ModeTemplatePersonalize customizes a stock template used as base.
	ModeTemplatePersonalize Mode = "template_personalize"

	// ModeComponentEdit modifies only a selected DOM element.
	ModeComponentEdit Mode = "component_edit"
)

// SelectedTarget describes the DOM element the user picked for editing.
type SelectedTarget struct {
	TagName      string            `json:"tagName"`
	Selector     string            `json:"selector"`
	FullSelector string            `json:"fullSelector"`
	HTML         string            `json:"html"`
	TextContent  string            `json:"textContent"`
	Attributes   map[string]string `json:"attributes"`
}

// Message is the user-role message handed to the backend.
type Message struct {
	Mode Mode
	Text string
}

// Builder constructs per-request messages. It is stateless apart from its
// configuration.
type Builder struct {
	// placeholder is the empty-document marker; content equal to it is
	// treated as absent.
	placeholder string
}

// NewBuilder creates a Builder that recognizes the given empty-document
// placeholder.
func NewBuilder(placeholder string) *Builder {
	return &Builder{placeholder: placeholder}
}

// BuildMessage picks the message shape for a request. Mode priority:
// component edit, then template personalization (current content is exactly
// the matched template), then incremental edit, then new document. The
// second return reports whether the matched template is the editing base.
func (b *Builder) BuildMessage(request, currentContent string, target *SelectedTarget, templateContent string) (Message, bool) {
	usedTemplateAsBase := templateContent != "" && currentContent == templateContent

	hasContent := strings.TrimSpace(currentContent) != "" && currentContent != b.placeholder
	if !hasContent {
		return Message{Mode: ModeNewDocument, Text: buildNewDocument(request)}, false
	}

	if target != nil {
		return Message{Mode: ModeComponentEdit, Text: buildComponentEdit(request, currentContent, target)}, usedTemplateAsBase
	}
	if usedTemplateAsBase {
		return Message{Mode: ModeTemplatePersonalize, Text: buildTemplatePersonalize(request, currentContent)}, true
	}
	return Message{Mode: ModeIncrementalEdit, Text: buildIncrementalEdit(request, currentContent)}, false
}

// CachedBaseMessage rebuilds the instruction for a request whose editing
// base rides the backend prompt cache instead of the message text. Only
// incremental edits and template personalization support a cached base:
// component edits embed the selected element and new documents have no base.
// The second return reports whether the mode supports it.
func (b *Builder) CachedBaseMessage(mode Mode, request string) (Message, bool) {
	switch mode {
	case ModeIncrementalEdit:
		return Message{Mode: mode, Text: buildIncrementalEditCached(request)}, true
	case ModeTemplatePersonalize:
		return Message{Mode: mode, Text: buildTemplatePersonalizeCached(request)}, true
	default:
		return Message{}, false
	}
}

// Large context first, specific instructions at the end; the backend model
// follows trailing instructions more reliably.

func buildComponentEdit(request, currentContent string, target *SelectedTarget) string {
	attrs, _ := json.Marshal(target.Attributes)
	text := target.TextContent
	if text == "" {
		text = "N/A"
	}

	return fmt.Sprintf(`<context>
Código HTML existente (PRESERVAR todo lo que no se modifique explícitamente):
%s
</context>

<selected_component>
El usuario ha seleccionado el siguiente componente para editar:
- Tag: %s
- Selector: %s
- Selector completo: %s
- HTML actual del componente:
%s
- Texto visible: %s
- Atributos: %s
</selected_component>

<task>
Basándote ÚNICAMENTE en el código HTML proporcionado arriba, realiza la siguiente modificación:

%s

REGLAS CRÍTICAS PARA ESTA EDICIÓN DE COMPONENTE:
1. MODIFICA ÚNICAMENTE el componente seleccionado identificado por el selector: %s
2. PRESERVA todo el resto del código HTML sin cambios
3. Reemplaza SOLO el HTML del componente seleccionado con la versión modificada
4. Mantén la estructura y atributos del elemento a menos que se solicite cambiarlos
5. El código generado debe contener el componente modificado en su contexto original
6. NO modifiques otros elementos, solo el componente seleccionado

Devuelve el código HTML COMPLETO con el componente seleccionado modificado, preservando todo lo demás exactamente igual.
</task>`,
		currentContent, target.TagName, target.Selector, target.FullSelector,
		target.HTML, text, attrs, request, target.Selector)
}

func buildTemplatePersonalize(request, currentContent string) string {
	return fmt.Sprintf(`<context>
Template base proporcionado (usa como punto de partida y personaliza según la solicitud):
%s
</context>

<task>
Basándote en el template base proporcionado arriba, personaliza según los siguientes requisitos:

%s

REGLAS CRÍTICAS PARA PERSONALIZACIÓN:
1. MANTÉN la estructura general y el diseño del template base
2. PERSONALIZA el contenido, textos, datos y funcionalidad según la solicitud específica
3. ADAPTA los elementos visuales (colores, estilos) si es necesario para el contexto
4. MODIFICA los datos de ejemplo para que sean relevantes al caso de uso
5. PRESERVA la funcionalidad base pero adáptala a los requisitos específicos
6. Si se menciona un tema específico, personaliza completamente el contenido para ese tema

IMPORTANTE - CONFIGURACIÓN DEL TEMPLATE:
- El template base YA INCLUYE Tailwind CSS 4 y Motion vía CDN
- NO dupliques estos scripts, el template ya los tiene configurados
- USA las clases de Tailwind CSS 4 para estilos y Motion para animaciones cuando sea apropiado
- MANTÉN la estructura de scripts del template base

Devuelve el código HTML COMPLETO personalizado según la solicitud, manteniendo la estructura base del template y sus librerías configuradas.
</task>`, currentContent, request)
}

func buildIncrementalEdit(request, currentContent string) string {
	return fmt.Sprintf(`<context>
Código HTML existente (PRESERVAR todo lo que no se modifique explícitamente):
%s
</context>

<task>
Basándote ÚNICAMENTE en el código HTML proporcionado arriba, realiza la siguiente modificación:

%s

REGLAS CRÍTICAS PARA ESTA EDICIÓN:
1. PRESERVA todo el código existente que NO está relacionado con la modificación solicitada
2. MODIFICA SOLO las partes específicamente mencionadas en la solicitud
3. NO reescribas secciones completas si solo se necesita un cambio menor
4. MANTÉN la estructura, estilos y funcionalidad existente intacta
5. Si agregas algo nuevo, hazlo sin modificar el código existente innecesariamente
6. El objetivo es generar el MÍNIMO código necesario para la modificación

Devuelve el código HTML COMPLETO con la modificación aplicada, preservando todo lo demás.
</task>`, currentContent, request)
}

func buildIncrementalEditCached(request string) string {
	return fmt.Sprintf(`<context>
El código HTML existente está adjunto como contexto cacheado (PRESERVAR todo lo que no se modifique explícitamente).
</context>

<task>
Basándote ÚNICAMENTE en el código HTML adjunto, realiza la siguiente modificación:

%s

REGLAS CRÍTICAS PARA ESTA EDICIÓN:
1. PRESERVA todo el código existente que NO está relacionado con la modificación solicitada
2. MODIFICA SOLO las partes específicamente mencionadas en la solicitud
3. NO reescribas secciones completas si solo se necesita un cambio menor
4. MANTÉN la estructura, estilos y funcionalidad existente intacta
5. Si agregas algo nuevo, hazlo sin modificar el código existente innecesariamente
6. El objetivo es generar el MÍNIMO código necesario para la modificación

Devuelve el código HTML COMPLETO con la modificación aplicada, preservando todo lo demás.
</task>`, request)
}

func buildTemplatePersonalizeCached(request string) string {
	return fmt.Sprintf(`<context>
El template base está adjunto como contexto cacheado (usa como punto de partida y personaliza según la solicitud).
</context>

<task>
Basándote en el template base adjunto, personaliza según los siguientes requisitos:

%s

REGLAS CRÍTICAS PARA PERSONALIZACIÓN:
1. MANTÉN la estructura general y el diseño del template base
2. PERSONALIZA el contenido, textos, datos y funcionalidad según la solicitud específica
3. ADAPTA los elementos visuales (colores, estilos) si es necesario para el contexto
4. MODIFICA los datos de ejemplo para que sean relevantes al caso de uso
5. PRESERVA la funcionalidad base pero adáptala a los requisitos específicos
6. Si se menciona un tema específico, personaliza completamente el contenido para ese tema

IMPORTANTE - CONFIGURACIÓN DEL TEMPLATE:
- El template base YA INCLUYE Tailwind CSS 4 y Motion vía CDN
- NO dupliques estos scripts, el template ya los tiene configurados
- USA las clases de Tailwind CSS 4 para estilos y Motion para animaciones cuando sea apropiado
- MANTÉN la estructura de scripts del template base

Devuelve el código HTML COMPLETO personalizado según la solicitud, manteniendo la estructura base del template y sus librerías configuradas.
</task>`, request)
}

func buildNewDocument(request string) string {
	return fmt.Sprintf(`<task>
%s

Genera una aplicación web completa en un solo archivo HTML.

REGLAS CRÍTICAS DE JAVASCRIPT:
- Define TODAS las funciones ANTES de usarlas en onclick o event listeners
- Usa DOMContentLoaded para código que necesita el DOM cargado
- NUNCA uses "import" statements fuera de <script type="module">
- Para Mapbox: usa CDN con <script src="...">, NO uses import
- Si usas onclick en HTML, asegúrate de que la función esté definida en un script ANTERIOR
</task>`, request)
}
