package template

import (
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed assets/*.html
var assets embed.FS

// Required content markers. Documents missing any of these are rejected at
// load time; the matcher never sees them.
const (
	markerTailwind = "@tailwindcss/browser@4"
	markerMotion   = "motion@11.11.17"
)

var (
	requiredTags    = []string{"<html", "<body", "<main", "<header"}
	requiredScripts = []string{"<script"}
)

// catalogEntries declares the stock templates in priority order. The matcher
// resolves score ties in favor of the earliest entry.
var catalogEntries = []Template{
	{
		ID:              "dashboard",
		Name:            "Dashboard Moderno",
		Description:     "Dashboard profesional con gráficos y métricas",
		Keywords:        []string{"dashboard", "panel", "métricas", "gráficos", "admin"},
		Synonyms:        []string{"tablero", "control panel", "admin panel", "analytics", "estadísticas", "kpi", "indicadores"},
		ContextKeywords: []string{"monitoreo", "seguimiento", "análisis", "reportes"},
	},
	{
		ID:              "landing",
		Name:            "Landing Page Moderna",
		Description:     "Landing page profesional con hero section y CTA",
		Keywords:        []string{"landing", "página", "inicio", "hero", "cta"},
		Synonyms:        []string{"landing page", "página principal", "homepage", "portada", "presentación"},
		ContextKeywords: []string{"conversión", "marketing", "promoción", "ventas"},
	},
	{
		ID:              "portfolio",
		Name:            "Portfolio Personal",
		Description:     "Portfolio profesional para mostrar proyectos",
		Keywords:        []string{"portfolio", "portafolio", "proyectos", "trabajos"},
		Synonyms:        []string{"portafolio", "galería", "muestra", "trabajos", "obras"},
		ContextKeywords: []string{"diseño", "desarrollo", "creativo", "artístico"},
	},
	{
		ID:              "blog",
		Name:            "Blog Moderno",
		Description:     "Blog con diseño limpio y moderno",
		Keywords:        []string{"blog", "artículos", "posts", "publicaciones"},
		Synonyms:        []string{"bitácora", "diario", "noticias", "entradas", "posts"},
		ContextKeywords: []string{"contenido", "escritura", "noticias", "artículos"},
	},
	{
		ID:              "ecommerce",
		Name:            "E-commerce Básico",
		Description:     "Tienda online con productos y carrito",
		Keywords:        []string{"tienda", "ecommerce", "productos", "carrito", "compras"},
		Synonyms:        []string{"tienda online", "shop", "comercio", "venta", "catálogo"},
		ContextKeywords: []string{"comprar", "vender", "productos", "pedidos", "checkout"},
	},
}

// Catalog holds the validated stock templates in declaration order.
type Catalog struct {
	templates []*Template
	byID      map[string]*Template
	logger    *zap.Logger
}

// NewCatalog loads the embedded templates and validates each one. Invalid
// templates are logged and skipped; the catalog loads the rest. An error is
// returned only when no template survives validation.
func NewCatalog(logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Catalog{
		byID:   make(map[string]*Template, len(catalogEntries)),
		logger: logger,
	}

	for i := range catalogEntries {
		tpl := catalogEntries[i]

		content, err := assets.ReadFile("assets/" + tpl.ID + ".html")
		if err != nil {
			logger.Error("template asset missing, skipping",
				zap.String("template_id", tpl.ID),
				zap.Error(err))
			continue
		}
		tpl.Content = string(content)

		if errs := ValidateContent(tpl.Content); len(errs) > 0 {
			logger.Error("template failed validation, skipping",
				zap.String("template_id", tpl.ID),
				zap.Strings("errors", errs))
			continue
		}

		c.templates = append(c.templates, &tpl)
		c.byID[tpl.ID] = &tpl
	}

	if len(c.templates) == 0 {
		return nil, fmt.Errorf("no valid templates loaded")
	}

	logger.Info("template catalog loaded",
		zap.Int("count", len(c.templates)),
		zap.Int("rejected", len(catalogEntries)-len(c.templates)))

	return c, nil
}

// Get returns the template with the given ID, or nil if not present.
func (c *Catalog) Get(id string) *Template {
	if id == "" {
		return nil
	}
	return c.byID[id]
}

// List returns the metadata of every loaded template, without content, in
// declaration order.
func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.templates))
	for _, tpl := range c.templates {
		out = append(out, tpl.Info())
	}
	return out
}

// Len returns the number of loaded templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// ValidateContent checks an HTML document for the required libraries,
// structural tags, and scripts. It returns one message per failed check, or
// nil when the document passes.
func ValidateContent(content string) []string {
	var errs []string

	if strings.TrimSpace(content) == "" {
		return []string{"document is empty"}
	}
	if !strings.Contains(content, markerTailwind) {
		errs = append(errs, "missing Tailwind CSS library")
	}
	if !strings.Contains(content, markerMotion) {
		errs = append(errs, "missing Motion library")
	}
	if !containsAny(content, requiredTags) {
		errs = append(errs, "missing basic HTML structure")
	}
	if !containsAny(content, requiredScripts) {
		errs = append(errs, "missing scripts")
	}
	return errs
}

func containsAny(content string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(content, n) {
			return true
		}
	}
	return false
}
