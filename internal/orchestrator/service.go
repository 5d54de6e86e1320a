package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/pagesmith/internal/credential"
	"github.com/fyrsmithlabs/pagesmith/internal/events"
	"github.com/fyrsmithlabs/pagesmith/internal/generation"
	"github.com/fyrsmithlabs/pagesmith/internal/postprocess"
	"github.com/fyrsmithlabs/pagesmith/internal/prompt"
	"github.com/fyrsmithlabs/pagesmith/internal/template"
	"github.com/fyrsmithlabs/pagesmith/internal/version"
)

const instrumentationName = "github.com/fyrsmithlabs/pagesmith/internal/orchestrator"

// Service coordinates the generation pipeline.
type Service interface {
	// Generate turns a request into a complete HTML document, recording a
	// snapshot of the result.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// ApplyTemplate serves a catalog template directly, recording a snapshot
	// under a fresh artifact.
	ApplyTemplate(ctx context.Context, templateID string) (*Response, error)

	// InjectCredentials patches supplied API keys into a document.
	InjectCredentials(ctx context.Context, req *InjectRequest) (*InjectResponse, error)
}

// Deps carries the collaborators a Service composes.
type Deps struct {
	Catalog     *template.Catalog
	Credentials *credential.Registry
	Store       version.Store
	Builder     *prompt.Builder
	Client      *generation.Client

	// Cache is optional; nil disables prompt caching.
	Cache *generation.CacheManager

	// Bus is optional; nil disables progress events.
	Bus *events.Bus
}

// Config holds the per-request generation parameters.
type Config struct {
	Model       string
	Temperature float32
}

type service struct {
	cfg     Config
	catalog *template.Catalog
	creds   *credential.Registry
	store   version.Store
	builder *prompt.Builder
	client  *generation.Client
	cache   *generation.CacheManager
	bus     *events.Bus
	logger  *zap.Logger

	tracer            trace.Tracer
	meter             metric.Meter
	generationCounter metric.Int64Counter
	templateCounter   metric.Int64Counter
}

// NewService creates the pipeline service.
func NewService(cfg Config, deps Deps, logger *zap.Logger) (Service, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if deps.Credentials == nil {
		return nil, fmt.Errorf("credential registry is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("version store is required")
	}
	if deps.Builder == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}
	if deps.Client == nil {
		return nil, fmt.Errorf("generation client is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		cfg:     cfg,
		catalog: deps.Catalog,
		creds:   deps.Credentials,
		store:   deps.Store,
		builder: deps.Builder,
		client:  deps.Client,
		cache:   deps.Cache,
		bus:     deps.Bus,
		logger:  logger,
		tracer:  otel.Tracer(instrumentationName),
		meter:   otel.Meter(instrumentationName),
	}
	s.initMetrics()
	return s, nil
}

func (s *service) initMetrics() {
	var err error

	s.generationCounter, err = s.meter.Int64Counter(
		"pagesmith.orchestrator.generations_total",
		metric.WithDescription("Total number of generation pipeline runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		s.logger.Warn("failed to create generation counter", zap.Error(err))
	}

	s.templateCounter, err = s.meter.Int64Counter(
		"pagesmith.orchestrator.template_applications_total",
		metric.WithDescription("Total number of template applications"),
		metric.WithUnit("{application}"),
	)
	if err != nil {
		s.logger.Warn("failed to create template counter", zap.Error(err))
	}
}

// Generate turns a request into a complete HTML document. Catalog templates
// short-circuit generation when the request is generic enough; otherwise the
// matched template becomes the editing base and the backend personalizes it.
func (s *service) Generate(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := s.tracer.Start(ctx, "orchestrator.generate")
	defer span.End()

	start := time.Now()

	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrMissingPrompt
	}
	span.SetAttributes(attribute.Int("prompt_length", len(req.Prompt)))

	s.publish(events.LevelInfo, "Generando código...", nil)

	if req.TemplateID != "" {
		tpl := s.catalog.Get(req.TemplateID)
		if tpl == nil {
			return nil, ErrTemplateNotFound
		}
		span.SetAttributes(attribute.String("template_id", tpl.ID))
		return s.serveTemplate(ctx, tpl, req.Prompt, start), nil
	}

	currentContent := req.CurrentContent
	hasContent := strings.TrimSpace(currentContent) != "" &&
		currentContent != version.PlaceholderContent

	var templateContent string
	matched := s.catalog.FindBestMatch(req.Prompt)
	if matched != nil && !hasContent {
		if !template.HasSpecificRequirements(req.Prompt, matched.Template) {
			// Generic request: the stock template is the answer.
			span.SetAttributes(
				attribute.String("template_id", matched.Template.ID),
				attribute.Bool("template_direct", true),
			)
			s.publish(events.LevelInfo, "Template detectado: "+matched.Template.Name, map[string]any{
				"templateId": matched.Template.ID,
			})
			return s.serveTemplate(ctx, matched.Template, req.Prompt, start), nil
		}

		// Specific request: personalize the template instead.
		currentContent = matched.Template.Content
		templateContent = matched.Template.Content
		span.SetAttributes(attribute.String("template_id", matched.Template.ID))
		s.publish(events.LevelInfo, "Personalizando template: "+matched.Template.Name, map[string]any{
			"templateId": matched.Template.ID,
		})
	}

	msg, usedTemplateAsBase := s.builder.BuildMessage(req.Prompt, currentContent, req.Target, templateContent)
	span.SetAttributes(attribute.String("mode", string(msg.Mode)))

	level := generation.SelectLevel(req.Prompt, currentContent, req.Target != nil, version.PlaceholderContent)
	s.logger.Info("built user message",
		zap.String("mode", string(msg.Mode)),
		zap.String("thinking_level", string(level)),
		zap.Int("message_length", len(msg.Text)),
	)

	artifactID := s.store.ResolveArtifactID(ctx, currentContent, req.ArtifactID)

	genReq := &generation.Request{
		Model:          s.cfg.Model,
		Message:        msg.Text,
		Temperature:    s.cfg.Temperature,
		ThinkingBudget: level.Budget(),
	}

	// A large editing base rides the backend cache together with the system
	// prompt; the message then carries only the instruction. Otherwise the
	// system prompt cache alone applies, falling back to inline.
	systemPrompt := prompt.SystemPrompt()
	if s.cache != nil {
		if cached, ok := s.builder.CachedBaseMessage(msg.Mode, req.Prompt); ok {
			if name := s.cache.ContentCache(ctx, systemPrompt, currentContent, artifactID); name != "" {
				genReq.CachedContent = name
				msg = cached
				genReq.Message = msg.Text
			}
		}
		if genReq.CachedContent == "" {
			genReq.CachedContent = s.cache.SystemPromptCache(ctx, systemPrompt)
		}
	}
	if genReq.CachedContent == "" {
		genReq.SystemInstruction = systemPrompt
	}

	result, err := s.client.Generate(ctx, genReq)
	if err != nil {
		s.recordGeneration(ctx, "error")
		s.publish(events.LevelError, "Error al generar código", map[string]any{
			"error": err.Error(),
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cleaned := postprocess.Clean(result.Text)
	cleaned = postprocess.Enhance(cleaned, req.Prompt)

	if usedTemplateAsBase {
		var repaired []string
		cleaned, repaired = postprocess.RepairTemplate(cleaned)
		if len(repaired) > 0 {
			s.logger.Warn("restored template libraries dropped during personalization",
				zap.Strings("repaired", repaired))
			s.publish(events.LevelWarning, "Librerías del template restauradas", map[string]any{
				"repaired": repaired,
			})
		}
	}

	detected := s.creds.DetectRequired(cleaned)

	snap := s.store.Append(ctx, artifactID, req.Prompt, cleaned)

	s.recordGeneration(ctx, "ok")
	s.publish(events.LevelSuccess, "Código generado correctamente", map[string]any{
		"artifactId": artifactID,
		"snapshotId": snap.ID,
	})

	span.SetAttributes(
		attribute.String("artifact_id", artifactID),
		attribute.Int("retries", result.Retries),
	)

	return &Response{
		Content:             cleaned,
		Success:             true,
		ArtifactID:          artifactID,
		SnapshotID:          snap.ID,
		DetectedCredentials: detected,
		Metadata: Metadata{
			DurationMS:     time.Since(start).Milliseconds(),
			OriginalLength: len(result.Text),
			CleanedLength:  len(cleaned),
			Retries:        result.Retries,
		},
	}, nil
}

// ApplyTemplate serves a catalog template without touching the backend.
func (s *service) ApplyTemplate(ctx context.Context, templateID string) (*Response, error) {
	ctx, span := s.tracer.Start(ctx, "orchestrator.apply_template")
	defer span.End()
	span.SetAttributes(attribute.String("template_id", templateID))

	tpl := s.catalog.Get(templateID)
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return s.serveTemplate(ctx, tpl, "Template: "+tpl.Name, time.Now()), nil
}

// serveTemplate records the template under a fresh artifact and builds the
// response. Duration stays near zero; no backend call happens.
func (s *service) serveTemplate(ctx context.Context, tpl *template.Template, promptText string, start time.Time) *Response {
	detected := s.creds.DetectRequired(tpl.Content)

	artifactID := s.store.ResolveArtifactID(ctx, "", "")
	snap := s.store.Append(ctx, artifactID, promptText, tpl.Content)

	if s.templateCounter != nil {
		s.templateCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("template_id", tpl.ID)))
	}

	s.logger.Info("applied template",
		zap.String("template_id", tpl.ID),
		zap.String("artifact_id", artifactID),
	)
	s.publish(events.LevelSuccess, "Template aplicado: "+tpl.Name, map[string]any{
		"templateId": tpl.ID,
		"artifactId": artifactID,
	})

	return &Response{
		Content:             tpl.Content,
		Success:             true,
		ArtifactID:          artifactID,
		SnapshotID:          snap.ID,
		IsTemplate:          true,
		TemplateName:        tpl.Name,
		DetectedCredentials: detected,
		Metadata: Metadata{
			DurationMS:     time.Since(start).Milliseconds(),
			OriginalLength: len(tpl.Content),
			CleanedLength:  len(tpl.Content),
		},
	}
}

// InjectCredentials patches the supplied keys into the document and reports
// what is still missing afterwards.
func (s *service) InjectCredentials(ctx context.Context, req *InjectRequest) (*InjectResponse, error) {
	_, span := s.tracer.Start(ctx, "orchestrator.inject_credentials")
	defer span.End()

	if req.Content == "" {
		return nil, ErrMissingContent
	}
	span.SetAttributes(attribute.Int("key_count", len(req.Keys)))

	out := s.creds.InjectAll(req.Content, req.Keys)
	remaining := s.creds.DetectRequired(out)

	return &InjectResponse{Content: out, Remaining: remaining}, nil
}

func (s *service) recordGeneration(ctx context.Context, status string) {
	if s.generationCounter != nil {
		s.generationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("status", status)))
	}
}

func (s *service) publish(level events.Level, message string, data map[string]any) {
	if s.bus != nil {
		s.bus.Publish(level, message, data)
	}
}
