package generation

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Request is a single generation call.
type Request struct {
	// Model is the backend model identifier.
	Model string

	// Message is the user-role message text.
	Message string

	// SystemInstruction is sent inline unless CachedContent covers it.
	SystemInstruction string

	// CachedContent names a backend cache entry to reuse, if any.
	CachedContent string

	// Temperature is passed through unmodified.
	Temperature float32

	// ThinkingBudget bounds backend reasoning tokens; zero disables it.
	ThinkingBudget int32
}

// Backend performs one generation attempt.
type Backend interface {
	// GenerateContent returns the generated text for a request.
	GenerateContent(ctx context.Context, req *Request) (string, error)

	// CreateCache registers reusable content with the backend and returns
	// the cache name.
	CreateCache(ctx context.Context, cfg *CacheRequest) (string, error)
}

// CacheRequest describes content to register with the backend cache.
type CacheRequest struct {
	Model       string
	DisplayName string

	// SystemInstruction caches a system prompt; Content caches a user-role
	// document. An editing-base cache sets both.
	SystemInstruction string
	Content           string

	TTL time.Duration
}

// geminiBackend implements Backend on the Gemini API.
type geminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend dials the Gemini API.
func NewGeminiBackend(ctx context.Context, apiKey string) (Backend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generator API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiBackend{client: client}, nil
}

func (b *geminiBackend) GenerateContent(ctx context.Context, req *Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.CachedContent != "" {
		cfg.CachedContent = req.CachedContent
	}
	if req.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(req.ThinkingBudget),
		}
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Message, genai.RoleUser)}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (b *geminiBackend) CreateCache(ctx context.Context, cfg *CacheRequest) (string, error) {
	create := &genai.CreateCachedContentConfig{
		DisplayName: cfg.DisplayName,
		TTL:         cfg.TTL,
	}
	if cfg.SystemInstruction != "" {
		create.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}
	if cfg.Content != "" {
		create.Contents = []*genai.Content{genai.NewContentFromText(cfg.Content, genai.RoleUser)}
	}

	cache, err := b.client.Caches.Create(ctx, cfg.Model, create)
	if err != nil {
		return "", err
	}
	return cache.Name, nil
}
