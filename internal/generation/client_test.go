package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// mockBackend returns scripted responses in order, then repeats the last.
type mockBackend struct {
	calls     int
	script    []scriptedCall
	cacheName string
	cacheErr  error
	caches    []*CacheRequest
}

type scriptedCall struct {
	text string
	err  error
}

func (m *mockBackend) GenerateContent(ctx context.Context, req *Request) (string, error) {
	idx := m.calls
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	m.calls++
	return m.script[idx].text, m.script[idx].err
}

func (m *mockBackend) CreateCache(ctx context.Context, cfg *CacheRequest) (string, error) {
	m.caches = append(m.caches, cfg)
	return m.cacheName, m.cacheErr
}

func newTestClient(backend Backend) *Client {
	return NewClient(backend, 2, time.Millisecond, zap.NewNop())
}

func TestClient_GenerateSuccess(t *testing.T) {
	backend := &mockBackend{script: []scriptedCall{{text: "<html></html>"}}}
	client := newTestClient(backend)

	res, err := client.Generate(context.Background(), &Request{Model: "m", Message: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", res.Text)
	assert.Equal(t, 0, res.Retries)
	assert.Equal(t, 1, backend.calls)
}

func TestClient_RetriesTransientThenSucceeds(t *testing.T) {
	backend := &mockBackend{script: []scriptedCall{
		{err: genai.APIError{Code: 503, Message: "overloaded"}},
		{err: genai.APIError{Code: 504, Message: "timeout"}},
		{text: "<html>ok</html>"},
	}}
	client := newTestClient(backend)

	res, err := client.Generate(context.Background(), &Request{Model: "m", Message: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", res.Text)
	assert.Equal(t, 2, res.Retries)
	assert.Equal(t, 3, backend.calls)
}

func TestClient_ExhaustsRetries(t *testing.T) {
	backend := &mockBackend{script: []scriptedCall{
		{err: genai.APIError{Code: 503, Message: "overloaded"}},
	}}
	client := newTestClient(backend)

	_, err := client.Generate(context.Background(), &Request{Model: "m", Message: "hola"})
	require.Error(t, err)

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.Code)
	// maxRetries=2: initial attempt plus two retries.
	assert.Equal(t, 3, backend.calls)
}

func TestClient_NonTransientFailsImmediately(t *testing.T) {
	backend := &mockBackend{script: []scriptedCall{
		{err: genai.APIError{Code: 401, Message: "bad key"}},
	}}
	client := newTestClient(backend)

	_, err := client.Generate(context.Background(), &Request{Model: "m", Message: "hola"})
	require.Error(t, err)
	assert.Equal(t, 1, backend.calls)
}

func TestClient_ContextCanceledDuringBackoff(t *testing.T) {
	backend := &mockBackend{script: []scriptedCall{
		{err: genai.APIError{Code: 503, Message: "overloaded"}},
	}}
	client := NewClient(backend, 2, time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Generate(ctx, &Request{Model: "m", Message: "hola"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, backend.calls)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(genai.APIError{Code: 502}))
	assert.True(t, IsTransient(genai.APIError{Code: 503}))
	assert.True(t, IsTransient(genai.APIError{Code: 504}))
	assert.False(t, IsTransient(genai.APIError{Code: 500}))
	assert.False(t, IsTransient(genai.APIError{Code: 429}))
	assert.False(t, IsTransient(errors.New("plain error")))
}
