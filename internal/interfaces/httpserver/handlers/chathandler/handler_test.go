package chathandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kawan-server/internal/config"
	"kawan-server/internal/domain/persona"
	"kawan-server/internal/domain/usage"
	"kawan-server/internal/infrastructure/inference"
)

// stubProvider is a minimal OpenAI-compatible completions endpoint that
// captures the request payload and streams back a fixed reply.
type stubProvider struct {
	mu       sync.Mutex
	requests []providerRequest
}

type providerRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func (p *stubProvider) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req providerRequest
	_ = json.Unmarshal(body, &req)

	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	chunk := `{"id":"cmpl-1","object":"chat.completion.chunk","created":1,"model":"` +
		req.Model + `","choices":[{"index":0,"delta":{"content":"Halo!"}}]}`
	_, _ = w.Write([]byte("data: " + chunk + "\n\n"))
	_, _ = w.Write([]byte("data: [DONE]\n\n"))
}

func (p *stubProvider) lastRequest(t *testing.T) providerRequest {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.requests)
	return p.requests[len(p.requests)-1]
}

// recordingStore signals each append so tests can wait for the
// fire-and-forget recording goroutine.
type recordingStore struct {
	appended chan usage.Event
}

func newRecordingStore() *recordingStore {
	return &recordingStore{appended: make(chan usage.Event, 1)}
}

func (s *recordingStore) Append(_ context.Context, e *usage.Event) error {
	s.appended <- *e
	return nil
}

func (s *recordingStore) ReadAll(_ context.Context) ([]usage.Event, error) { return nil, nil }

func (s *recordingStore) Initialize(_ context.Context) error { return nil }

func (s *recordingStore) Backend() string { return "recording" }

func (s *recordingStore) waitForEvent(t *testing.T) usage.Event {
	t.Helper()
	select {
	case e := <-s.appended:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for usage event")
		return usage.Event{}
	}
}

func newChatRouter(t *testing.T, providerURL string, store usage.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ProviderBaseURL: providerURL,
		ProviderAPIKey:  "test-key",
		FallbackModels:  []string{"test-model"},
	}
	client := inference.NewClient(cfg, zerolog.Nop())
	svc := usage.NewService(store, zerolog.Nop())
	handler := NewHandler(client, svc, zerolog.Nop())

	router := gin.New()
	router.POST("/v1/chat", handler.Chat)
	return router
}

func postChat(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/v1/chat", bytes.NewBufferString(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatRecordsPersonaTagAsSupplied(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(http.HandlerFunc(provider.handler))
	defer srv.Close()

	store := newRecordingStore()
	router := newChatRouter(t, srv.URL, store)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"halo"}],"persona":"my-custom-tag"}`)
	require.Equal(t, http.StatusOK, w.Code)

	event := store.waitForEvent(t)
	assert.Equal(t, "my-custom-tag", event.Persona, "tag must be recorded raw, not normalized")
}

func TestChatRecordsDefaultPersonaWhenAbsent(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(http.HandlerFunc(provider.handler))
	defer srv.Close()

	store := newRecordingStore()
	router := newChatRouter(t, srv.URL, store)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"halo"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	event := store.waitForEvent(t)
	assert.Equal(t, usage.DefaultPersona, event.Persona)
}

func TestChatNoSystemPromptWhenNeitherSupplied(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(http.HandlerFunc(provider.handler))
	defer srv.Close()

	store := newRecordingStore()
	router := newChatRouter(t, srv.URL, store)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"halo"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	store.waitForEvent(t)

	sent := provider.lastRequest(t)
	require.Len(t, sent.Messages, 1, "messages must pass through unmodified")
	assert.Equal(t, "user", sent.Messages[0].Role)
}

func TestChatKnownPersonaInjectsItsSystemPrompt(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(http.HandlerFunc(provider.handler))
	defer srv.Close()

	store := newRecordingStore()
	router := newChatRouter(t, srv.URL, store)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"halo"}],"persona":"ahli-koding"}`)
	require.Equal(t, http.StatusOK, w.Code)

	event := store.waitForEvent(t)
	assert.Equal(t, "ahli-koding", event.Persona)

	expected, ok := persona.Get("ahli-koding")
	require.True(t, ok)
	sent := provider.lastRequest(t)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, expected.SystemPrompt, sent.Messages[0].Content)
}

func TestChatExplicitSystemPromptWinsOverPersona(t *testing.T) {
	provider := &stubProvider{}
	srv := httptest.NewServer(http.HandlerFunc(provider.handler))
	defer srv.Close()

	store := newRecordingStore()
	router := newChatRouter(t, srv.URL, store)

	w := postChat(t, router, `{"messages":[{"role":"user","content":"halo"}],"persona":"ahli-koding","systemPrompt":"custom instructions"}`)
	require.Equal(t, http.StatusOK, w.Code)
	store.waitForEvent(t)

	sent := provider.lastRequest(t)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "custom instructions", sent.Messages[0].Content)
}
