package chathandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"kawan-server/internal/domain/persona"
	"kawan-server/internal/domain/usage"
	"kawan-server/internal/infrastructure/inference"
	"kawan-server/internal/infrastructure/metrics"
	"kawan-server/internal/infrastructure/observability"
	"kawan-server/internal/interfaces/httpserver/middlewares"
)

// Message is a single chat turn from the client.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the streamed chat request payload.
type ChatRequest struct {
	Messages     []Message `json:"messages" validate:"required,min=1,dive"`
	SystemPrompt string    `json:"systemPrompt"`
	Persona      string    `json:"persona"`
}

type Handler struct {
	client   *inference.Client
	usage    *usage.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(client *inference.Client, usageService *usage.Service, log zerolog.Logger) *Handler {
	return &Handler{
		client:   client,
		usage:    usageService,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With().Str("handler", "chat").Logger(),
	}
}

// Chat streams a completion back to the client as "0:<json>\n" chunks and
// records token usage once the stream finishes.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), "kawan-server", "chat.stream")
	defer span.End()

	// The persona tag is opaque: it is recorded exactly as supplied, and
	// only the system-prompt lookup consults the catalog. An explicit
	// systemPrompt always wins; with neither, the messages go out as-is.
	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		if p, ok := persona.Get(req.Persona); ok {
			systemPrompt = p.SystemPrompt
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	start := time.Now()
	stream, model, err := h.client.OpenStream(ctx, messages)
	if err != nil {
		metrics.RecordProviderError(model, "open_stream")
		observability.RecordError(ctx, err)
		h.log.Error().Err(err).Msg("all fallback models failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model temporarily unavailable"})
		return
	}
	defer stream.Close()

	flusher, ok := middlewares.PrepareSSE(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	metrics.IncrementActiveStreams(model)
	defer metrics.DecrementActiveStreams(model)

	var completion strings.Builder
	firstToken := true

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordProviderError(model, "stream_recv")
			observability.RecordError(ctx, err)
			h.log.Warn().Err(err).Str("model", model).Msg("stream interrupted")
			break
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if firstToken {
			metrics.RecordFirstToken(model, time.Since(start).Seconds())
			firstToken = false
		}
		completion.WriteString(delta)
		if err := writeChunk(c, delta); err != nil {
			h.log.Debug().Err(err).Msg("client disconnected")
			break
		}
		flusher.Flush()
	}

	metrics.RecordLLMDuration(model, time.Since(start).Seconds())

	identity := IdentifyClient(c)
	promptText := systemPrompt
	for _, m := range req.Messages {
		promptText += m.Content
	}

	in := usage.RecordInput{
		UserID:         identity.UserID,
		UserName:       identity.UserName,
		Model:          model,
		Persona:        req.Persona,
		PromptText:     promptText,
		CompletionText: completion.String(),
	}

	// Usage recording must never delay or fail the response. The request
	// context is gone once the handler returns, so record on a fresh one.
	go func() {
		recordCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event, persisted := h.usage.Record(recordCtx, in)
		metrics.RecordUsageWrite(h.usage.Backend(), persisted)
		if event != nil {
			metrics.RecordTokens(event.Model, event.Persona, event.PromptTokens, event.CompletionTokens)
		}
	}()
}

func writeChunk(c *gin.Context, text string) error {
	encoded, err := json.Marshal(text)
	if err != nil {
		return err
	}
	_, err = c.Writer.Write([]byte("0:" + string(encoded) + "\n"))
	return err
}
