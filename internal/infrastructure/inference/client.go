package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"kawan-server/internal/config"
)

// Client talks to one OpenAI-compatible completion provider and applies the
// priority-ordered model fallback list on retryable failures.
type Client struct {
	api    *openai.Client
	models []string
	log    zerolog.Logger
}

// NewClient creates a new inference client
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.ProviderAPIKey)
	apiCfg.BaseURL = cfg.ProviderBaseURL

	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		models: cfg.FallbackModels,
		log:    log,
	}
}

// OpenStream starts a streaming completion, trying each configured model in
// priority order. It returns the open stream together with the model that
// actually serves the exchange, which the caller records with the usage
// event. The caller owns closing the stream.
func (c *Client) OpenStream(ctx context.Context, messages []openai.ChatCompletionMessage) (*openai.ChatCompletionStream, string, error) {
	var lastErr error

	for i, model := range c.models {
		c.log.Debug().
			Str("model", model).
			Int("attempt", i+1).
			Int("of", len(c.models)).
			Msg("opening completion stream")

		stream, err := c.api.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
			Stream:   true,
		})
		if err == nil {
			return stream, model, nil
		}

		lastErr = err
		if isRetryable(err) && i < len(c.models)-1 {
			c.log.Warn().Err(err).Str("model", model).Msg("retryable provider error, trying next model")
			continue
		}
		return nil, model, err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no fallback models configured")
	}
	return nil, "", lastErr
}

// isRetryable matches rate-limit and overload signals worth falling back on.
func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate") ||
		strings.Contains(msg, "limit") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "overloaded")
}
