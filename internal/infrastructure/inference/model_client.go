package inference

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"

	"kawan-server/internal/config"
)

// ModelClient lists the models the provider currently serves, used by the
// scheduled availability poll.
type ModelClient struct {
	client  *resty.Client
	baseURL string
}

// ModelsResponse is the provider's GET /models payload.
type ModelsResponse struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Model is one entry of the provider's model listing.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
	Created int    `json:"created"`
}

// NewModelClient creates a new ModelClient
func NewModelClient(cfg *config.Config) *ModelClient {
	client := resty.New().
		SetTimeout(cfg.HTTPTimeout)
	if cfg.ProviderAPIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.ProviderAPIKey))
	}

	return &ModelClient{
		client:  client,
		baseURL: strings.TrimRight(cfg.ProviderBaseURL, "/"),
	}
}

// ListModels fetches the provider's model listing.
func (c *ModelClient) ListModels(ctx context.Context) ([]Model, error) {
	var respBody ModelsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&respBody).
		Get(c.baseURL + "/models")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list models request failed with status %d", resp.StatusCode())
	}
	return respBody.Data, nil
}
