// internal/api/personas.go
package api

import (
	"context"
	"time"

	"signalscout/internal/common/config"
	stderrors "signalscout/internal/common/errors"
	"signalscout/internal/common/httpx"
	"signalscout/internal/discovery"
)

// PersonaClient reads targeting personas from the external persona service.
type PersonaClient struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

func NewPersonaClient(cfg config.ServiceConfig) *PersonaClient {
	return &PersonaClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpx.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// NewPersonaClientWithTimeout is a convenience constructor for tests.
func NewPersonaClientWithTimeout(baseURL string, timeout time.Duration) *PersonaClient {
	return &PersonaClient{
		baseURL: baseURL,
		client:  httpx.NewClient(timeout),
	}
}

// GetPersonas fetches every persona visible to the caller.
func (c *PersonaClient) GetPersonas(ctx context.Context) ([]discovery.Persona, error) {
	var personas []discovery.Persona
	url := c.baseURL + "/api/personas"
	if err := c.client.GetJSON(ctx, url, c.headers(), &personas); err != nil {
		return nil, stderrors.NewPersonaFetchFailedError(err)
	}
	return personas, nil
}

// GetPersona resolves one persona by id.
func (c *PersonaClient) GetPersona(ctx context.Context, personaID string) (*discovery.Persona, error) {
	personas, err := c.GetPersonas(ctx)
	if err != nil {
		return nil, err
	}
	for i := range personas {
		if personas[i].ID == personaID {
			return &personas[i], nil
		}
	}
	return nil, stderrors.NewPersonaNotFoundError(personaID)
}

func (c *PersonaClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
