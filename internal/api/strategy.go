// internal/api/strategy.go
package api

import (
	"context"
	"fmt"
	"time"

	"signalscout/internal/common/config"
	"signalscout/internal/common/httpx"
	"signalscout/internal/discovery"
)

// StrategyClient talks to the remote analysis service's strategy endpoint.
// It implements discovery.StrategyRequestor.
type StrategyClient struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

func NewStrategyClient(cfg config.ServiceConfig) *StrategyClient {
	return &StrategyClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpx.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// NewStrategyClientWithTimeout is a convenience constructor for tests.
func NewStrategyClientWithTimeout(baseURL string, timeout time.Duration) *StrategyClient {
	return &StrategyClient{
		baseURL: baseURL,
		client:  httpx.NewClient(timeout),
	}
}

// Wire shapes for the generateStrategy contract.
type strategyRequest struct {
	PersonaID        string                   `json:"persona_id,omitempty"`
	Platforms        []string                 `json:"platforms"`
	MarketingContext map[string]interface{}   `json:"marketing_context"`
	Options          discovery.RequestOptions `json:"options"`
}

type strategyResponse struct {
	PlatformStrategies map[string]struct {
		RecommendedSources []interface{} `json:"recommended_sources"`
		Analysis           string        `json:"analysis"`
	} `json:"platform_strategies"`
	StrategyConfidence *float64 `json:"strategy_confidence"`
}

// RequestStrategy issues one per-platform strategy request and extracts that
// platform's payload. A response without the platform entry is a failure; a
// present entry without recommended sources is returned as-is so the caller
// can fall back on the analysis text.
func (c *StrategyClient) RequestStrategy(ctx context.Context, req discovery.StrategyRequest) (*discovery.StrategyPayload, error) {
	body := strategyRequest{
		PersonaID:        req.PersonaID,
		Platforms:        []string{req.Platform},
		MarketingContext: discovery.MarketingContext(req.SolutionFocus),
		Options:          discovery.DefaultRequestOptions(),
	}

	var resp strategyResponse
	url := c.baseURL + "/api/signals/generate-strategy"
	if err := c.client.PostJSON(ctx, url, c.headers(), body, &resp); err != nil {
		return nil, err
	}

	entry, ok := resp.PlatformStrategies[req.Platform]
	if !ok {
		return nil, fmt.Errorf("no strategy returned for platform %s", req.Platform)
	}

	return &discovery.StrategyPayload{
		RecommendedSources: entry.RecommendedSources,
		Analysis:           entry.Analysis,
		Confidence:         resp.StrategyConfidence,
	}, nil
}

func (c *StrategyClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
