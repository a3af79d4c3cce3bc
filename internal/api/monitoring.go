// internal/api/monitoring.go
package api

import (
	"context"
	"time"

	"signalscout/internal/common/config"
	"signalscout/internal/common/httpx"
	"signalscout/internal/discovery"
)

// MonitoringClient posts approved selections to the monitoring-source-creation
// endpoint. It implements discovery.MonitoringService.
type MonitoringClient struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

func NewMonitoringClient(cfg config.ServiceConfig) *MonitoringClient {
	return &MonitoringClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpx.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

// NewMonitoringClientWithTimeout is a convenience constructor for tests.
func NewMonitoringClientWithTimeout(baseURL string, timeout time.Duration) *MonitoringClient {
	return &MonitoringClient{
		baseURL: baseURL,
		client:  httpx.NewClient(timeout),
	}
}

// DiscoverIntelligent creates persistent monitoring sources for the selection
// and returns the service's reported counts verbatim.
func (c *MonitoringClient) DiscoverIntelligent(ctx context.Context, req *discovery.ActivationRequest) (*discovery.ActivationResult, error) {
	var result discovery.ActivationResult
	url := c.baseURL + "/api/signals/discover-intelligent"
	if err := c.client.PostJSON(ctx, url, c.headers(), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *MonitoringClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
