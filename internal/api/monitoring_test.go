// internal/api/monitoring_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/discovery"
)

func activationFixture() *discovery.ActivationRequest {
	return &discovery.ActivationRequest{
		PersonaID:          "p1",
		Platforms:          []string{"reddit"},
		Sources:            map[string][]string{"reddit": {"golang", "devops"}},
		MarketingContext:   discovery.MarketingContext("API security"),
		Options:            discovery.DefaultRequestOptions(),
		TimeFilter:         "week",
		MaxItemsPerSource:  50,
		RelevanceThreshold: 0.6,
	}
}

func TestDiscoverIntelligent_RequestShape(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/signals/discover-intelligent", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"signals_found": 7, "sources_created": 2,
		})
	}))
	defer server.Close()

	client := NewMonitoringClientWithTimeout(server.URL, 5*time.Second)
	result, err := client.DiscoverIntelligent(context.Background(), activationFixture())

	require.NoError(t, err)
	assert.Equal(t, 7, result.SignalsFound)
	assert.Equal(t, 2, result.SourcesCreated)

	assert.Equal(t, []interface{}{"reddit"}, captured["platforms"])
	sources, ok := captured["sources"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"golang", "devops"}, sources["reddit"])
	assert.Equal(t, "week", captured["time_filter"])
	assert.Equal(t, float64(50), captured["max_items_per_source"])
}

func TestDiscoverIntelligent_Non2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "monitoring queue full", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewMonitoringClientWithTimeout(server.URL, 5*time.Second)
	_, err := client.DiscoverIntelligent(context.Background(), activationFixture())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
