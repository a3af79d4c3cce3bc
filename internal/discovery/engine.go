// internal/discovery/engine.go
package discovery

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"signalscout/internal/common/cache"
	"signalscout/internal/common/logger"
	"signalscout/internal/common/observability"

	"github.com/google/uuid"
)

// StrategyCache stores successful strategy payloads between runs. Optional;
// cache failures always degrade to a live request.
type StrategyCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Engine orchestrates a discovery run: one concurrent strategy request per
// active platform, normalization, and the fallback ladder on failure.
type Engine struct {
	registry *Registry
	strategy StrategyRequestor
	ladder   *Ladder
	cache    StrategyCache
	cacheTTL time.Duration
	obs      *observability.Observability
	logger   logger.Logger
}

// EngineOption configures optional engine collaborators.
type EngineOption func(*Engine)

// WithCache enables the strategy-response cache.
func WithCache(c StrategyCache, ttl time.Duration) EngineOption {
	return func(e *Engine) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

// WithObservability wires run/platform metrics.
func WithObservability(obs *observability.Observability) EngineOption {
	return func(e *Engine) {
		e.obs = obs
	}
}

func NewEngine(registry *Registry, strategy StrategyRequestor, log logger.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry,
		strategy: strategy,
		ladder:   NewLadder(log),
		logger:   log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DiscoverAll runs discovery for every requested platform concurrently and
// returns one result per platform. All requests are started before any is
// awaited, and the call returns only once every platform has settled; a
// failing platform falls through the ladder instead of aborting its siblings,
// so there is no error return.
func (e *Engine) DiscoverAll(ctx context.Context, platforms []string, persona *Persona, solutionFocus string) map[string]PlatformDiscoveryResult {
	runID := uuid.NewString()
	log := e.logger.With(map[string]interface{}{"runId": runID})
	log.Info("discovery run started", map[string]interface{}{
		"platforms":     platforms,
		"personaId":     personaID(persona),
		"solutionFocus": solutionFocus != "",
	})
	e.obs.RecordRun(ctx)

	results := make(map[string]PlatformDiscoveryResult, len(platforms))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, platform := range platforms {
		wg.Add(1)
		go func(platform string) {
			defer wg.Done()
			result := e.discoverPlatform(ctx, platform, persona, solutionFocus, log)
			e.obs.RecordPlatformResult(ctx, platform, string(result.Status))

			mu.Lock()
			results[platform] = result
			mu.Unlock()
		}(platform)
	}
	wg.Wait()

	log.Info("discovery run finished", map[string]interface{}{
		"platforms": len(results),
	})
	return results
}

// discoverPlatform settles one platform: registry short-circuit, cached or
// live strategy request, then normalization or the fallback ladder. It never
// returns an error; failures are encoded in the result status.
func (e *Engine) discoverPlatform(ctx context.Context, platformID string, persona *Persona, solutionFocus string, log logger.Logger) PlatformDiscoveryResult {
	platform, ok := e.registry.Lookup(platformID)
	if !ok || platform.Status != PlatformActive {
		log.Info("platform not available, skipping request", map[string]interface{}{
			"platform": platformID,
		})
		return PlatformDiscoveryResult{Status: StatusNotAvailable, Sources: []SourceRecommendation{}}
	}

	req := StrategyRequest{
		PersonaID:     personaID(persona),
		Platform:      platformID,
		SolutionFocus: solutionFocus,
	}

	payload, err := e.fetchStrategy(ctx, req, log)
	if err != nil {
		log.Warn("strategy request failed, using fallback", map[string]interface{}{
			"platform": platformID,
			"error":    err.Error(),
		})
		sources, status := e.ladder.Recommend(platform, "")
		return PlatformDiscoveryResult{Status: status, Sources: sources}
	}

	if len(payload.RecommendedSources) == 0 {
		log.Warn("strategy payload had no usable sources, using fallback", map[string]interface{}{
			"platform":    platformID,
			"hasAnalysis": payload.Analysis != "",
		})
		sources, status := e.ladder.Recommend(platform, payload.Analysis)
		return PlatformDiscoveryResult{Status: status, Sources: sources}
	}

	return PlatformDiscoveryResult{
		Status:             StatusSuccess,
		Sources:            Normalize(payload.RecommendedSources),
		StrategyConfidence: payload.Confidence,
	}
}

// fetchStrategy consults the cache before the live service and caches only
// successful payloads with usable sources, so a recovered upstream is picked
// up on the next uncached run.
func (e *Engine) fetchStrategy(ctx context.Context, req StrategyRequest, log logger.Logger) (*StrategyPayload, error) {
	key := cache.StrategyKey(req.PersonaID, req.Platform, req.SolutionFocus)

	if e.cache != nil {
		if cached, err := e.cache.Get(ctx, key); err == nil {
			var payload StrategyPayload
			if err := json.Unmarshal([]byte(cached), &payload); err == nil {
				log.Debug("strategy cache hit", map[string]interface{}{
					"platform": req.Platform,
				})
				return &payload, nil
			}
		} else if !cache.IsMiss(err) {
			log.Warn("strategy cache unavailable", map[string]interface{}{
				"platform": req.Platform,
				"error":    err.Error(),
			})
		}
	}

	start := time.Now()
	payload, err := e.strategy.RequestStrategy(ctx, req)
	e.obs.RecordRequestDuration(ctx, req.Platform, time.Since(start))
	if err != nil {
		return nil, err
	}

	if e.cache != nil && len(payload.RecommendedSources) > 0 {
		if data, err := json.Marshal(payload); err == nil {
			if err := e.cache.Set(ctx, key, string(data), e.cacheTTL); err != nil {
				log.Warn("strategy cache write failed", map[string]interface{}{
					"platform": req.Platform,
					"error":    err.Error(),
				})
			}
		}
	}

	return payload, nil
}

func personaID(persona *Persona) string {
	if persona == nil {
		return ""
	}
	return persona.ID
}
