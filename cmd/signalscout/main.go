// cmd/signalscout/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"signalscout/internal/api"
	"signalscout/internal/common/cache"
	"signalscout/internal/common/config"
	"signalscout/internal/common/logger"
	"signalscout/internal/common/observability"
	"signalscout/internal/discovery"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		personaID    = flag.String("persona", "", "persona id to target (optional)")
		platformsCSV = flag.String("platforms", "", "comma-separated platform ids (default: all registered)")
		focus        = flag.String("focus", "", "solution focus text (optional; broad analysis when empty)")
		activate     = flag.Bool("activate", false, "activate monitoring for the initial high-priority selection")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting signalscout...",
		zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics server listening", zap.String("address", cfg.Metrics.Address))
	}

	ctx := context.Background()

	// --- Registry with config overrides ---
	registry := discovery.NewRegistry()
	for id, platformCfg := range cfg.Platforms {
		if platformCfg.Status == "" {
			continue
		}
		if !registry.SetStatus(id, discovery.PlatformStatus(platformCfg.Status)) {
			zapLog.Warn("ignoring status override for unknown platform", zap.String("platform", id))
		}
	}

	// --- Optional strategy cache with retry ---
	var engineOpts []discovery.EngineOption
	if cfg.Cache.Enabled {
		var redisCache *cache.RedisCache
		err = retryWithBackoff(func() error {
			var err error
			redisCache, err = cache.NewRedis(cfg.Cache.Redis)
			if err != nil {
				return err
			}
			return redisCache.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("strategy cache disabled after retries", zap.Error(err))
		} else {
			defer redisCache.Close()
			engineOpts = append(engineOpts, discovery.WithCache(redisCache, config.GetTTL(cfg.Cache.TTL)))
			zapLog.Info("Redis strategy cache connected")
		}
	}
	engineOpts = append(engineOpts, discovery.WithObservability(obs))

	// --- Clients and engine ---
	strategyClient := api.NewStrategyClient(cfg.APIs.Strategy)
	engine := discovery.NewEngine(registry, strategyClient, log, engineOpts...)

	// --- Resolve persona ---
	var persona *discovery.Persona
	if *personaID != "" {
		personaClient := api.NewPersonaClient(cfg.APIs.Personas)
		persona, err = personaClient.GetPersona(ctx, *personaID)
		if err != nil {
			zapLog.Fatal("persona lookup failed", zap.Error(err))
		}
	}

	platforms := registry.ActivePlatforms()
	if *platformsCSV != "" {
		platforms = splitCSV(*platformsCSV)
	}

	// --- Run discovery ---
	results := engine.DiscoverAll(ctx, platforms, persona, *focus)
	selection := discovery.InitialSelection(results)

	printResults(results, selection)

	// --- Optional activation ---
	if *activate {
		activator := discovery.NewActivator(
			api.NewMonitoringClient(cfg.APIs.Monitoring),
			discovery.ActivationDefaults{
				TimeFilter:         cfg.Discovery.TimeFilter,
				MaxItemsPerSource:  cfg.Discovery.MaxItemsPerSource,
				RelevanceThreshold: cfg.Discovery.RelevanceThreshold,
			},
			log,
		)

		result, err := activator.Activate(ctx, selection, persona, *focus)
		if err != nil {
			zapLog.Fatal("activation failed", zap.Error(err))
		}
		fmt.Printf("monitoring activated: %d signals found, %d sources created\n",
			result.SignalsFound, result.SourcesCreated)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printResults(results map[string]discovery.PlatformDiscoveryResult, selection discovery.SelectionState) {
	summary := struct {
		Results   map[string]discovery.PlatformDiscoveryResult `json:"results"`
		Selection map[string][]string                          `json:"initial_selection"`
	}{
		Results:   results,
		Selection: make(map[string][]string),
	}
	for _, platform := range selection.Platforms() {
		summary.Selection[platform] = selection.Names(platform)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render results: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
