// internal/discovery/activation.go
package discovery

import (
	"context"

	stderrors "signalscout/internal/common/errors"
	"signalscout/internal/common/logger"
	"signalscout/internal/common/validation"
)

// ActivationDefaults carries the monitoring request knobs from configuration.
type ActivationDefaults struct {
	TimeFilter         string
	MaxItemsPerSource  int
	RelevanceThreshold float64
}

// activationSchema is checked against every outbound activation request
// before the network call.
const activationSchema = `{
	"type": "object",
	"required": ["platforms", "sources", "marketing_context", "options", "time_filter", "max_items_per_source", "relevance_threshold"],
	"properties": {
		"persona_id": {"type": "string"},
		"platforms": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
		"sources": {
			"type": "object",
			"additionalProperties": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}}
		},
		"marketing_context": {"type": "object"},
		"options": {"type": "object"},
		"time_filter": {"type": "string", "enum": ["day", "week", "month"]},
		"max_items_per_source": {"type": "integer", "minimum": 1},
		"relevance_threshold": {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

// BuildActivationRequest shapes the monitoring-source-creation request from a
// user-approved selection. It rejects an empty selection before any I/O.
func BuildActivationRequest(selection SelectionState, persona *Persona, solutionFocus string, defaults ActivationDefaults) (*ActivationRequest, error) {
	if selection.Total() == 0 {
		return nil, stderrors.NewEmptySelectionError()
	}

	platforms := selection.Platforms()
	sources := make(map[string][]string, len(platforms))
	for _, platform := range platforms {
		sources[platform] = selection.Names(platform)
	}

	return &ActivationRequest{
		PersonaID:          personaID(persona),
		Platforms:          platforms,
		Sources:            sources,
		MarketingContext:   MarketingContext(solutionFocus),
		Options:            DefaultRequestOptions(),
		TimeFilter:         defaults.TimeFilter,
		MaxItemsPerSource:  defaults.MaxItemsPerSource,
		RelevanceThreshold: defaults.RelevanceThreshold,
	}, nil
}

// Activator posts approved selections to the monitoring service. It shapes
// and validates the request but never interprets the reported counts.
type Activator struct {
	monitoring MonitoringService
	defaults   ActivationDefaults
	logger     logger.Logger
}

func NewActivator(monitoring MonitoringService, defaults ActivationDefaults, log logger.Logger) *Activator {
	return &Activator{
		monitoring: monitoring,
		defaults:   defaults,
		logger:     log,
	}
}

// Activate validates the selection, builds the request, and hands it to the
// monitoring endpoint. The response is surfaced to the caller verbatim.
func (a *Activator) Activate(ctx context.Context, selection SelectionState, persona *Persona, solutionFocus string) (*ActivationResult, error) {
	req, err := BuildActivationRequest(selection, persona, solutionFocus, a.defaults)
	if err != nil {
		return nil, err
	}

	result, err := validation.ValidateJSON(activationSchema, req)
	if err != nil {
		return nil, stderrors.NewActivationValidationFailedError(err.Error())
	}
	if !result.Valid {
		return nil, stderrors.NewActivationValidationFailedError(result.FirstError())
	}

	a.logger.Info("activating monitoring sources", map[string]interface{}{
		"personaId": req.PersonaID,
		"platforms": req.Platforms,
		"sources":   selection.Total(),
	})

	res, err := a.monitoring.DiscoverIntelligent(ctx, req)
	if err != nil {
		return nil, stderrors.NewActivationFailedError(err)
	}

	a.logger.Info("monitoring activation completed", map[string]interface{}{
		"signalsFound":   res.SignalsFound,
		"sourcesCreated": res.SourcesCreated,
	})
	return res, nil
}
