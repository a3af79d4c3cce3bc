// internal/discovery/models.go
package discovery

import "context"

// Persona is a targeting profile owned by the external persona service.
type Persona struct {
	ID         string   `json:"id"`
	Role       string   `json:"role"`
	Seniority  string   `json:"seniority"`
	Industry   string   `json:"industry"`
	PainPoints []string `json:"pain_points"`
}

// Priority ranks a recommendation for initial selection.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SourceRecommendation is the canonical recommendation shape. Name and
// Reasoning are always non-empty once a raw payload passes Normalize.
type SourceRecommendation struct {
	Name            string   `json:"name"`
	Reasoning       string   `json:"reasoning"`
	Priority        Priority `json:"priority"`
	RelevanceScore  float64  `json:"relevance_score"`
	EngagementScore float64  `json:"engagement_score"`
	ActivityLevel   string   `json:"activity_level"`
	Subscribers     string   `json:"subscribers"`
}

// ResultStatus tags how a platform's recommendations were obtained.
type ResultStatus string

const (
	StatusSuccess         ResultStatus = "success"
	StatusFallback        ResultStatus = "fallback"
	StatusMinimalFallback ResultStatus = "minimal_fallback"
	StatusNotAvailable    ResultStatus = "not_available"
)

// PlatformDiscoveryResult holds one platform's outcome for a discovery run.
type PlatformDiscoveryResult struct {
	Status             ResultStatus           `json:"status"`
	Sources            []SourceRecommendation `json:"sources"`
	StrategyConfidence *float64               `json:"strategy_confidence,omitempty"`
}

// StrategyRequest describes one per-platform strategy call. SolutionFocus
// empty means broad content-driven analysis.
type StrategyRequest struct {
	PersonaID     string
	Platform      string
	SolutionFocus string
}

// StrategyPayload is the usable part of a strategy response for one platform.
// RecommendedSources elements are deliberately untyped; the upstream service
// returns strings, objects, or worse, and only Normalize inspects them.
type StrategyPayload struct {
	RecommendedSources []interface{}
	Analysis           string
	Confidence         *float64
}

// StrategyRequestor is the boundary to the remote analysis service.
type StrategyRequestor interface {
	RequestStrategy(ctx context.Context, req StrategyRequest) (*StrategyPayload, error)
}

// ActivationRequest is the monitoring-source-creation request shape.
type ActivationRequest struct {
	PersonaID          string                 `json:"persona_id,omitempty"`
	Platforms          []string               `json:"platforms"`
	Sources            map[string][]string    `json:"sources"`
	MarketingContext   map[string]interface{} `json:"marketing_context"`
	Options            RequestOptions         `json:"options"`
	TimeFilter         string                 `json:"time_filter"`
	MaxItemsPerSource  int                    `json:"max_items_per_source"`
	RelevanceThreshold float64                `json:"relevance_threshold"`
}

// RequestOptions is shared between strategy and activation requests.
type RequestOptions struct {
	FocusAreas       []string `json:"focus_areas"`
	AnalysisDepth    string   `json:"analysis_depth"`
	IncludeReasoning bool     `json:"include_reasoning"`
	ContentDriven    bool     `json:"content_driven"`
}

// ActivationResult carries the monitoring service's reported counts verbatim.
type ActivationResult struct {
	SignalsFound   int    `json:"signals_found"`
	SourcesCreated int    `json:"sources_created"`
	Message        string `json:"message,omitempty"`
}

// MonitoringService is the boundary to the monitoring-source-creation endpoint.
type MonitoringService interface {
	DiscoverIntelligent(ctx context.Context, req *ActivationRequest) (*ActivationResult, error)
}

// MarketingContext shapes the context block for strategy and activation
// requests: an explicit solution focus, or broad content analysis without one.
func MarketingContext(solutionFocus string) map[string]interface{} {
	if solutionFocus != "" {
		return map[string]interface{}{"solution_focus": solutionFocus}
	}
	return map[string]interface{}{"analysis_mode": "comprehensive_content_analysis"}
}

// DefaultRequestOptions returns the options block every discovery request carries.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		FocusAreas:       []string{"community_discovery", "source_recommendation"},
		AnalysisDepth:    "comprehensive",
		IncludeReasoning: true,
		ContentDriven:    true,
	}
}
