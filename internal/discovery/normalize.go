// internal/discovery/normalize.go
package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied when the upstream payload omits a field.
const (
	defaultRelevanceScore  = 0.9
	defaultEngagementScore = 0.8
	defaultActivityLevel   = "Active"
	defaultSubscribers     = "Unknown"

	genericReasoning = "Recommended community for your target audience"
)

// rankPriority assigns the documented rank-based default: the first three
// items in insertion order are high priority, the rest medium.
func rankPriority(index int) Priority {
	if index < 3 {
		return PriorityHigh
	}
	return PriorityMedium
}

// Normalize converts an arbitrary recommended_sources payload into canonical
// SourceRecommendations. The upstream service returns strings, objects with
// drifting key names, or junk; this is the single place raw shapes are
// inspected. Output order preserves input order.
func Normalize(raw []interface{}) []SourceRecommendation {
	out := make([]SourceRecommendation, 0, len(raw))
	for i, element := range raw {
		out = append(out, normalizeElement(element, i))
	}
	return out
}

func normalizeElement(element interface{}, index int) SourceRecommendation {
	switch v := element.(type) {
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return placeholder(index)
		}
		return SourceRecommendation{
			Name:            name,
			Reasoning:       genericReasoning,
			Priority:        rankPriority(index),
			RelevanceScore:  defaultRelevanceScore,
			EngagementScore: defaultEngagementScore,
			ActivityLevel:   defaultActivityLevel,
			Subscribers:     defaultSubscribers,
		}
	case map[string]interface{}:
		return normalizeObject(v, index)
	default:
		return placeholder(index)
	}
}

func normalizeObject(obj map[string]interface{}, index int) SourceRecommendation {
	name := firstString(obj, "source", "name", "subreddit")
	if name == "" {
		return placeholder(index)
	}

	reasoning := firstString(obj, "reasoning", "description")
	if reasoning == "" {
		reasoning = genericReasoning
	}

	priority := rankPriority(index)
	if p, ok := parsePriority(obj["priority"]); ok {
		priority = p
	}

	return SourceRecommendation{
		Name:            name,
		Reasoning:       reasoning,
		Priority:        priority,
		RelevanceScore:  coerceScore(obj["relevance_score"], defaultRelevanceScore),
		EngagementScore: coerceScore(obj["engagement_score"], defaultEngagementScore),
		ActivityLevel:   stringOrDefault(obj["activity_level"], defaultActivityLevel),
		Subscribers:     stringOrDefault(obj["subscribers"], defaultSubscribers),
	}
}

// placeholder covers elements with no usable name at all.
func placeholder(index int) SourceRecommendation {
	return SourceRecommendation{
		Name:            fmt.Sprintf("source_%d", index),
		Reasoning:       genericReasoning,
		Priority:        PriorityMedium,
		RelevanceScore:  defaultRelevanceScore,
		EngagementScore: defaultEngagementScore,
		ActivityLevel:   defaultActivityLevel,
		Subscribers:     defaultSubscribers,
	}
}

// firstString returns the first non-empty stringified value among keys.
func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if s := forceString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// forceString stringifies any value so downstream rendering never sees a
// non-string where the canonical type is string.
func forceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}

func stringOrDefault(v interface{}, fallback string) string {
	if s := forceString(v); s != "" {
		return s
	}
	return fallback
}

func parsePriority(v interface{}) (Priority, bool) {
	switch strings.ToLower(forceString(v)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return "", false
}

// coerceScore accepts numbers or numeric strings and clamps into [0,1].
func coerceScore(v interface{}, fallback float64) float64 {
	var score float64
	switch n := v.(type) {
	case float64:
		score = n
	case int:
		score = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fallback
		}
		score = parsed
	default:
		return fallback
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
