// internal/discovery/normalize_test.go
package discovery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StringElements(t *testing.T) {
	recs := Normalize([]interface{}{"golang", "devops", "kubernetes", "sre"})

	assert.Len(t, recs, 4)
	assert.Equal(t, "golang", recs[0].Name)
	assert.NotEmpty(t, recs[0].Reasoning)
	assert.Equal(t, defaultRelevanceScore, recs[0].RelevanceScore)
	assert.Equal(t, defaultEngagementScore, recs[0].EngagementScore)
	assert.Equal(t, "Unknown", recs[0].Subscribers)
	assert.Equal(t, "Active", recs[0].ActivityLevel)
}

func TestNormalize_RankBasedPriority(t *testing.T) {
	recs := Normalize([]interface{}{"a1", "a2", "a3", "a4", "a5"})

	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, PriorityHigh, recs[1].Priority)
	assert.Equal(t, PriorityHigh, recs[2].Priority)
	assert.Equal(t, PriorityMedium, recs[3].Priority)
	assert.Equal(t, PriorityMedium, recs[4].Priority)
}

func TestNormalize_ExplicitPriorityWins(t *testing.T) {
	recs := Normalize([]interface{}{
		map[string]interface{}{"name": "golang", "priority": "low"},
		map[string]interface{}{"name": "devops", "priority": "HIGH"},
	})

	assert.Equal(t, PriorityLow, recs[0].Priority)
	assert.Equal(t, PriorityHigh, recs[1].Priority)
}

func TestNormalize_ObjectKeyAliases(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
		want string
	}{
		{"source key", map[string]interface{}{"source": "startups"}, "startups"},
		{"name key", map[string]interface{}{"name": "webdev"}, "webdev"},
		{"subreddit key", map[string]interface{}{"subreddit": "golang"}, "golang"},
		{"description as reasoning", map[string]interface{}{"name": "sre", "description": "ops talk"}, "sre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Normalize([]interface{}{tt.obj})
			assert.Len(t, recs, 1)
			assert.Equal(t, tt.want, recs[0].Name)
			assert.NotEmpty(t, recs[0].Reasoning)
		})
	}
}

func TestNormalize_MalformedElements(t *testing.T) {
	recs := Normalize([]interface{}{
		nil,
		42.0,
		map[string]interface{}{"priority": "high"}, // object with no usable name
		[]interface{}{"nested"},
	})

	assert.Len(t, recs, 4)
	for i, rec := range recs {
		assert.Equal(t, fmt.Sprintf("source_%d", i), rec.Name)
		assert.Equal(t, PriorityMedium, rec.Priority)
		assert.NotEmpty(t, rec.Reasoning)
	}
}

func TestNormalize_InvariantHoldsForAllShapes(t *testing.T) {
	raw := []interface{}{
		"plain",
		map[string]interface{}{"source": "full", "reasoning": "why", "relevance_score": 0.3, "engagement_score": 0.2},
		map[string]interface{}{"name": 123.0, "subscribers": 45000.0},
		map[string]interface{}{},
		nil,
		true,
	}

	recs := Normalize(raw)
	assert.Len(t, recs, len(raw))
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Name)
		assert.NotEmpty(t, rec.Reasoning)
		assert.GreaterOrEqual(t, rec.RelevanceScore, 0.0)
		assert.LessOrEqual(t, rec.RelevanceScore, 1.0)
		assert.GreaterOrEqual(t, rec.EngagementScore, 0.0)
		assert.LessOrEqual(t, rec.EngagementScore, 1.0)
		assert.NotEmpty(t, rec.Subscribers)
	}
}

func TestNormalize_ForcedStringification(t *testing.T) {
	recs := Normalize([]interface{}{
		map[string]interface{}{"name": 9000.0, "subscribers": 123456.0, "activity_level": 5.0},
	})

	assert.Equal(t, "9000", recs[0].Name)
	assert.Equal(t, "123456", recs[0].Subscribers)
	assert.Equal(t, "5", recs[0].ActivityLevel)
}

func TestNormalize_ScoreCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float in range", 0.42, 0.42},
		{"numeric string", "0.55", 0.55},
		{"above range clamps", 7.5, 1.0},
		{"below range clamps", -2.0, 0.0},
		{"garbage string falls back", "very relevant", defaultRelevanceScore},
		{"nil falls back", nil, defaultRelevanceScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Normalize([]interface{}{
				map[string]interface{}{"name": "x", "relevance_score": tt.in},
			})
			assert.InDelta(t, tt.want, recs[0].RelevanceScore, 1e-9)
		})
	}
}

func TestNormalize_PreservesInputOrder(t *testing.T) {
	recs := Normalize([]interface{}{"zeta", "alpha", "mid"})

	assert.Equal(t, "zeta", recs[0].Name)
	assert.Equal(t, "alpha", recs[1].Name)
	assert.Equal(t, "mid", recs[2].Name)
}
