// internal/discovery/fallback_test.go
package discovery

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalscout/internal/common/logger"
)

func redditPlatform() Platform {
	return Platform{ID: "reddit", DisplayName: "Reddit", SourceLabel: "subreddit", SourcePrefix: "r/", Status: PlatformActive}
}

// ==========================
// Tier 1: text heuristics
// ==========================

func TestParseAnalysisText_CommunityWithReasoning(t *testing.T) {
	recs, err := parseAnalysisText(redditPlatform(),
		"r/startups - great for founders because it discusses early-stage growth")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "startups", recs[0].Name)
	assert.Contains(t, recs[0].Reasoning, "discusses early-stage growth")
	assert.LessOrEqual(t, len([]rune(recs[0].Reasoning)), maxReasoningLength)
}

func TestParseAnalysisText_PriorityCues(t *testing.T) {
	analysis := strings.Join([]string{
		"r/golang is the most important community for this audience",
		"r/programming is relevant for broad reach",
		"r/cscareerquestions - low priority, only tangentially related",
	}, "\n")

	recs, err := parseAnalysisText(redditPlatform(), analysis)

	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.Equal(t, PriorityLow, recs[2].Priority)
}

func TestParseAnalysisText_DefaultReasoning(t *testing.T) {
	recs, err := parseAnalysisText(redditPlatform(), "consider r/devops for this persona")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Community focused on devops-related discussions", recs[0].Reasoning)
}

func TestParseAnalysisText_ExcludesLiteralReddit(t *testing.T) {
	recs, err := parseAnalysisText(redditPlatform(),
		"r/reddit itself is not a target\nr/webdev fits because members discuss tooling")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "webdev", recs[0].Name)
}

func TestParseAnalysisText_CapsAtSevenCommunities(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, fmt.Sprintf("r/community%02d is worth a look", i))
	}

	recs, err := parseAnalysisText(redditPlatform(), strings.Join(lines, "\n"))

	require.NoError(t, err)
	assert.Len(t, recs, maxFallbackCommunities)
}

func TestParseAnalysisText_ListItemCandidates(t *testing.T) {
	analysis := strings.Join([]string{
		"Recommended communities:",
		"1. golang - relevant for backend engineers",
		"2. devops",
	}, "\n")

	recs, err := parseAnalysisText(redditPlatform(), analysis)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "golang", recs[0].Name)
	assert.Equal(t, "devops", recs[1].Name)
}

func TestParseAnalysisText_ReasoningTruncated(t *testing.T) {
	long := "r/golang fits because " + strings.Repeat("it discusses many things ", 20)

	recs, err := parseAnalysisText(redditPlatform(), long)

	require.NoError(t, err)
	assert.Equal(t, maxReasoningLength, len([]rune(recs[0].Reasoning)))
}

func TestParseAnalysisText_NoText(t *testing.T) {
	_, err := parseAnalysisText(redditPlatform(), "")
	assert.Error(t, err)

	_, err = parseAnalysisText(redditPlatform(), "   \n  ")
	assert.Error(t, err)
}

func TestParseAnalysisText_NoCandidates(t *testing.T) {
	_, err := parseAnalysisText(redditPlatform(), "The audience prefers long-form content overall.")
	assert.Error(t, err)
}

// ==========================
// Ladder semantics
// ==========================

func TestLadder_TextHeuristicFirst(t *testing.T) {
	ladder := NewLadder(logger.NewTestLogger(t))

	recs, status := ladder.Recommend(redditPlatform(),
		"r/startups - because it discusses early-stage growth")

	assert.Equal(t, StatusFallback, status)
	require.NotEmpty(t, recs)
	assert.Equal(t, "startups", recs[0].Name)
}

func TestLadder_StaticDefaultsWithoutAnalysis(t *testing.T) {
	ladder := NewLadder(logger.NewTestLogger(t))

	recs, status := ladder.Recommend(redditPlatform(), "")

	assert.Equal(t, StatusFallback, status)
	require.Len(t, recs, 2)
	assert.Equal(t, "programming", recs[0].Name)
	assert.Equal(t, "webdev", recs[1].Name)
	for _, rec := range recs {
		assert.Equal(t, PriorityLow, rec.Priority)
		assert.Contains(t, rec.Reasoning, "unavailable")
	}
}

func TestLadder_MinimalWhenDefaultsPanic(t *testing.T) {
	ladder := &Ladder{
		log: logger.NewTestLogger(t),
		tiers: []fallbackTier{
			{name: "text_heuristic", status: StatusFallback, build: parseAnalysisText},
			{name: "platform_defaults", status: StatusFallback, build: func(Platform, string) ([]SourceRecommendation, error) {
				panic("defaults table corrupted")
			}},
			{name: "minimal", status: StatusMinimalFallback, build: minimalFallback},
		},
	}

	recs, status := ladder.Recommend(redditPlatform(), "")

	assert.Equal(t, StatusMinimalFallback, status)
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityLow, recs[0].Priority)
}

func TestLadder_NeverReturnsNil(t *testing.T) {
	ladder := &Ladder{
		log: logger.NewNoOpLogger(),
		tiers: []fallbackTier{
			{name: "broken", status: StatusFallback, build: func(Platform, string) ([]SourceRecommendation, error) {
				return nil, errors.New("broken")
			}},
		},
	}

	recs, status := ladder.Recommend(redditPlatform(), "")

	assert.NotNil(t, recs)
	assert.Equal(t, StatusMinimalFallback, status)
}

func TestLadder_UnknownPlatformGetsGenericDefaults(t *testing.T) {
	ladder := NewLadder(logger.NewNoOpLogger())
	unknown := Platform{ID: "mastodon", DisplayName: "Mastodon", Status: PlatformActive}

	recs, status := ladder.Recommend(unknown, "")

	assert.Equal(t, StatusFallback, status)
	assert.NotEmpty(t, recs)
}
