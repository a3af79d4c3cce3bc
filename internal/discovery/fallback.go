// internal/discovery/fallback.go
package discovery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"signalscout/internal/common/logger"
)

// Tunable heuristics for the text parser. The upstream analysis text has no
// formal grammar; these constants define our best-effort reading of it.
const (
	maxFallbackCommunities = 7
	maxReasoningLength     = 150
)

var (
	// A community candidate: "r/" prefix plus 3-21 word characters.
	communityPattern = regexp.MustCompile(`(?i)\br/([A-Za-z][A-Za-z0-9_]{2,20})\b`)
	// A bare candidate at the head of a list item.
	listItemPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*"?([A-Za-z][A-Za-z0-9_]{2,20})\b`)
	// Lines carrying one of these cues become the candidate's reasoning.
	reasoningCues = []string{"because", "relevant", "discusses"}

	leadingNonLetters = regexp.MustCompile(`^[^A-Za-z]+`)
)

// fallbackTier is one rung of the ladder: a pure builder that either yields
// recommendations or fails through to the next tier.
type fallbackTier struct {
	name   string
	status ResultStatus
	build  func(platform Platform, analysisText string) ([]SourceRecommendation, error)
}

// Ladder supplies recommendations when the strategy request failed or returned
// nothing usable. Tiers are applied in order with first-success semantics; the
// ladder itself never fails.
type Ladder struct {
	tiers []fallbackTier
	log   logger.Logger
}

func NewLadder(log logger.Logger) *Ladder {
	return &Ladder{
		log: log,
		tiers: []fallbackTier{
			{name: "text_heuristic", status: StatusFallback, build: parseAnalysisText},
			{name: "platform_defaults", status: StatusFallback, build: platformDefaults},
			{name: "minimal", status: StatusMinimalFallback, build: minimalFallback},
		},
	}
}

// Recommend walks the tiers and returns the first non-empty result with the
// tier's status tag. If every tier fails (which the minimal tier prevents by
// construction) the platform degrades to an empty list rather than an error.
func (l *Ladder) Recommend(platform Platform, analysisText string) ([]SourceRecommendation, ResultStatus) {
	for _, tier := range l.tiers {
		recs, err := runTier(tier, platform, analysisText)
		if err != nil || len(recs) == 0 {
			if err != nil {
				l.log.Debug("fallback tier failed", map[string]interface{}{
					"platform": platform.ID,
					"tier":     tier.name,
					"error":    err.Error(),
				})
			}
			continue
		}
		l.log.Info("fallback recommendations built", map[string]interface{}{
			"platform": platform.ID,
			"tier":     tier.name,
			"count":    len(recs),
		})
		return recs, tier.status
	}

	l.log.Error("all fallback tiers failed", map[string]interface{}{
		"platform": platform.ID,
	})
	return []SourceRecommendation{}, StatusMinimalFallback
}

// runTier converts a tier panic into a failure so the ladder keeps walking.
func runTier(tier fallbackTier, platform Platform, analysisText string) (recs []SourceRecommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			err = fmt.Errorf("tier %s panicked: %v", tier.name, r)
		}
	}()
	return tier.build(platform, analysisText)
}

// ==========================
// Tier 1: text heuristics
// ==========================

// parseAnalysisText scans freeform analysis text line by line for community
// candidates, attaching reasoning and priority cues from subsequent lines.
func parseAnalysisText(platform Platform, analysisText string) ([]SourceRecommendation, error) {
	if strings.TrimSpace(analysisText) == "" {
		return nil, errors.New("no analysis text to parse")
	}

	type candidate struct {
		name      string
		reasoning string
		priority  Priority
	}

	var candidates []candidate
	var current *candidate
	seen := make(map[string]bool)

	for _, line := range strings.Split(analysisText, "\n") {
		if name := matchCommunity(line); name != "" && !seen[strings.ToLower(name)] {
			if current != nil {
				candidates = append(candidates, *current)
			}
			seen[strings.ToLower(name)] = true
			current = &candidate{name: name, priority: PriorityMedium}
		}

		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		if current.reasoning == "" && containsAny(lower, reasoningCues) {
			current.reasoning = truncateReasoning(line)
		}
		if strings.Contains(lower, "high priority") || strings.Contains(lower, "most important") {
			current.priority = PriorityHigh
		} else if strings.Contains(lower, "low priority") {
			current.priority = PriorityLow
		}
	}
	if current != nil {
		candidates = append(candidates, *current)
	}

	if len(candidates) == 0 {
		return nil, errors.New("no community candidates in analysis text")
	}
	if len(candidates) > maxFallbackCommunities {
		candidates = candidates[:maxFallbackCommunities]
	}

	recs := make([]SourceRecommendation, 0, len(candidates))
	for _, c := range candidates {
		reasoning := c.reasoning
		if reasoning == "" {
			reasoning = fmt.Sprintf("Community focused on %s-related discussions", c.name)
		}
		recs = append(recs, SourceRecommendation{
			Name:            c.name,
			Reasoning:       reasoning,
			Priority:        c.priority,
			RelevanceScore:  0.7,
			EngagementScore: 0.6,
			ActivityLevel:   defaultActivityLevel,
			Subscribers:     defaultSubscribers,
		})
	}
	return recs, nil
}

// matchCommunity extracts a community-name candidate from one line. A literal
// "reddit" is never a candidate; it names the platform, not a community.
func matchCommunity(line string) string {
	var name string
	if m := communityPattern.FindStringSubmatch(line); m != nil {
		name = m[1]
	} else if m := listItemPattern.FindStringSubmatch(line); m != nil {
		name = m[1]
	}
	if strings.EqualFold(name, "reddit") {
		return ""
	}
	return name
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

// truncateReasoning strips leading non-letters and caps the text.
func truncateReasoning(line string) string {
	cleaned := leadingNonLetters.ReplaceAllString(strings.TrimSpace(line), "")
	runes := []rune(cleaned)
	if len(runes) > maxReasoningLength {
		return string(runes[:maxReasoningLength])
	}
	return cleaned
}

// ==========================
// Tier 2: static defaults
// ==========================

var staticDefaults = map[string][]string{
	"reddit":     {"programming", "webdev"},
	"hackernews": {"startups", "programming"},
	"twitter":    {"buildinpublic", "devcommunity"},
	"linkedin":   {"Technology Professionals", "Software Development"},
}

func platformDefaults(platform Platform, _ string) ([]SourceRecommendation, error) {
	names, ok := staticDefaults[platform.ID]
	if !ok {
		names = staticDefaults["reddit"]
	}

	recs := make([]SourceRecommendation, 0, len(names))
	for _, name := range names {
		recs = append(recs, SourceRecommendation{
			Name:            name,
			Reasoning:       fmt.Sprintf("General %s community; full strategy analysis was unavailable", platform.DisplayName),
			Priority:        PriorityLow,
			RelevanceScore:  0.5,
			EngagementScore: 0.4,
			ActivityLevel:   defaultActivityLevel,
			Subscribers:     defaultSubscribers,
		})
	}
	return recs, nil
}

// ==========================
// Tier 3: minimal fallback
// ==========================

func minimalFallback(_ Platform, _ string) ([]SourceRecommendation, error) {
	return []SourceRecommendation{
		{
			Name:            "technology",
			Reasoning:       "Default community; discovery analysis was unavailable",
			Priority:        PriorityLow,
			RelevanceScore:  0.4,
			EngagementScore: 0.3,
			ActivityLevel:   defaultActivityLevel,
			Subscribers:     defaultSubscribers,
		},
	}, nil
}
