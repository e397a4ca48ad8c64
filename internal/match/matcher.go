package match

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"coarank/domain/coa"
)

// Score levels for the degenerate input cases
const (
	// ScoreNoRequirements favors action when resources exist but nothing
	// is required
	ScoreNoRequirements = 0.8
	// ScoreEmptyPool penalizes requirements against an empty pool
	ScoreEmptyPool = 0.2
	// ScoreNeutral applies when there is nothing to match either way
	ScoreNeutral = 0.5

	// AlternativeTrigger is the confidence below which the broader
	// alternative pool is consulted
	AlternativeTrigger = 0.5
	// AlternativeDiscount scales confidences found via alternatives
	AlternativeDiscount = 0.8

	// DefaultQuality substitutes for missing capability/morale proxies
	DefaultQuality   = 0.5
	capabilityWeight = 0.7
	moraleWeight     = 0.3
)

// TokenMatch records how one required token resolved against the pool
type TokenMatch struct {
	Token       string  `json:"token"`
	RecordID    string  `json:"record_id,omitempty"`
	Strategy    string  `json:"strategy,omitempty"`
	Alternative string  `json:"alternative,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Detail explains a resource-availability score
type Detail struct {
	TokenMatches []TokenMatch `json:"token_matches"`
	Quality      float64      `json:"quality"`
	Summary      string       `json:"summary"`
}

// Matcher scores required-resource tokens against an available pool using
// ordered fallback strategies. Stateless and safe for concurrent use.
type Matcher struct {
	strategies []Strategy
}

// NewMatcher creates a matcher with the default strategy order
func NewMatcher() *Matcher {
	return &Matcher{strategies: DefaultStrategies()}
}

// NewMatcherWithStrategies creates a matcher with a custom strategy order
func NewMatcherWithStrategies(strategies []Strategy) *Matcher {
	return &Matcher{strategies: strategies}
}

// MatchScore returns the resource-availability score in [0,1] and the
// per-token detail. Deterministic for identical inputs.
func (m *Matcher) MatchScore(required []string, available []coa.ResourceRecord) (float64, Detail) {
	switch {
	case len(required) == 0 && len(available) > 0:
		return ScoreNoRequirements, Detail{
			Quality: DefaultQuality,
			Summary: "no explicit requirements; available pool favors action",
		}
	case len(required) > 0 && len(available) == 0:
		return ScoreEmptyPool, Detail{
			Summary: fmt.Sprintf("%d requirements against an empty resource pool", len(required)),
		}
	case len(required) == 0:
		return ScoreNeutral, Detail{Quality: DefaultQuality, Summary: "no requirements and no pool"}
	}

	detail := Detail{TokenMatches: make([]TokenMatch, 0, len(required))}
	matchedRecords := make(map[string]coa.ResourceRecord)
	confidenceSum := 0.0

	for _, token := range required {
		best := m.bestMatch(token, available)

		// Substitution: below the trigger, try broader alternatives at a
		// discounted confidence
		if best.Confidence < AlternativeTrigger {
			for _, alt := range Alternatives(token) {
				altBest := m.bestMatch(alt, available)
				discounted := altBest.Confidence * AlternativeDiscount
				if discounted > best.Confidence {
					best = altBest
					best.Token = token
					best.Alternative = alt
					best.Confidence = discounted
				}
			}
		}

		confidenceSum += best.Confidence
		if best.RecordID != "" {
			for _, rec := range available {
				if rec.ID == best.RecordID {
					matchedRecords[rec.ID] = rec
					break
				}
			}
		}
		detail.TokenMatches = append(detail.TokenMatches, best)
	}

	quality := aggregateQuality(matchedRecords)
	detail.Quality = quality

	coverage := confidenceSum / float64(len(required))
	finalScore := coverage * quality
	detail.Summary = fmt.Sprintf("matched %d/%d requirements (coverage %.2f, quality %.2f)",
		countMatched(detail.TokenMatches), len(required), coverage, quality)

	return finalScore, detail
}

// bestMatch finds the highest-confidence (strategy, record) pair for a token
func (m *Matcher) bestMatch(token string, available []coa.ResourceRecord) TokenMatch {
	best := TokenMatch{Token: token}
	for _, record := range available {
		for _, strategy := range m.strategies {
			confidence := strategy.TryMatch(token, record)
			if confidence > best.Confidence {
				best.Confidence = confidence
				best.RecordID = record.ID
				best.Strategy = strategy.Name()
			}
			if best.Confidence >= ConfidenceExact {
				return best
			}
		}
	}
	return best
}

// aggregateQuality blends capability (70%) and morale (30%) proxies across
// the matched records, defaulting each missing proxy to 0.5
func aggregateQuality(matched map[string]coa.ResourceRecord) float64 {
	if len(matched) == 0 {
		return DefaultQuality
	}
	capabilities := make([]float64, 0, len(matched))
	morales := make([]float64, 0, len(matched))
	for _, rec := range matched {
		capabilities = append(capabilities, proxyOrDefault(rec.Capability))
		morales = append(morales, proxyOrDefault(rec.Morale))
	}
	capMean, err := stats.Mean(capabilities)
	if err != nil {
		capMean = DefaultQuality
	}
	moraleMean, err := stats.Mean(morales)
	if err != nil {
		moraleMean = DefaultQuality
	}
	return capabilityWeight*capMean + moraleWeight*moraleMean
}

func proxyOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultQuality
	}
	return *v
}

func countMatched(matches []TokenMatch) int {
	n := 0
	for _, m := range matches {
		if m.Confidence > 0 {
			n++
		}
	}
	return n
}
