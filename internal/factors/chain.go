package factors

import (
	"fmt"
	"math"

	"coarank/domain/score"
)

// Chain factor composition weights
const (
	chainPathWeight       = 0.4
	chainConfidenceWeight = 0.4
	chainRelevanceWeight  = 0.2
	chainPathSaturation   = 10.0
)

// ChainScorer scores the relationship chain between situation and candidate.
// During Pass 1 (no chain resolved) it substitutes the static
// appropriateness estimate; a resolved-but-empty chain is mildly penalized
// at 0.3 rather than scored neutral.
type ChainScorer struct{}

func (ChainScorer) Name() score.FactorName { return score.FactorChain }

func (ChainScorer) Score(fctx *Context) score.FactorResult {
	if fctx.Chain == nil {
		approx := StaticAppropriateness(fctx.Situation, fctx.Candidate)
		return result(score.FactorChain, approx,
			fmt.Sprintf("static appropriateness estimate %.2f (chain not resolved)", approx))
	}

	chainResult := *fctx.Chain
	if !chainResult.Found() {
		return result(score.FactorChain, score.FactorChain.NeutralDefault(),
			"no relationship chain found; absence mildly penalized")
	}

	pathPart := math.Min(float64(chainResult.PathCount)/chainPathSaturation, 1.0)

	relevance := chainResult.Relevance
	relevanceSource := "id-overlap fallback"
	if fctx.Relevance != nil {
		if mapped, ok := fctx.Relevance.Relevance(fctx.Candidate.Type.String(), fctx.Situation.ThreatType); ok {
			relevance = mapped
			relevanceSource = "external relevance mapper"
		}
	}

	total := chainPathWeight*pathPart +
		chainConfidenceWeight*chainResult.AvgConfidence +
		chainRelevanceWeight*relevance

	return result(score.FactorChain, total,
		fmt.Sprintf("%d path(s) via %s, avg confidence %.2f, relevance %.2f (%s)",
			chainResult.PathCount, chainResult.Source, chainResult.AvgConfidence, relevance, relevanceSource))
}
