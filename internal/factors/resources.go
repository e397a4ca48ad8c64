package factors

import (
	"fmt"

	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// ResourceScorer scores resource availability via the hierarchical matcher,
// with a plain list-intersection fallback when no matcher is wired
type ResourceScorer struct{}

func (ResourceScorer) Name() score.FactorName { return score.FactorResources }

func (ResourceScorer) Score(fctx *Context) score.FactorResult {
	required := fctx.Candidate.RequiredResources
	if len(required) == 0 {
		required = fctx.Situation.RequiredResources
	}
	available := fctx.Situation.AvailableResources

	if fctx.Matcher != nil {
		matchScore, detail := fctx.Matcher.MatchScore(required, available)
		return result(score.FactorResources, matchScore, detail.Summary)
	}

	// Degraded path: intersection ratio over normalized names
	if len(required) == 0 {
		return result(score.FactorResources, score.FactorResources.NeutralDefault(),
			"no resource requirements declared; neutral default")
	}
	if len(available) == 0 {
		return result(score.FactorResources, 0.2,
			fmt.Sprintf("%d requirements with no available pool", len(required)))
	}
	hits := 0
	for _, token := range required {
		for _, rec := range available {
			if textmatch.Contains(rec.SearchText(), token) {
				hits++
				break
			}
		}
	}
	ratio := float64(hits) / float64(len(required))
	return result(score.FactorResources, ratio,
		fmt.Sprintf("intersection fallback: %d/%d requirements present", hits, len(required)))
}
