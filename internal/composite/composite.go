package composite

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"coarank/domain/score"
	"coarank/internal/factors"
)

// strengthMargin is the distance from a factor's threshold that marks it as
// a strength or weakness
const strengthMargin = 0.1

// Scorer combines the seven factor scorers with a weight set into a full
// score breakdown. Stateless; safe for concurrent use.
type Scorer struct {
	scorers []factors.Scorer
}

// NewScorer creates a composite scorer over the default factor set
func NewScorer() *Scorer {
	return &Scorer{scorers: factors.AllScorers()}
}

// Score evaluates every factor, applies weights, and produces the immutable
// breakdown for one (situation, candidate) pair. Candidate-id tie-breaking
// is a sort concern owned by the pipeline, not a score perturbation.
func (s *Scorer) Score(fctx *factors.Context, weights score.WeightSet) score.ScoreBreakdown {
	entries := make([]score.FactorEntry, 0, len(s.scorers))
	values := make([]float64, 0, len(s.scorers))
	weightVec := make([]float64, 0, len(s.scorers))

	for _, scorer := range s.scorers {
		res := scorer.Score(fctx)
		weight := weights[scorer.Name()]
		entries = append(entries, score.FactorEntry{
			Name:          res.Name,
			Score:         res.Score,
			Weight:        weight,
			Weighted:      res.Score * weight,
			Justification: res.Reason,
		})
		values = append(values, res.Score)
		weightVec = append(weightVec, weight)
	}

	total := score.Clamp(floats.Dot(values, weightVec))
	strengths, weaknesses := classifyFactors(entries)

	return score.ScoreBreakdown{
		CandidateID: fctx.Candidate.ID,
		Factors:     entries,
		Total:       total,
		Confidence:  computeConfidence(fctx, entries),
		Strengths:   strengths,
		Weaknesses:  weaknesses,
	}
}

func classifyFactors(entries []score.FactorEntry) (strengths, weaknesses []string) {
	for _, e := range entries {
		threshold := e.Name.NeutralDefault()
		switch {
		case e.Score >= threshold+strengthMargin:
			strengths = append(strengths, fmt.Sprintf("%s: %s", e.Name, e.Justification))
		case e.Score <= threshold-strengthMargin:
			weaknesses = append(weaknesses, fmt.Sprintf("%s: %s", e.Name, e.Justification))
		}
	}
	return strengths, weaknesses
}
