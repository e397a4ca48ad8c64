package factors

import (
	"fmt"

	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// ThreatScorer scores urgency from the normalized threat level, with a
// proximity bump when the threat axis points at the defended location
type ThreatScorer struct{}

func (ThreatScorer) Name() score.FactorName { return score.FactorThreat }

func (ThreatScorer) Score(fctx *Context) score.FactorResult {
	sit := fctx.Situation
	level := sit.NormalizedThreatLevel()

	if sit.ThreatLevel == 0 {
		return result(score.FactorThreat, score.FactorThreat.NeutralDefault(),
			"no threat level reported; neutral default")
	}

	reason := fmt.Sprintf("threat level %.2f", level)
	if sit.Location != "" && sit.Axis != "" && textmatch.Similarity(sit.Location, sit.Axis) >= 0.5 {
		level *= 1.1
		reason += fmt.Sprintf("; threat axis %q bears on %q", sit.Axis, sit.Location)
	}
	return result(score.FactorThreat, level, reason)
}
