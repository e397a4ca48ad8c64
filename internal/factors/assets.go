package factors

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// AssetScorer scores friendly asset capability: average capability proxy
// across declared defense assets, or a required-vs-available match ratio
// when candidate requirements are known
type AssetScorer struct{}

func (AssetScorer) Name() score.FactorName { return score.FactorAssets }

func (AssetScorer) Score(fctx *Context) score.FactorResult {
	assets := fctx.Situation.DefenseAssets
	if len(assets) > 0 {
		capabilities := make([]float64, len(assets))
		for i, a := range assets {
			capabilities[i] = a.Capability
		}
		mean, err := stats.Mean(capabilities)
		if err != nil {
			mean = score.FactorAssets.NeutralDefault()
		}
		return result(score.FactorAssets, mean,
			fmt.Sprintf("average capability %.2f across %d defense assets", mean, len(assets)))
	}

	required := fctx.Candidate.RequiredResources
	available := fctx.Situation.AvailableResources
	if len(required) > 0 && len(available) > 0 {
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
		return result(score.FactorAssets, ratio,
			fmt.Sprintf("%d/%d candidate requirements covered by the pool", hits, len(required)))
	}

	return result(score.FactorAssets, score.FactorAssets.NeutralDefault(),
		"no asset data; neutral default")
}
