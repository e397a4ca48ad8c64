package factors

import (
	"fmt"
	"strings"

	"coarank/domain/score"
	"coarank/internal/textmatch"
)

var successKeywords = []string{"success", "succeeded", "effective", "repelled", "achieved", "neutralized", "won"}

// HistoricalScorer scores the candidate's success prior: explicit historical
// rate, then declared expected rate, then a success-keyword ratio over
// retrieved snippets, then the neutral default
type HistoricalScorer struct{}

func (HistoricalScorer) Name() score.FactorName { return score.FactorHistorical }

func (HistoricalScorer) Score(fctx *Context) score.FactorResult {
	cand := fctx.Candidate

	if cand.HistoricalSuccess != nil {
		return result(score.FactorHistorical, *cand.HistoricalSuccess,
			fmt.Sprintf("recorded historical success rate %.2f", *cand.HistoricalSuccess))
	}
	if cand.ExpectedSuccessRate != nil {
		return result(score.FactorHistorical, *cand.ExpectedSuccessRate,
			fmt.Sprintf("declared expected success rate %.2f", *cand.ExpectedSuccessRate))
	}
	if len(fctx.Snippets) > 0 {
		hits := 0
		for _, snippet := range fctx.Snippets {
			norm := textmatch.Normalize(snippet)
			for _, kw := range successKeywords {
				if strings.Contains(norm, kw) {
					hits++
					break
				}
			}
		}
		ratio := float64(hits) / float64(len(fctx.Snippets))
		return result(score.FactorHistorical, ratio,
			fmt.Sprintf("success keywords in %d/%d retrieved snippets", hits, len(fctx.Snippets)))
	}
	return result(score.FactorHistorical, score.FactorHistorical.NeutralDefault(),
		"no historical data; neutral default")
}
