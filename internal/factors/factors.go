package factors

import (
	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/match"
	"coarank/ports"
)

// Context carries everything the seven factor scorers read. Built once per
// (situation, candidate) evaluation; scorers never mutate it.
type Context struct {
	Situation coa.Situation
	Candidate coa.Candidate

	Matcher *match.Matcher

	// Chain is the resolved graph chain. Nil during Pass 1, where the
	// chain slot is approximated by the static appropriateness estimate.
	Chain *score.ChainResult

	// Relevance optionally overrides the chain relevance fallback
	Relevance ports.RelevanceMapperPort

	// Snippets are externally retrieved text fragments about the
	// candidate, consumed by the historical-success keyword heuristic
	Snippets []string
}

// Scorer maps a context to a factor score in [0,1] with a justification.
// Implementations are pure functions of the context.
type Scorer interface {
	Name() score.FactorName
	Score(fctx *Context) score.FactorResult
}

// AllScorers returns the seven scorers in the stable factor order
func AllScorers() []Scorer {
	return []Scorer{
		ThreatScorer{},
		ResourceScorer{},
		AssetScorer{},
		EnvironmentScorer{},
		HistoricalScorer{},
		ChainScorer{},
		AlignmentScorer{},
	}
}

func result(name score.FactorName, value float64, reason string) score.FactorResult {
	return score.FactorResult{Name: name, Score: score.Clamp(value), Reason: reason}
}
