package score

import (
	"math"

	"coarank/domain/coa"
	"coarank/domain/core"
)

// FactorName identifies one of the seven scoring factors
type FactorName string

const (
	FactorThreat      FactorName = "threat"
	FactorResources   FactorName = "resources"
	FactorAssets      FactorName = "assets"
	FactorEnvironment FactorName = "environment"
	FactorHistorical  FactorName = "historical"
	FactorChain       FactorName = "chain"
	FactorAlignment   FactorName = "alignment"
)

// AllFactors returns the seven factors in stable evaluation order
func AllFactors() []FactorName {
	return []FactorName{
		FactorThreat,
		FactorResources,
		FactorAssets,
		FactorEnvironment,
		FactorHistorical,
		FactorChain,
		FactorAlignment,
	}
}

// NeutralDefault returns the documented fallback score for a factor.
// Chain absence is mildly penalized rather than neutral.
func (f FactorName) NeutralDefault() float64 {
	if f == FactorChain {
		return 0.3
	}
	return 0.5
}

// FactorResult is the output of a single factor scorer
type FactorResult struct {
	Name   FactorName `json:"name"`
	Score  float64    `json:"score"` // [0,1]
	Reason string     `json:"reason"`
}

// FactorEntry is one row of a score breakdown
type FactorEntry struct {
	Name          FactorName `json:"name"`
	Score         float64    `json:"score"`
	Weight        float64    `json:"weight"`
	Weighted      float64    `json:"weighted"`
	Justification string     `json:"justification"`
}

// ScoreBreakdown is the immutable composite-scoring result for one
// (situation, candidate) pair
type ScoreBreakdown struct {
	CandidateID core.CandidateID `json:"candidate_id"`
	Factors     []FactorEntry    `json:"factors"`
	Total       float64          `json:"total"`      // [0,1]
	Confidence  float64          `json:"confidence"` // [0,1]
	Strengths   []string         `json:"strengths,omitempty"`
	Weaknesses  []string         `json:"weaknesses,omitempty"`
}

// Factor returns the entry for a named factor, or a zero entry when absent
func (b ScoreBreakdown) Factor(name FactorName) FactorEntry {
	for _, f := range b.Factors {
		if f.Name == name {
			return f
		}
	}
	return FactorEntry{Name: name}
}

// RankTag labels a ranked candidate's role in the diversified output
type RankTag string

const (
	TagBestOverall           RankTag = "best_overall"
	TagEquivalentAlternative RankTag = "equivalent_alternative"
	TagNextBestAlternative   RankTag = "next_best_alternative"
)

// RankedCandidate is one entry of the final ranked output
type RankedCandidate struct {
	Candidate coa.Candidate  `json:"candidate"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	METTC     *METTCScore    `json:"mettc,omitempty"`
	Rank      int            `json:"rank"`
	Tag       RankTag        `json:"tag"`
}

// Clamp bounds a score to [0,1]
func Clamp(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}
