package factors

import (
	"fmt"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// Alignment composition and suitability adjustments
const (
	alignThreatWeight  = 0.6
	alignMissionWeight = 0.4

	suitabilityBonus          = 0.25
	suitabilityPenalty        = 0.15
	suitabilityPenaltyGeneric = 0.05
)

// AlignmentScorer blends the threat-appropriateness and mission-alignment
// matrices, adjusted by threat stage and explicit candidate suitability
type AlignmentScorer struct{}

func (AlignmentScorer) Name() score.FactorName { return score.FactorAlignment }

func (AlignmentScorer) Score(fctx *Context) score.FactorResult {
	sit := fctx.Situation
	cand := fctx.Candidate

	threatPart := ThreatAppropriateness(sit.ThreatType, cand.Type)
	threatPart += stageAdjustment(sit, cand.Type)

	missionPart := 0.5
	missionNote := "mission type unknown"
	if sit.MissionType != "" {
		missionPart = MissionAlignment(sit.MissionType, cand.Type)
		missionNote = fmt.Sprintf("mission %q fit %.2f", sit.MissionType, missionPart)
	}

	total := alignThreatWeight*threatPart + alignMissionWeight*missionPart
	reason := fmt.Sprintf("threat %q fit %.2f; %s", sit.ThreatType, threatPart, missionNote)

	// Explicit suitability declaration overrides the fuzzy tables in spirit:
	// a declared match is rewarded, a declared mismatch lightly penalized
	if len(cand.SuitableFor) > 0 && !cand.AllPurpose() {
		if suitableFor(cand, sit.ThreatType) {
			total += suitabilityBonus
			reason += "; explicitly suitable for this threat"
		} else {
			total -= suitabilityPenalty
			reason += "; explicitly targets a different threat"
		}
	} else if cand.AllPurpose() && !suitableFor(cand, sit.ThreatType) {
		total -= suitabilityPenaltyGeneric
		reason += "; all-purpose candidate"
	}

	return result(score.FactorAlignment, total, reason)
}

func suitableFor(cand coa.Candidate, threatType string) bool {
	for _, s := range cand.SuitableFor {
		if textmatch.Similarity(s, threatType) >= textmatch.KeyMatchThreshold {
			return true
		}
	}
	return false
}

// stageAdjustment nudges the threat part by up to +-0.2 according to how far
// the threat has developed
func stageAdjustment(sit coa.Situation, coaType coa.COAType) float64 {
	stage := textmatch.Normalize(sit.ThreatStage)
	level := sit.NormalizedThreatLevel()

	switch {
	case stage == "ongoing" || stage == "engaged":
		if coaType == coa.TypeCounterAttack {
			return 0.2
		}
		if coaType == coa.TypeOffensive || coaType == coa.TypeDefense {
			return 0.1
		}
	case stage == "imminent" || level >= 0.8:
		if coaType == coa.TypeDefense || coaType == coa.TypePreemptive {
			return 0.1
		}
		if coaType == coa.TypeInformationOps {
			return -0.1
		}
	case stage == "early" || (stage == "" && level > 0 && level < 0.3):
		if coaType == coa.TypeDeterrence || coaType == coa.TypeInformationOps {
			return 0.1
		}
		if coaType == coa.TypeCounterAttack {
			return -0.1
		}
	}
	return 0
}
