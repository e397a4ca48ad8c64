package score

import (
	"fmt"
	"math"

	"coarank/domain/coa"
)

// NormalizeTolerance is the floating tolerance for weight-sum checks
const NormalizeTolerance = 1e-6

// SurvivalThreatLevel is the threat level at or above which the survival
// profile overrides per-type weights
const SurvivalThreatLevel = 0.8

// WeightSet maps the seven factors to weights summing to 1
type WeightSet map[FactorName]float64

// WeightContext carries the situational inputs weight resolution reacts to
type WeightContext struct {
	ThreatLevel float64
	MissionType string
}

// Sum returns the total of all weights
func (w WeightSet) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Normalized returns a copy rescaled to sum to 1.0. A degenerate all-zero
// set falls back to uniform weights.
func (w WeightSet) Normalized() WeightSet {
	sum := w.Sum()
	out := make(WeightSet, len(w))
	if sum <= 0 {
		uniform := 1.0 / float64(len(AllFactors()))
		for _, f := range AllFactors() {
			out[f] = uniform
		}
		return out
	}
	for k, v := range w {
		out[k] = v / sum
	}
	return out
}

// Validate checks that weights are non-negative and sum to 1 within tolerance
func (w WeightSet) Validate() error {
	for k, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weight for factor %s: %f", k, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > NormalizeTolerance {
		return fmt.Errorf("weights sum to %.8f, must sum to 1.0", w.Sum())
	}
	return nil
}

// defaultWeightTable holds the static per-COA-type factor weights.
// Rows need not sum to 1; Resolve normalizes.
var defaultWeightTable = map[coa.COAType]WeightSet{
	coa.TypeDefense: {
		FactorThreat: 0.25, FactorResources: 0.20, FactorAssets: 0.15,
		FactorEnvironment: 0.10, FactorHistorical: 0.10, FactorChain: 0.05, FactorAlignment: 0.15,
	},
	coa.TypeOffensive: {
		FactorThreat: 0.15, FactorResources: 0.25, FactorAssets: 0.20,
		FactorEnvironment: 0.10, FactorHistorical: 0.10, FactorChain: 0.05, FactorAlignment: 0.15,
	},
	coa.TypeCounterAttack: {
		FactorThreat: 0.20, FactorResources: 0.20, FactorAssets: 0.20,
		FactorEnvironment: 0.10, FactorHistorical: 0.10, FactorChain: 0.05, FactorAlignment: 0.15,
	},
	coa.TypePreemptive: {
		FactorThreat: 0.30, FactorResources: 0.15, FactorAssets: 0.15,
		FactorEnvironment: 0.05, FactorHistorical: 0.10, FactorChain: 0.10, FactorAlignment: 0.15,
	},
	coa.TypeDeterrence: {
		FactorThreat: 0.20, FactorResources: 0.15, FactorAssets: 0.15,
		FactorEnvironment: 0.05, FactorHistorical: 0.15, FactorChain: 0.10, FactorAlignment: 0.20,
	},
	coa.TypeManeuver: {
		FactorThreat: 0.15, FactorResources: 0.20, FactorAssets: 0.15,
		FactorEnvironment: 0.20, FactorHistorical: 0.10, FactorChain: 0.05, FactorAlignment: 0.15,
	},
	coa.TypeInformationOps: {
		FactorThreat: 0.10, FactorResources: 0.15, FactorAssets: 0.10,
		FactorEnvironment: 0.05, FactorHistorical: 0.20, FactorChain: 0.15, FactorAlignment: 0.25,
	},
}

// survivalWeights dominate when the threat level is extreme: threat response
// outranks everything and relationship chains become nearly irrelevant.
func survivalWeights() WeightSet {
	return WeightSet{
		FactorThreat: 0.40, FactorResources: 0.15, FactorAssets: 0.15,
		FactorEnvironment: 0.08, FactorHistorical: 0.07, FactorChain: 0.02, FactorAlignment: 0.13,
	}
}

// missionWeights dominate when an explicit mission type is declared
func missionWeights() WeightSet {
	return WeightSet{
		FactorThreat: 0.15, FactorResources: 0.15, FactorAssets: 0.10,
		FactorEnvironment: 0.08, FactorHistorical: 0.07, FactorChain: 0.10, FactorAlignment: 0.35,
	}
}

// ResolveWeights produces the normalized weight set for a candidate type
// under the given context. Pure function of its inputs.
func ResolveWeights(candidateType coa.COAType, ctx WeightContext) WeightSet {
	switch {
	case ctx.ThreatLevel >= SurvivalThreatLevel:
		return survivalWeights().Normalized()
	case ctx.MissionType != "":
		return missionWeights().Normalized()
	}
	if w, ok := defaultWeightTable[candidateType]; ok {
		return w.Normalized()
	}
	// Unknown type: uniform weights keep the scorer total well-defined
	return WeightSet{}.Normalized()
}
