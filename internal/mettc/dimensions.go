package mettc

import (
	"github.com/montanaflynn/stats"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// terrainWeights are the operation-type-specific blends of the four terrain
// metrics (mobility, defense advantage, observation, key-point value)
func terrainWeights(t coa.COAType) (mobility, defense, observation, keyPoint float64) {
	switch t {
	case coa.TypeOffensive, coa.TypePreemptive:
		return 0.40, 0.10, 0.25, 0.25
	case coa.TypeManeuver:
		return 0.50, 0.10, 0.25, 0.15
	case coa.TypeDefense:
		return 0.10, 0.45, 0.25, 0.20
	case coa.TypeCounterAttack:
		return 0.30, 0.25, 0.25, 0.20
	default: // deterrence, information_ops
		return 0.20, 0.25, 0.35, 0.20
	}
}

func (g *Gate) terrainScore(sit coa.Situation, cand coa.Candidate) float64 {
	if g.tables == nil || sit.Location == "" {
		return 0.5
	}
	metrics, ok := g.tables.Terrain(sit.Location)
	if !ok {
		return 0.5
	}
	wMob, wDef, wObs, wKey := terrainWeights(cand.Type)
	return score.Clamp(wMob*metrics.Mobility + wDef*metrics.DefenseAdvantage +
		wObs*metrics.Observation + wKey*metrics.KeyPointValue)
}

// troopsScore blends resource availability (60%) with asset capability (40%)
func (g *Gate) troopsScore(sit coa.Situation, cand coa.Candidate) float64 {
	resourcePart := 0.5
	if g.matcher != nil {
		required := cand.RequiredResources
		if len(required) == 0 {
			required = sit.RequiredResources
		}
		resourcePart, _ = g.matcher.MatchScore(required, sit.AvailableResources)
	}

	assetPart := 0.5
	if len(sit.DefenseAssets) > 0 {
		capabilities := make([]float64, len(sit.DefenseAssets))
		for i, a := range sit.DefenseAssets {
			capabilities[i] = a.Capability
		}
		if mean, err := stats.Mean(capabilities); err == nil {
			assetPart = mean
		}
	}
	return score.Clamp(0.6*resourcePart + 0.4*assetPart)
}

// civilianImpactFactor scales impact by how kinetic the operation type is
func civilianImpactFactor(t coa.COAType) float64 {
	switch t {
	case coa.TypeOffensive, coa.TypeCounterAttack, coa.TypePreemptive:
		return 1.0
	case coa.TypeManeuver:
		return 0.7
	default: // defense, deterrence, information_ops
		return 0.4
	}
}

// civilianScore penalizes impacted protected areas by priority and density.
// No impacted areas means the best possible score.
func (g *Gate) civilianScore(sit coa.Situation, cand coa.Candidate) float64 {
	if g.tables == nil || sit.Location == "" {
		return 1.0
	}
	areas := g.tables.CivilianAreas(sit.Location)
	if len(areas) == 0 {
		return 1.0
	}
	impacts := make([]float64, len(areas))
	for i, area := range areas {
		impacts[i] = 0.6*area.Priority + 0.4*area.PopulationDensity
	}
	meanImpact, err := stats.Mean(impacts)
	if err != nil {
		return 1.0
	}
	return score.Clamp(1.0 - meanImpact*civilianImpactFactor(cand.Type))
}

// weatherSensitivity grades how exposed each operation type is to weather
func weatherSensitivity(t coa.COAType) float64 {
	switch t {
	case coa.TypeOffensive, coa.TypeManeuver:
		return 0.8
	case coa.TypeCounterAttack, coa.TypePreemptive:
		return 0.6
	case coa.TypeDefense:
		return 0.4
	default: // deterrence, information_ops
		return 0.2
	}
}

func (g *Gate) weatherScore(sit coa.Situation, cand coa.Candidate) float64 {
	if sit.Weather == "" {
		return 1.0
	}
	severity, ok := g.lookupSeverity(sit.Weather)
	if !ok {
		return 0.8 // unknown condition: mild caution
	}
	return score.Clamp(1.0 - severity*weatherSensitivity(cand.Type))
}

func (g *Gate) lookupSeverity(condition string) (float64, bool) {
	if g.tables != nil {
		if rec, ok := g.tables.Weather(condition); ok {
			return rec.Severity, true
		}
	}
	// Severity buckets mirror the environment factor heuristic
	norm := textmatch.Normalize(condition)
	for _, severe := range []string{"storm", "typhoon", "blizzard", "hurricane"} {
		if textmatch.Contains(norm, severe) {
			return 0.8, true
		}
	}
	for _, poor := range []string{"rain", "snow", "fog", "wind", "overcast"} {
		if textmatch.Contains(norm, poor) {
			return 0.5, true
		}
	}
	for _, clear := range []string{"clear", "sunny", "fair", "calm"} {
		if textmatch.Contains(norm, clear) {
			return 0.1, true
		}
	}
	return 0, false
}

// timeScore hard-fails (0.0) when a critical time budget is exceeded, and
// otherwise grades the penalty by overrun and constraint importance
func (g *Gate) timeScore(sit coa.Situation, cand coa.Candidate) float64 {
	duration := cand.EstimatedDurationHours
	if duration <= 0 || len(sit.TimeConstraints) == 0 {
		return 1.0
	}

	timeScore := 1.0
	for _, constraint := range sit.TimeConstraints {
		if constraint.MaxDurationHours <= 0 {
			continue
		}
		if duration > constraint.MaxDurationHours {
			if constraint.Importance == coa.ImportanceCritical {
				return score.TimeExclusionScore
			}
			overrun := (duration - constraint.MaxDurationHours) / constraint.MaxDurationHours
			penalized := 1.0 - overrun*constraint.Importance.Weight()
			// Non-critical overruns never produce the exclusion sentinel
			if penalized < 0.05 {
				penalized = 0.05
			}
			if penalized < timeScore {
				timeScore = penalized
			}
			continue
		}
		utilization := duration / constraint.MaxDurationHours
		graded := 1.0 - 0.2*utilization*constraint.Importance.Weight()
		if graded < timeScore {
			timeScore = graded
		}
	}
	return score.Clamp(timeScore)
}
