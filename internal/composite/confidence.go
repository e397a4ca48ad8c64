package composite

import (
	"math"

	"github.com/montanaflynn/stats"

	"coarank/domain/score"
	"coarank/internal/factors"
)

// Confidence blend weights: how many factors produced real signal, whether
// the score spread looks healthy, and how complete the supplied context is
const (
	confidenceSignalWeight       = 0.4
	confidenceSpreadWeight       = 0.3
	confidenceCompletenessWeight = 0.3

	defaultEpsilon   = 0.01
	healthySpreadLow = 0.2
	healthySpreadTop = 0.8
)

func computeConfidence(fctx *factors.Context, entries []score.FactorEntry) float64 {
	return score.Clamp(confidenceSignalWeight*signalFraction(entries) +
		confidenceSpreadWeight*spreadHealth(entries) +
		confidenceCompletenessWeight*contextCompleteness(fctx))
}

// signalFraction is the share of factors that deviated from their neutral
// default, i.e. were computed from real data rather than fallbacks
func signalFraction(entries []score.FactorEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	deviated := 0
	for _, e := range entries {
		if math.Abs(e.Score-e.Name.NeutralDefault()) > defaultEpsilon {
			deviated++
		}
	}
	return float64(deviated) / float64(len(entries))
}

// spreadHealth rewards a factor-score spread in the healthy band; a
// degenerate flat profile or a wildly scattered one both reduce confidence
func spreadHealth(entries []score.FactorEntry) float64 {
	if len(entries) < 2 {
		return 0.5
	}
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Score
	}
	min, errMin := stats.Min(values)
	max, errMax := stats.Max(values)
	if errMin != nil || errMax != nil {
		return 0.5
	}
	spread := max - min
	switch {
	case spread >= healthySpreadLow && spread <= healthySpreadTop:
		return 1.0
	case spread < healthySpreadLow:
		return 0.5
	default:
		return 0.3
	}
}

// contextCompleteness is the fraction of recognized situation fields that
// were actually supplied
func contextCompleteness(fctx *factors.Context) float64 {
	sit := fctx.Situation
	supplied := 0
	total := 7

	if sit.ThreatType != "" {
		supplied++
	}
	if sit.ThreatLevel > 0 {
		supplied++
	}
	if sit.MissionType != "" {
		supplied++
	}
	if sit.Weather != "" || sit.Terrain != "" {
		supplied++
	}
	if len(sit.AvailableResources) > 0 {
		supplied++
	}
	if len(sit.RequiredResources) > 0 || len(fctx.Candidate.RequiredResources) > 0 {
		supplied++
	}
	if len(sit.DefenseAssets) > 0 {
		supplied++
	}
	return float64(supplied) / float64(total)
}
