package composite

import (
	"math"
	"testing"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/factors"
	"coarank/internal/match"
)

func richContext() *factors.Context {
	rate := 0.8
	return &factors.Context{
		Situation: coa.Situation{
			ID:                 "sit-1",
			ThreatType:         "artillery",
			ThreatLevel:        0.9,
			ThreatStage:        "imminent",
			MissionType:        "defend",
			Weather:            "clear",
			Terrain:            "mountain ridge",
			RequiredResources:  []string{"artillery battalion"},
			AvailableResources: []coa.ResourceRecord{{ID: "artillery battalion", Capability: fptr(0.8)}},
			DefenseAssets:      []coa.Asset{{Name: "counter-battery radar", Capability: 0.7}},
		},
		Candidate: coa.Candidate{
			ID:                "coa-1",
			Name:              "Hardened Defense",
			Type:              coa.TypeDefense,
			SuitableFor:       []string{"artillery"},
			HistoricalSuccess: &rate,
		},
		Matcher: match.NewMatcher(),
	}
}

func fptr(v float64) *float64 { return &v }

func TestScore_TotalIsClampedWeightedSum(t *testing.T) {
	scorer := NewScorer()
	fctx := richContext()
	weights := score.ResolveWeights(fctx.Candidate.Type, score.WeightContext{
		ThreatLevel: fctx.Situation.NormalizedThreatLevel(),
		MissionType: fctx.Situation.MissionType,
	})

	breakdown := scorer.Score(fctx, weights)

	if len(breakdown.Factors) != len(score.AllFactors()) {
		t.Fatalf("expected %d factor entries, got %d", len(score.AllFactors()), len(breakdown.Factors))
	}

	sum := 0.0
	for _, e := range breakdown.Factors {
		if math.Abs(e.Weighted-e.Score*e.Weight) > 1e-9 {
			t.Errorf("%s: weighted %.6f != score*weight %.6f", e.Name, e.Weighted, e.Score*e.Weight)
		}
		sum += e.Weighted
	}
	if math.Abs(breakdown.Total-score.Clamp(sum)) > 1e-9 {
		t.Errorf("total %.6f disagrees with clamped weighted sum %.6f", breakdown.Total, sum)
	}
	if breakdown.Total < 0 || breakdown.Total > 1 {
		t.Errorf("total %.6f escaped [0,1]", breakdown.Total)
	}
	if breakdown.CandidateID != fctx.Candidate.ID {
		t.Errorf("breakdown attributed to %s", breakdown.CandidateID)
	}
}

func TestScore_FactorOrderIsStable(t *testing.T) {
	scorer := NewScorer()
	fctx := richContext()
	weights := score.ResolveWeights(fctx.Candidate.Type, score.WeightContext{})

	first := scorer.Score(fctx, weights)
	second := scorer.Score(fctx, weights)

	for i := range first.Factors {
		if first.Factors[i].Name != second.Factors[i].Name {
			t.Fatalf("factor order drifted at %d: %s vs %s", i, first.Factors[i].Name, second.Factors[i].Name)
		}
		if first.Factors[i].Score != second.Factors[i].Score {
			t.Fatalf("%s: score drifted between runs", first.Factors[i].Name)
		}
	}
	if first.Total != second.Total {
		t.Errorf("total drifted: %.6f vs %.6f", first.Total, second.Total)
	}
}

func TestScore_StrengthsAndWeaknesses(t *testing.T) {
	scorer := NewScorer()
	fctx := richContext()
	weights := score.ResolveWeights(fctx.Candidate.Type, score.WeightContext{})

	breakdown := scorer.Score(fctx, weights)

	// A well-matched defense against artillery should surface at least one
	// strength and attribute each to a named factor
	if len(breakdown.Strengths) == 0 {
		t.Error("expected at least one strength for a well-matched candidate")
	}
	for _, e := range breakdown.Factors {
		threshold := e.Name.NeutralDefault()
		if e.Score >= threshold+0.1 && !containsPrefix(breakdown.Strengths, string(e.Name)) {
			t.Errorf("factor %s scored %.2f but is missing from strengths", e.Name, e.Score)
		}
		if e.Score <= threshold-0.1 && !containsPrefix(breakdown.Weaknesses, string(e.Name)) {
			t.Errorf("factor %s scored %.2f but is missing from weaknesses", e.Name, e.Score)
		}
	}
}

func containsPrefix(list []string, prefix string) bool {
	for _, s := range list {
		if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func TestConfidence_RichContextBeatsSparse(t *testing.T) {
	scorer := NewScorer()

	rich := richContext()
	sparse := &factors.Context{
		Situation: coa.Situation{ID: "sit-2", ThreatType: "artillery"},
		Candidate: coa.Candidate{ID: "coa-2", Type: coa.TypeDefense},
	}
	weights := score.ResolveWeights(coa.TypeDefense, score.WeightContext{})

	richBD := scorer.Score(rich, weights)
	sparseBD := scorer.Score(sparse, weights)

	if richBD.Confidence <= sparseBD.Confidence {
		t.Errorf("rich context confidence %.3f should exceed sparse %.3f",
			richBD.Confidence, sparseBD.Confidence)
	}
	for _, c := range []float64{richBD.Confidence, sparseBD.Confidence} {
		if c < 0 || c > 1 {
			t.Errorf("confidence %.3f escaped [0,1]", c)
		}
	}
}
