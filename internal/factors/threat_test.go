package factors

import (
	"math"
	"testing"

	"coarank/domain/coa"
	"coarank/internal/match"
)

func TestThreatScorer_LevelAndAxisBump(t *testing.T) {
	scorer := ThreatScorer{}

	tests := []struct {
		name string
		sit  coa.Situation
		want float64
	}{
		{
			"plain level",
			coa.Situation{ID: "s", ThreatType: "artillery", ThreatLevel: 0.6},
			0.6,
		},
		{
			"percent scale rescaled",
			coa.Situation{ID: "s", ThreatType: "artillery", ThreatLevel: 60},
			0.6,
		},
		{
			"axis bearing on location bumps by 10 percent",
			coa.Situation{ID: "s", ThreatType: "artillery", ThreatLevel: 0.6,
				Location: "hill 203", Axis: "hill 203 approach"},
			0.66,
		},
		{
			"bump clamps at 1.0",
			coa.Situation{ID: "s", ThreatType: "artillery", ThreatLevel: 0.95,
				Location: "hill 203", Axis: "hill 203"},
			1.0,
		},
		{
			"unreported level is neutral",
			coa.Situation{ID: "s", ThreatType: "artillery"},
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(&Context{Situation: tt.sit, Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense}})
			if math.Abs(got.Score-tt.want) > 1e-9 {
				t.Errorf("expected %.2f, got %.4f", tt.want, got.Score)
			}
		})
	}
}

func TestResourceScorer_CandidateRequirementsTakePrecedence(t *testing.T) {
	scorer := ResourceScorer{}
	fctx := &Context{
		Situation: coa.Situation{
			ID: "s", ThreatType: "artillery",
			RequiredResources:  []string{"submarine"},
			AvailableResources: []coa.ResourceRecord{{ID: "artillery battalion"}},
		},
		Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense,
			RequiredResources: []string{"artillery battalion"}},
		Matcher: match.NewMatcher(),
	}

	got := scorer.Score(fctx)

	// The candidate's own requirement matches exactly; the situation's
	// unmatched submarine requirement is ignored
	if got.Score < 0.4 {
		t.Errorf("candidate requirements should drive the match, got %.3f", got.Score)
	}
}

func TestResourceScorer_IntersectionFallbackWithoutMatcher(t *testing.T) {
	scorer := ResourceScorer{}
	fctx := &Context{
		Situation: coa.Situation{
			ID: "s", ThreatType: "artillery",
			RequiredResources: []string{"artillery battalion", "submarine"},
			AvailableResources: []coa.ResourceRecord{
				{ID: "artillery battalion", Category: "artillery"},
			},
		},
		Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense},
	}

	got := scorer.Score(fctx)
	if math.Abs(got.Score-0.5) > 1e-9 {
		t.Errorf("expected 1/2 intersection ratio, got %.4f", got.Score)
	}
}

func TestAssetScorer_Fallbacks(t *testing.T) {
	scorer := AssetScorer{}

	tests := []struct {
		name string
		fctx *Context
		want float64
	}{
		{
			"mean asset capability",
			&Context{
				Situation: coa.Situation{ID: "s", ThreatType: "artillery",
					DefenseAssets: []coa.Asset{{Name: "radar", Capability: 0.9}, {Name: "sam site", Capability: 0.5}}},
				Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense},
			},
			0.7,
		},
		{
			"requirement coverage when no assets declared",
			&Context{
				Situation: coa.Situation{ID: "s", ThreatType: "artillery",
					AvailableResources: []coa.ResourceRecord{{ID: "artillery battalion"}}},
				Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense,
					RequiredResources: []string{"artillery battalion", "submarine"}},
			},
			0.5,
		},
		{
			"no data is neutral",
			&Context{
				Situation: coa.Situation{ID: "s", ThreatType: "artillery"},
				Candidate: coa.Candidate{ID: "c", Type: coa.TypeDefense},
			},
			0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.fctx)
			if math.Abs(got.Score-tt.want) > 1e-9 {
				t.Errorf("expected %.2f, got %.4f", tt.want, got.Score)
			}
		})
	}
}
