package match

import (
	"math"
	"testing"

	"coarank/domain/coa"
)

func ptr(v float64) *float64 { return &v }

func TestMatchScore_ExactIDYieldsFullConfidence(t *testing.T) {
	matcher := NewMatcher()
	available := []coa.ResourceRecord{
		{ID: "res-1", Category: "artillery", Level: "battalion", Capability: ptr(0.8), Morale: ptr(0.6)},
	}

	matchScore, detail := matcher.MatchScore([]string{"res-1"}, available)

	if len(detail.TokenMatches) != 1 {
		t.Fatalf("expected 1 token match, got %d", len(detail.TokenMatches))
	}
	tm := detail.TokenMatches[0]
	if tm.Confidence != ConfidenceExact {
		t.Errorf("expected confidence 1.0 for identical id, got %.2f", tm.Confidence)
	}
	if tm.Strategy != "exact_id" {
		t.Errorf("expected exact_id strategy, got %s", tm.Strategy)
	}

	// quality = 0.7*0.8 + 0.3*0.6
	wantQuality := 0.74
	if math.Abs(detail.Quality-wantQuality) > 1e-9 {
		t.Errorf("expected quality %.2f, got %.4f", wantQuality, detail.Quality)
	}
	if math.Abs(matchScore-1.0*wantQuality) > 1e-9 {
		t.Errorf("expected score %.4f, got %.4f", wantQuality, matchScore)
	}
}

func TestMatchScore_EdgeCases(t *testing.T) {
	matcher := NewMatcher()
	pool := []coa.ResourceRecord{{ID: "res-1", Category: "infantry", Level: "company"}}

	tests := []struct {
		name      string
		required  []string
		available []coa.ResourceRecord
		want      float64
	}{
		{"no requirements with pool", nil, pool, ScoreNoRequirements},
		{"requirements with empty pool", []string{"tank", "artillery"}, nil, ScoreEmptyPool},
		{"nothing either way", nil, nil, ScoreNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := matcher.MatchScore(tt.required, tt.available)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %.2f, got %.4f", tt.want, got)
			}
		})
	}
}

func TestMatchScore_Idempotent(t *testing.T) {
	matcher := NewMatcher()
	required := []string{"artillery battalion", "recon drone"}
	available := []coa.ResourceRecord{
		{ID: "art-bn-21", Category: "artillery", Level: "battalion", Capability: ptr(0.7)},
		{ID: "drone recon team", Category: "reconnaissance", Level: ""},
	}

	first, firstDetail := matcher.MatchScore(required, available)
	for i := 0; i < 5; i++ {
		again, againDetail := matcher.MatchScore(required, available)
		if again != first {
			t.Fatalf("run %d: score %.6f != %.6f", i, again, first)
		}
		if len(againDetail.TokenMatches) != len(firstDetail.TokenMatches) {
			t.Fatalf("run %d: detail drifted", i)
		}
	}
}

func TestStrategies_Priorities(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		token    string
		record   coa.ResourceRecord
		want     float64
	}{
		{
			"attribute rule: category and level",
			attributeStrategy{}, "artillery battalion",
			coa.ResourceRecord{ID: "u-77", Category: "Artillery", Level: "Battalion"},
			ConfidenceAttribute,
		},
		{
			"attribute rule: empty level passes",
			attributeStrategy{}, "artillery battalion",
			coa.ResourceRecord{ID: "u-78", Category: "artillery", Level: ""},
			ConfidenceAttribute,
		},
		{
			"attribute rule: wrong level fails",
			attributeStrategy{}, "artillery battalion",
			coa.ResourceRecord{ID: "u-79", Category: "artillery", Level: "brigade"},
			0,
		},
		{
			"hierarchy: broader category intersects",
			hierarchyStrategy{}, "artillery battalion",
			coa.ResourceRecord{ID: "x1", Category: "artillery brigade", Level: "brigade"},
			ConfidenceHierarchy,
		},
		{
			"similarity: token overlap above floor",
			similarityStrategy{}, "recon drone",
			coa.ResourceRecord{ID: "drone recon team"},
			ConfidenceSimilarity * (2.0 / 3.0),
		},
		{
			"similarity: below floor rejected",
			similarityStrategy{}, "submarine",
			coa.ResourceRecord{ID: "drone recon team"},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.strategy.TryMatch(tt.token, tt.record)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TryMatch = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestMatchScore_AlternativeSubstitution(t *testing.T) {
	matcher := NewMatcher()
	// Nothing matches "artillery battalion" directly, but the hierarchy map
	// offers "artillery brigade" which matches the record id exactly.
	available := []coa.ResourceRecord{{ID: "artillery brigade"}}

	_, detail := matcher.MatchScore([]string{"artillery battalion"}, available)

	tm := detail.TokenMatches[0]
	if tm.Alternative == "" {
		t.Fatal("expected an alternative substitution")
	}
	want := ConfidenceExact * AlternativeDiscount
	if math.Abs(tm.Confidence-want) > 1e-9 {
		t.Errorf("expected discounted confidence %.2f, got %.4f", want, tm.Confidence)
	}
}

func TestAlternatives_EchelonLadder(t *testing.T) {
	alts := Alternatives("infantry battalion")

	found := map[string]bool{}
	for _, a := range alts {
		found[a] = true
	}
	for _, want := range []string{"infantry brigade", "infantry division"} {
		if !found[want] {
			t.Errorf("expected alternative %q in %v", want, alts)
		}
	}
	for _, a := range alts {
		if a == "infantry battalion" {
			t.Error("alternatives must not echo the original token")
		}
	}
}
