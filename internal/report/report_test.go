package report

import (
	"strings"
	"testing"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/pipeline"
)

func sampleResult() (coa.Situation, pipeline.Result) {
	sit := coa.Situation{ID: "sit-1", ThreatType: "artillery", ThreatLevel: 0.9, MissionType: "defend"}
	excludedGate := score.METTCScore{Time: 0.0, ExclusionReason: "estimated duration exceeds a critical time budget"}
	result := pipeline.Result{
		RunID: "run-1",
		State: pipeline.StateDiversified,
		Ranked: []score.RankedCandidate{
			{
				Candidate: coa.Candidate{ID: "coa-a", Name: "Hardened Defense", Type: coa.TypeDefense},
				Breakdown: score.ScoreBreakdown{
					CandidateID: "coa-a",
					Total:       0.81,
					Confidence:  0.7,
					Factors: []score.FactorEntry{
						{Name: score.FactorThreat, Score: 0.9, Weight: 0.4, Weighted: 0.36, Justification: "threat level 0.90"},
					},
					Strengths: []string{"threat: threat level 0.90"},
				},
				Rank: 1,
				Tag:  score.TagBestOverall,
			},
		},
		Excluded: []score.RankedCandidate{
			{
				Candidate: coa.Candidate{ID: "coa-b", Name: "Deep Strike", Type: coa.TypeOffensive},
				METTC:     &excludedGate,
			},
		},
		Warnings: []string{"knowledge graph unavailable; chain factor degraded to default"},
	}
	return sit, result
}

func TestMarkdown_ContainsAllSections(t *testing.T) {
	sit, result := sampleResult()

	md := Markdown(sit, result)

	for _, want := range []string{
		"# Course-of-Action Ranking",
		"run-1",
		"## 1. Hardened Defense (defense)",
		"best overall",
		"| Factor | Score | Weight | Weighted | Justification |",
		"threat level 0.90",
		"**Strengths**",
		"## Excluded",
		"Deep Strike (offensive): estimated duration exceeds a critical time budget",
		"## Warnings",
		"knowledge graph unavailable",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_EmptyRanking(t *testing.T) {
	sit := coa.Situation{ID: "sit-1", ThreatType: "artillery"}

	md := Markdown(sit, pipeline.Result{RunID: "run-2", State: pipeline.StateDiversified})

	if !strings.Contains(md, "No candidates survived evaluation.") {
		t.Errorf("empty result should say so:\n%s", md)
	}
}

func TestHTML_RendersFactorTable(t *testing.T) {
	sit, result := sampleResult()

	out := string(HTML(sit, result))

	if !strings.Contains(out, "<table>") {
		t.Error("expected the factor breakdown rendered as an HTML table")
	}
	if !strings.Contains(out, "Hardened Defense") {
		t.Error("expected candidate names in the HTML output")
	}
}
