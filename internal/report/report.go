package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/pipeline"
)

// Markdown renders a ranking result as a markdown report: one section per
// ranked candidate with its factor breakdown table, then exclusions and
// warnings.
func Markdown(situation coa.Situation, result pipeline.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Course-of-Action Ranking\n\n")
	fmt.Fprintf(&sb, "Situation `%s`: %s threat (level %.2f)", situation.ID, situation.ThreatType, situation.NormalizedThreatLevel())
	if situation.MissionType != "" {
		fmt.Fprintf(&sb, ", mission %s", situation.MissionType)
	}
	fmt.Fprintf(&sb, " (run `%s`)\n\n", result.RunID)

	if len(result.Ranked) == 0 {
		sb.WriteString("No candidates survived evaluation.\n")
	}

	for _, rc := range result.Ranked {
		fmt.Fprintf(&sb, "## %d. %s (%s): %.3f\n\n", rc.Rank, rc.Candidate.Name, rc.Candidate.Type, rc.Breakdown.Total)
		fmt.Fprintf(&sb, "*%s*, confidence %.2f\n\n", tagLabel(rc.Tag), rc.Breakdown.Confidence)

		sb.WriteString("| Factor | Score | Weight | Weighted | Justification |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, f := range rc.Breakdown.Factors {
			fmt.Fprintf(&sb, "| %s | %.3f | %.3f | %.3f | %s |\n",
				f.Name, f.Score, f.Weight, f.Weighted, f.Justification)
		}
		sb.WriteString("\n")

		if len(rc.Breakdown.Strengths) > 0 {
			sb.WriteString("**Strengths**\n\n")
			for _, s := range rc.Breakdown.Strengths {
				fmt.Fprintf(&sb, "- %s\n", s)
			}
			sb.WriteString("\n")
		}
		if len(rc.Breakdown.Weaknesses) > 0 {
			sb.WriteString("**Weaknesses**\n\n")
			for _, w := range rc.Breakdown.Weaknesses {
				fmt.Fprintf(&sb, "- %s\n", w)
			}
			sb.WriteString("\n")
		}
		if rc.METTC != nil {
			fmt.Fprintf(&sb, "METT-C: mission %.2f, enemy %.2f, terrain %.2f, troops %.2f, civilian %.2f, weather %.2f, time %.2f (total %.2f)\n\n",
				rc.METTC.Mission, rc.METTC.Enemy, rc.METTC.Terrain, rc.METTC.Troops,
				rc.METTC.Civilian, rc.METTC.Weather, rc.METTC.Time, rc.METTC.Total)
		}
	}

	if len(result.Excluded) > 0 {
		sb.WriteString("## Excluded\n\n")
		for _, rc := range result.Excluded {
			reason := ""
			if rc.METTC != nil {
				reason = rc.METTC.ExclusionReason
			}
			fmt.Fprintf(&sb, "- %s (%s): %s\n", rc.Candidate.Name, rc.Candidate.Type, reason)
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	return sb.String()
}

// HTML renders the markdown report as an HTML fragment
func HTML(situation coa.Situation, result pipeline.Result) []byte {
	md := Markdown(situation, result)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func tagLabel(tag score.RankTag) string {
	return strings.ReplaceAll(string(tag), "_", " ")
}
