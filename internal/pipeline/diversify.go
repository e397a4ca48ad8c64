package pipeline

import (
	"coarank/domain/core"
	"coarank/domain/score"
)

// EquivalenceGap is the score distance under which an alternative counts as
// equivalent to the best candidate
const EquivalenceGap = 0.05

// diversify keeps rank 1 as the best overall, then greedily adds further
// distinct candidates from the ranked list up to topK, tagging each by its
// score gap to the best.
func diversify(ranked []scored, topK int) []score.RankedCandidate {
	if len(ranked) == 0 {
		return nil
	}

	out := make([]score.RankedCandidate, 0, topK)
	seen := make(map[core.CandidateID]struct{})
	best := ranked[0]

	for _, s := range ranked {
		if len(out) == topK {
			break
		}
		if _, dup := seen[s.candidate.ID]; dup {
			continue
		}
		seen[s.candidate.ID] = struct{}{}

		tag := score.TagNextBestAlternative
		switch {
		case len(out) == 0:
			tag = score.TagBestOverall
		case best.breakdown.Total-s.breakdown.Total < EquivalenceGap:
			tag = score.TagEquivalentAlternative
		}

		out = append(out, score.RankedCandidate{
			Candidate: s.candidate,
			Breakdown: s.breakdown,
			METTC:     s.mettc,
			Rank:      len(out) + 1,
			Tag:       tag,
		})
	}
	return out
}
