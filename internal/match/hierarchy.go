package match

import (
	"sort"

	"coarank/internal/textmatch"
)

// echelonLadder orders unit echelons from narrow to broad. A required token
// naming one echelon can be substituted by the same category at a broader
// echelon when nothing matches directly.
var echelonLadder = []string{"platoon", "company", "battalion", "regiment", "brigade", "division", "corps"}

// resourceHierarchy maps a resource term to explicitly substitutable
// alternatives, beyond the generic echelon ladder.
var resourceHierarchy = map[string][]string{
	"artillery battalion":   {"artillery brigade", "artillery division"},
	"artillery":             {"rocket artillery", "self propelled artillery", "mortar"},
	"infantry battalion":    {"infantry brigade", "mechanized infantry battalion"},
	"armor company":         {"armor battalion", "tank battalion"},
	"air defense battery":   {"air defense battalion", "sam battalion"},
	"attack helicopter":     {"helicopter squadron", "close air support"},
	"engineer company":      {"engineer battalion", "combat engineer unit"},
	"reconnaissance team":   {"reconnaissance company", "surveillance drone unit"},
	"signal company":        {"signal battalion", "electronic warfare company"},
	"electronic warfare":    {"signal battalion", "cyber operations unit"},
	"logistics company":     {"supply battalion", "transportation company"},
	"special forces team":   {"special operations unit", "commando company"},
	"naval patrol boat":     {"naval squadron", "coastal defense battery"},
	"fighter squadron":      {"air wing", "interceptor squadron"},
	"surveillance drone":    {"reconnaissance company", "observation post"},
	"counter battery radar": {"artillery radar company", "target acquisition battery"},
}

// Alternatives returns broader or substitutable resource terms for a token.
// Order is deterministic: explicit hierarchy entries first, then broader
// echelons from the ladder.
func Alternatives(token string) []string {
	norm := textmatch.Normalize(token)
	var out []string
	seen := map[string]struct{}{norm: {}}

	add := func(term string) {
		n := textmatch.Normalize(term)
		if _, dup := seen[n]; dup {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	// Explicit hierarchy entries, fuzzily keyed
	if alts, ok := resourceHierarchy[norm]; ok {
		for _, alt := range alts {
			add(alt)
		}
	} else {
		// Sorted key walk keeps fuzzy tie-breaks deterministic
		keys := make([]string, 0, len(resourceHierarchy))
		for key := range resourceHierarchy {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		bestScore := 0.0
		var bestAlts []string
		for _, key := range keys {
			if s := textmatch.Similarity(norm, key); s > bestScore {
				bestScore = s
				bestAlts = resourceHierarchy[key]
			}
		}
		if bestScore >= textmatch.KeyMatchThreshold {
			for _, alt := range bestAlts {
				add(alt)
			}
		}
	}

	// Broader echelons of the same category
	for i, echelon := range echelonLadder {
		if !textmatch.Contains(norm, echelon) {
			continue
		}
		for _, broader := range echelonLadder[i+1:] {
			add(replaceWord(norm, echelon, broader))
		}
		break
	}

	return out
}

func replaceWord(term, old, new string) string {
	toks := textmatch.Tokens(term)
	for i, t := range toks {
		if t == old {
			toks[i] = new
		}
	}
	result := ""
	for i, t := range toks {
		if i > 0 {
			result += " "
		}
		result += t
	}
	return result
}
