package factors

import (
	"fmt"
	"strings"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/textmatch"
)

// Environment adjustment caps
const (
	envCompatBonus     = 0.2
	envCompatBonusCap  = 0.4
	envIncompatPenalty = 0.3
	envIncompatCap     = 0.6
)

// weatherBucket classifies conditions when a candidate declares no explicit
// environment compatibility data
type weatherBucket int

const (
	weatherUnknown weatherBucket = iota
	weatherClear
	weatherPoor
	weatherSevere
)

func bucketOf(condition string) weatherBucket {
	norm := textmatch.Normalize(condition)
	switch {
	case norm == "":
		return weatherUnknown
	case containsAny(norm, "storm", "typhoon", "blizzard", "hurricane"):
		return weatherSevere
	case containsAny(norm, "rain", "snow", "fog", "wind", "overcast"):
		return weatherPoor
	case containsAny(norm, "clear", "sunny", "fair", "calm"):
		return weatherClear
	}
	return weatherUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EnvironmentScorer scores environmental fit from declared compatibilities,
// with a weather-bucket heuristic when none are declared
type EnvironmentScorer struct{}

func (EnvironmentScorer) Name() score.FactorName { return score.FactorEnvironment }

func (EnvironmentScorer) Score(fctx *Context) score.FactorResult {
	sit := fctx.Situation
	cand := fctx.Candidate
	env := strings.TrimSpace(sit.Weather + " " + sit.Terrain)

	if len(cand.CompatibleEnvironments) == 0 && len(cand.IncompatibleEnvironments) == 0 {
		return weatherHeuristic(sit, cand)
	}

	base := 0.5
	bonus := 0.0
	penalty := 0.0
	var matched, conflicting []string

	for _, tag := range cand.CompatibleEnvironments {
		if textmatch.Contains(env, tag) {
			bonus += envCompatBonus
			matched = append(matched, tag)
		}
	}
	if bonus > envCompatBonusCap {
		bonus = envCompatBonusCap
	}
	for _, tag := range cand.IncompatibleEnvironments {
		if textmatch.Contains(env, tag) {
			penalty += envIncompatPenalty
			conflicting = append(conflicting, tag)
		}
	}
	if penalty > envIncompatCap {
		penalty = envIncompatCap
	}

	reason := "environment baseline 0.5"
	if len(matched) > 0 {
		reason += fmt.Sprintf("; compatible with %v", matched)
	}
	if len(conflicting) > 0 {
		reason += fmt.Sprintf("; conflicts with %v", conflicting)
	}
	return result(score.FactorEnvironment, base+bonus-penalty, reason)
}

func weatherHeuristic(sit coa.Situation, cand coa.Candidate) score.FactorResult {
	base := 0.5
	switch bucketOf(sit.Weather) {
	case weatherClear:
		base += 0.05
	case weatherPoor:
		// Movement-heavy types suffer first in degraded weather
		if cand.Type == coa.TypeOffensive || cand.Type == coa.TypeManeuver {
			base -= 0.1
		} else {
			base -= 0.05
		}
	case weatherSevere:
		if cand.Type == coa.TypeOffensive || cand.Type == coa.TypeManeuver {
			base -= 0.2
		} else {
			base -= 0.1
		}
	case weatherUnknown:
		return result(score.FactorEnvironment, score.FactorEnvironment.NeutralDefault(),
			"no environment data; neutral default")
	}
	return result(score.FactorEnvironment, base,
		fmt.Sprintf("weather heuristic for %q (no declared compatibilities)", sit.Weather))
}
