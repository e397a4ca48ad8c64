package mettc

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"coarank/domain/coa"
	"coarank/domain/score"
	"coarank/internal/factors"
	"coarank/internal/match"
	"coarank/ports"
)

// Gate runs the secondary multi-criteria evaluation: seven independent
// dimensions whose civilian and time scores double as hard exclusion
// signals. Stateless apart from injected collaborators.
type Gate struct {
	tables  ports.TablePort
	matcher *match.Matcher
}

// NewGate creates a METT-C gate. tables may be nil; dependent dimensions
// then degrade to their defaults.
func NewGate(tables ports.TablePort, matcher *match.Matcher) *Gate {
	return &Gate{tables: tables, matcher: matcher}
}

// Evaluate computes the seven dimensions and their total for one candidate
func (g *Gate) Evaluate(sit coa.Situation, cand coa.Candidate) score.METTCScore {
	m := score.METTCScore{
		Mission:  g.missionScore(sit, cand),
		Enemy:    g.enemyScore(sit, cand),
		Terrain:  g.terrainScore(sit, cand),
		Troops:   g.troopsScore(sit, cand),
		Civilian: g.civilianScore(sit, cand),
		Weather:  g.weatherScore(sit, cand),
		Time:     g.timeScore(sit, cand),
	}

	total, err := stats.Mean([]float64{m.Mission, m.Enemy, m.Terrain, m.Troops, m.Civilian, m.Weather, m.Time})
	if err == nil {
		m.Total = total
	}

	switch {
	case m.Civilian < score.CivilianExclusionThreshold:
		m.ExclusionReason = fmt.Sprintf("civilian score %.2f below %.2f threshold",
			m.Civilian, score.CivilianExclusionThreshold)
	case m.Time == score.TimeExclusionScore:
		m.ExclusionReason = "estimated duration exceeds a critical time budget"
	}
	return m
}

// missionScore reuses the alignment tables from the factor layer
func (g *Gate) missionScore(sit coa.Situation, cand coa.Candidate) float64 {
	if sit.MissionType != "" {
		return factors.MissionAlignment(sit.MissionType, cand.Type)
	}
	return factors.ThreatAppropriateness(sit.ThreatType, cand.Type)
}

// enemyScore is the friendly share of total combat power
func (g *Gate) enemyScore(sit coa.Situation, cand coa.Candidate) float64 {
	friendly := sit.FriendlyCombatPower + cand.CombatPower
	enemy := sit.EnemyCombatPower
	if friendly <= 0 || enemy <= 0 {
		return 0.5
	}
	return score.Clamp(friendly / (friendly + enemy))
}
