package factors

import (
	"coarank/domain/coa"
	"coarank/internal/textmatch"
)

// threatAppropriateness scores how well each COA type answers a threat type.
// Keys resolve fuzzily, so "artillery barrage" hits the "artillery" row.
var threatAppropriateness = textmatch.NewTable(map[string]map[string]float64{
	"artillery": {
		"defense": 0.85, "counter_attack": 0.80, "preemptive": 0.60,
		"offensive": 0.45, "deterrence": 0.40, "maneuver": 0.55, "information_ops": 0.25,
	},
	"missile": {
		"defense": 0.90, "preemptive": 0.75, "deterrence": 0.60,
		"counter_attack": 0.50, "offensive": 0.40, "maneuver": 0.35, "information_ops": 0.30,
	},
	"air raid": {
		"defense": 0.85, "preemptive": 0.65, "counter_attack": 0.55,
		"deterrence": 0.50, "maneuver": 0.45, "offensive": 0.40, "information_ops": 0.25,
	},
	"infiltration": {
		"maneuver": 0.80, "defense": 0.70, "counter_attack": 0.65,
		"information_ops": 0.55, "offensive": 0.50, "preemptive": 0.40, "deterrence": 0.30,
	},
	"armor assault": {
		"defense": 0.85, "counter_attack": 0.75, "maneuver": 0.70,
		"offensive": 0.55, "preemptive": 0.50, "deterrence": 0.35, "information_ops": 0.20,
	},
	"naval incursion": {
		"defense": 0.80, "deterrence": 0.65, "preemptive": 0.60,
		"maneuver": 0.55, "counter_attack": 0.50, "offensive": 0.45, "information_ops": 0.30,
	},
	"drone": {
		"defense": 0.80, "information_ops": 0.60, "preemptive": 0.55,
		"counter_attack": 0.50, "deterrence": 0.45, "maneuver": 0.40, "offensive": 0.35,
	},
	"cyber": {
		"information_ops": 0.85, "defense": 0.70, "deterrence": 0.55,
		"preemptive": 0.45, "counter_attack": 0.35, "maneuver": 0.25, "offensive": 0.25,
	},
	"provocation": {
		"deterrence": 0.80, "information_ops": 0.70, "defense": 0.60,
		"maneuver": 0.45, "preemptive": 0.35, "counter_attack": 0.30, "offensive": 0.25,
	},
})

// missionAlignment scores how well each COA type serves a mission type
var missionAlignment = textmatch.NewTable(map[string]map[string]float64{
	"defend": {
		"defense": 0.90, "counter_attack": 0.65, "maneuver": 0.55,
		"deterrence": 0.50, "preemptive": 0.40, "information_ops": 0.35, "offensive": 0.25,
	},
	"strike": {
		"offensive": 0.90, "preemptive": 0.80, "counter_attack": 0.70,
		"maneuver": 0.55, "information_ops": 0.40, "defense": 0.25, "deterrence": 0.25,
	},
	"secure": {
		"defense": 0.80, "maneuver": 0.70, "counter_attack": 0.50,
		"deterrence": 0.45, "information_ops": 0.40, "preemptive": 0.35, "offensive": 0.35,
	},
	"stabilize": {
		"deterrence": 0.75, "information_ops": 0.70, "defense": 0.65,
		"maneuver": 0.45, "counter_attack": 0.30, "preemptive": 0.25, "offensive": 0.20,
	},
	"reconnaissance": {
		"maneuver": 0.80, "information_ops": 0.70, "defense": 0.45,
		"deterrence": 0.40, "preemptive": 0.35, "counter_attack": 0.30, "offensive": 0.30,
	},
	"delay": {
		"maneuver": 0.80, "defense": 0.75, "information_ops": 0.50,
		"deterrence": 0.45, "counter_attack": 0.40, "preemptive": 0.25, "offensive": 0.20,
	},
})

// ThreatAppropriateness resolves the threat-type row for a COA type,
// defaulting to 0.5 when no key resolves
func ThreatAppropriateness(threatType string, coaType coa.COAType) float64 {
	if w, ok := threatAppropriateness.Lookup(threatType, coaType.String()); ok {
		return w
	}
	return 0.5
}

// MissionAlignment resolves the mission-type row for a COA type,
// defaulting to 0.5 when no key resolves
func MissionAlignment(missionType string, coaType coa.COAType) float64 {
	if w, ok := missionAlignment.Lookup(missionType, coaType.String()); ok {
		return w
	}
	return 0.5
}

// StaticAppropriateness is the cheap Pass-1 stand-in for the chain factor:
// the same 60/40 threat/mission blend the alignment factor uses, without
// suitability adjustments or graph lookups.
func StaticAppropriateness(situation coa.Situation, candidate coa.Candidate) float64 {
	threatPart := ThreatAppropriateness(situation.ThreatType, candidate.Type)
	missionPart := 0.5
	if situation.MissionType != "" {
		missionPart = MissionAlignment(situation.MissionType, candidate.Type)
	}
	return 0.6*threatPart + 0.4*missionPart
}
