package coa

import (
	"fmt"
	"strings"

	"coarank/domain/core"
)

// COAType is the closed enumeration of course-of-action categories
type COAType string

const (
	TypeDefense        COAType = "defense"
	TypeOffensive      COAType = "offensive"
	TypeCounterAttack  COAType = "counter_attack"
	TypePreemptive     COAType = "preemptive"
	TypeDeterrence     COAType = "deterrence"
	TypeManeuver       COAType = "maneuver"
	TypeInformationOps COAType = "information_ops"
)

// AllCOATypes returns every valid COA type in stable order
func AllCOATypes() []COAType {
	return []COAType{
		TypeDefense,
		TypeOffensive,
		TypeCounterAttack,
		TypePreemptive,
		TypeDeterrence,
		TypeManeuver,
		TypeInformationOps,
	}
}

// Valid reports whether the type belongs to the closed enumeration
func (t COAType) Valid() bool {
	for _, known := range AllCOATypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (t COAType) String() string { return string(t) }

// ParseCOAType parses a string into a COAType
func ParseCOAType(s string) (COAType, error) {
	t := COAType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownCOAType, s)
	}
	return t, nil
}

// Candidate is a course of action produced by external discovery.
// Read-only during scoring.
type Candidate struct {
	ID   core.CandidateID `json:"id"`
	Name string           `json:"name"`
	Type COAType          `json:"type"`

	// Declared requirements and compatibilities
	RequiredResources        []string `json:"required_resources,omitempty"`
	CompatibleEnvironments   []string `json:"compatible_environments,omitempty"`
	IncompatibleEnvironments []string `json:"incompatible_environments,omitempty"`

	// SuitableFor lists threat types the candidate explicitly targets.
	// "all" marks an all-purpose candidate (lighter mismatch penalty).
	SuitableFor []string `json:"suitable_for,omitempty"`

	// Optional success priors; nil means not declared
	HistoricalSuccess   *float64 `json:"historical_success,omitempty"`
	ExpectedSuccessRate *float64 `json:"expected_success_rate,omitempty"`

	EstimatedDurationHours float64 `json:"estimated_duration_hours,omitempty"`
	CombatPower            float64 `json:"combat_power,omitempty"`
}

// Validate checks structural validity of a candidate
func (c Candidate) Validate() error {
	if core.ID(c.ID).IsEmpty() {
		return core.NewValidationError("id", "candidate id is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: candidate %s declares %q", core.ErrUnknownCOAType, c.ID, c.Type)
	}
	return nil
}

// AllPurpose reports whether the candidate declares itself suitable for any threat
func (c Candidate) AllPurpose() bool {
	for _, s := range c.SuitableFor {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "all", "any", "general":
			return true
		}
	}
	return false
}

// Asset is a defensive asset available to the friendly side
type Asset struct {
	Name       string  `json:"name"`
	Capability float64 `json:"capability"` // [0,1] proxy
}

// TimeConstraint bounds how long an operation may take
type TimeConstraint struct {
	Name             string               `json:"name"`
	MaxDurationHours float64              `json:"max_duration_hours"`
	Importance       ConstraintImportance `json:"importance"`
}

// ConstraintImportance grades how strictly a constraint binds
type ConstraintImportance string

const (
	ImportanceCritical ConstraintImportance = "critical"
	ImportanceHigh     ConstraintImportance = "high"
	ImportanceMedium   ConstraintImportance = "medium"
	ImportanceLow      ConstraintImportance = "low"
)

// Weight returns the penalty scale applied when a non-critical constraint is stretched
func (i ConstraintImportance) Weight() float64 {
	switch i {
	case ImportanceCritical:
		return 1.0
	case ImportanceHigh:
		return 0.8
	case ImportanceMedium:
		return 0.5
	case ImportanceLow:
		return 0.3
	default:
		return 0.5
	}
}

// CivilianArea is a protected area potentially impacted by an operation
type CivilianArea struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Priority          float64 `json:"priority"`           // [0,1], 1 = most protected
	PopulationDensity float64 `json:"population_density"` // [0,1] normalized
}

// Situation describes the threat and context one pipeline run evaluates against.
// Immutable input to a run.
type Situation struct {
	ID          core.SituationID `json:"id"`
	ThreatType  string           `json:"threat_type"`
	ThreatLevel float64          `json:"threat_level"` // [0,1]; 0-100 inputs are rescaled
	ThreatStage string           `json:"threat_stage,omitempty"`
	MissionType string           `json:"mission_type,omitempty"`
	Location    string           `json:"location,omitempty"`
	Axis        string           `json:"axis,omitempty"`
	Weather     string           `json:"weather,omitempty"`
	Terrain     string           `json:"terrain,omitempty"`

	RequiredResources  []string         `json:"required_resources,omitempty"`
	AvailableResources []ResourceRecord `json:"available_resources,omitempty"`
	DefenseAssets      []Asset          `json:"defense_assets,omitempty"`
	TimeConstraints    []TimeConstraint `json:"time_constraints,omitempty"`

	EnemyCombatPower    float64 `json:"enemy_combat_power,omitempty"`
	FriendlyCombatPower float64 `json:"friendly_combat_power,omitempty"`
}

// NormalizedThreatLevel rescales 0-100 threat inputs to [0,1]
func (s Situation) NormalizedThreatLevel() float64 {
	level := s.ThreatLevel
	if level > 1.0 {
		level = level / 100.0
	}
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}

// Validate checks structural validity of a situation
func (s Situation) Validate() error {
	if core.ID(s.ID).IsEmpty() {
		return core.NewValidationError("id", "situation id is required")
	}
	if strings.TrimSpace(s.ThreatType) == "" {
		return core.NewValidationError("threat_type", "threat type is required")
	}
	return nil
}
