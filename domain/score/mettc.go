package score

// Exclusion thresholds consumed by the pipeline. Candidates tripping either
// are dropped from the ranked output, not merely scored low.
const (
	CivilianExclusionThreshold = 0.3
	TimeExclusionScore         = 0.0
)

// METTCScore holds the seven secondary-evaluation dimensions
// (mission, enemy, terrain, troops, civilian, weather, time) and their total.
type METTCScore struct {
	Mission  float64 `json:"mission"`
	Enemy    float64 `json:"enemy"`
	Terrain  float64 `json:"terrain"`
	Troops   float64 `json:"troops"`
	Civilian float64 `json:"civilian"`
	Weather  float64 `json:"weather"`
	Time     float64 `json:"time"`
	Total    float64 `json:"total"`

	ExclusionReason string `json:"exclusion_reason,omitempty"`
}

// Excluded reports whether the score carries a hard exclusion signal
func (m METTCScore) Excluded() bool {
	return m.Civilian < CivilianExclusionThreshold || m.Time == TimeExclusionScore
}
