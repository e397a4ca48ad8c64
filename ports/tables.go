package ports

import (
	"coarank/domain/coa"
)

// TerrainMetrics are per-location terrain quality proxies, each in [0,1]
type TerrainMetrics struct {
	Mobility         float64
	DefenseAdvantage float64
	Observation      float64
	KeyPointValue    float64
}

// WeatherRecord describes a weather condition and its severity in [0,1]
type WeatherRecord struct {
	Condition string
	Severity  float64
}

// TablePort exposes the flat tabular collaborator inputs. Every method may
// return an empty result; dependent factors then degrade to defaults.
type TablePort interface {
	Resources(situationID string) []coa.ResourceRecord
	CivilianAreas(location string) []coa.CivilianArea
	Terrain(location string) (TerrainMetrics, bool)
	Weather(condition string) (WeatherRecord, bool)
}
