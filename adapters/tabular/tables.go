package tabular

import (
	"sync"

	"coarank/domain/coa"
	"coarank/internal/textmatch"
	"coarank/ports"
)

// MemoryTables is an in-memory implementation of ports.TablePort, loaded
// from flat record lists. Safe for concurrent reads after loading.
type MemoryTables struct {
	mu        sync.RWMutex
	resources map[string][]coa.ResourceRecord // situation id -> pool
	civilian  map[string][]coa.CivilianArea   // location -> impacted areas
	terrain   map[string]ports.TerrainMetrics // location -> metrics
	weather   map[string]ports.WeatherRecord  // condition -> severity
}

// NewMemoryTables creates empty tables
func NewMemoryTables() *MemoryTables {
	return &MemoryTables{
		resources: make(map[string][]coa.ResourceRecord),
		civilian:  make(map[string][]coa.CivilianArea),
		terrain:   make(map[string]ports.TerrainMetrics),
		weather:   make(map[string]ports.WeatherRecord),
	}
}

// LoadResources registers the available-resource pool for a situation
func (t *MemoryTables) LoadResources(situationID string, pool []coa.ResourceRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources[situationID] = pool
}

// LoadCivilianAreas registers impacted protected areas for a location
func (t *MemoryTables) LoadCivilianAreas(location string, areas []coa.CivilianArea) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.civilian[textmatch.Normalize(location)] = areas
}

// LoadTerrain registers terrain metrics for a location
func (t *MemoryTables) LoadTerrain(location string, metrics ports.TerrainMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.terrain[textmatch.Normalize(location)] = metrics
}

// LoadWeather registers a weather condition's severity
func (t *MemoryTables) LoadWeather(condition string, record ports.WeatherRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.weather[textmatch.Normalize(condition)] = record
}

// Resources returns the pool for a situation, empty when unknown
func (t *MemoryTables) Resources(situationID string) []coa.ResourceRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resources[situationID]
}

// CivilianAreas returns the impacted areas at a location
func (t *MemoryTables) CivilianAreas(location string) []coa.CivilianArea {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.civilian[textmatch.Normalize(location)]
}

// Terrain returns the metrics for a location
func (t *MemoryTables) Terrain(location string) (ports.TerrainMetrics, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m, ok := t.terrain[textmatch.Normalize(location)]
	return m, ok
}

// Weather returns the record for a condition
func (t *MemoryTables) Weather(condition string) (ports.WeatherRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.weather[textmatch.Normalize(condition)]
	return r, ok
}
