package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"coarank/adapters/tabular"
	"coarank/domain/coa"
	"coarank/internal/errors"
	"coarank/ports"
)

// Sheet names the loader understands
const (
	SheetResources = "Resources"
	SheetCivilian  = "CivilianAreas"
	SheetTerrain   = "Terrain"
	SheetWeather   = "Weather"
)

// LoadTables reads the tabular collaborator inputs from a workbook into
// in-memory tables. Missing sheets are skipped; dependent dimensions then
// degrade to defaults.
func LoadTables(path string) (*tabular.MemoryTables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open workbook %s", path)
	}
	defer f.Close()

	tables := tabular.NewMemoryTables()

	if rows, err := f.GetRows(SheetResources); err == nil {
		loadResources(tables, rows)
	}
	if rows, err := f.GetRows(SheetCivilian); err == nil {
		loadCivilian(tables, rows)
	}
	if rows, err := f.GetRows(SheetTerrain); err == nil {
		loadTerrain(tables, rows)
	}
	if rows, err := f.GetRows(SheetWeather); err == nil {
		loadWeather(tables, rows)
	}
	return tables, nil
}

// loadResources expects: situation_id, id, category, level, capability, morale, aliases
func loadResources(tables *tabular.MemoryTables, rows [][]string) {
	pools := make(map[string][]coa.ResourceRecord)
	for _, row := range dataRows(rows) {
		if len(row) < 4 {
			continue
		}
		record := coa.ResourceRecord{
			ID:       strings.TrimSpace(row[1]),
			Category: strings.TrimSpace(row[2]),
			Level:    strings.TrimSpace(row[3]),
		}
		if len(row) > 4 {
			record.Capability = parseProxy(row[4])
		}
		if len(row) > 5 {
			record.Morale = parseProxy(row[5])
		}
		if len(row) > 6 && strings.TrimSpace(row[6]) != "" {
			record.Aliases = splitList(row[6])
		}
		situationID := strings.TrimSpace(row[0])
		pools[situationID] = append(pools[situationID], record)
	}
	for situationID, pool := range pools {
		tables.LoadResources(situationID, pool)
	}
}

// loadCivilian expects: location, id, name, priority, population_density
func loadCivilian(tables *tabular.MemoryTables, rows [][]string) {
	areas := make(map[string][]coa.CivilianArea)
	for _, row := range dataRows(rows) {
		if len(row) < 5 {
			continue
		}
		location := strings.TrimSpace(row[0])
		areas[location] = append(areas[location], coa.CivilianArea{
			ID:                strings.TrimSpace(row[1]),
			Name:              strings.TrimSpace(row[2]),
			Priority:          parseFloat(row[3]),
			PopulationDensity: parseFloat(row[4]),
		})
	}
	for location, list := range areas {
		tables.LoadCivilianAreas(location, list)
	}
}

// loadTerrain expects: location, mobility, defense_advantage, observation, key_point_value
func loadTerrain(tables *tabular.MemoryTables, rows [][]string) {
	for _, row := range dataRows(rows) {
		if len(row) < 5 {
			continue
		}
		tables.LoadTerrain(strings.TrimSpace(row[0]), ports.TerrainMetrics{
			Mobility:         parseFloat(row[1]),
			DefenseAdvantage: parseFloat(row[2]),
			Observation:      parseFloat(row[3]),
			KeyPointValue:    parseFloat(row[4]),
		})
	}
}

// loadWeather expects: condition, severity
func loadWeather(tables *tabular.MemoryTables, rows [][]string) {
	for _, row := range dataRows(rows) {
		if len(row) < 2 {
			continue
		}
		condition := strings.TrimSpace(row[0])
		tables.LoadWeather(condition, ports.WeatherRecord{
			Condition: condition,
			Severity:  parseFloat(row[1]),
		})
	}
}

// dataRows skips the header row
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseProxy(s string) *float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &v
}

func splitList(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
