package textmatch

// KeyMatchThreshold is the minimum similarity for fuzzy key resolution
const KeyMatchThreshold = 0.5

// Table is a data-driven two-key lookup (rowKey x colKey -> weight) with
// fuzzy key resolution. Row and column keys are stored normalized.
type Table struct {
	rows map[string]map[string]float64
}

// NewTable builds a table from literal rows, normalizing every key
func NewTable(rows map[string]map[string]float64) *Table {
	normalized := make(map[string]map[string]float64, len(rows))
	for rowKey, cols := range rows {
		normCols := make(map[string]float64, len(cols))
		for colKey, weight := range cols {
			normCols[Normalize(colKey)] = weight
		}
		normalized[Normalize(rowKey)] = normCols
	}
	return &Table{rows: normalized}
}

// Lookup resolves both keys fuzzily and returns the stored weight.
// The second return is false when either key cannot be resolved.
func (t *Table) Lookup(rowKey, colKey string) (float64, bool) {
	row, ok := t.resolveRow(rowKey)
	if !ok {
		return 0, false
	}
	weight, ok := resolveIn(row, colKey)
	return weight, ok
}

// RowKeys returns the normalized row keys that fuzzily match the given key
func (t *Table) resolveRow(key string) (map[string]float64, bool) {
	norm := Normalize(key)
	if row, ok := t.rows[norm]; ok {
		return row, true
	}
	bestScore := 0.0
	var best map[string]float64
	for rowKey, row := range t.rows {
		if s := Similarity(norm, rowKey); s > bestScore {
			bestScore = s
			best = row
		}
	}
	if bestScore >= KeyMatchThreshold {
		return best, true
	}
	return nil, false
}

func resolveIn(row map[string]float64, key string) (float64, bool) {
	norm := Normalize(key)
	if w, ok := row[norm]; ok {
		return w, true
	}
	bestScore := 0.0
	bestWeight := 0.0
	for colKey, w := range row {
		if s := Similarity(norm, colKey); s > bestScore {
			bestScore = s
			bestWeight = w
		}
	}
	if bestScore >= KeyMatchThreshold {
		return bestWeight, true
	}
	return 0, false
}
