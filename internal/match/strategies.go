package match

import (
	"coarank/domain/coa"
	"coarank/internal/textmatch"
)

// Confidence levels per matching strategy, in falling priority order
const (
	ConfidenceExact      = 1.0
	ConfidenceAttribute  = 0.8
	ConfidenceHierarchy  = 0.6
	ConfidenceSimilarity = 0.4 // scaled by the similarity value

	// SimilarityFloor is the minimum token-set overlap the similarity
	// strategy accepts
	SimilarityFloor = 0.5
)

// Strategy matches one required token against one available record and
// returns a confidence in [0,1], 0 meaning no match. Strategies are
// independently testable and iterated in priority order.
type Strategy interface {
	Name() string
	TryMatch(token string, record coa.ResourceRecord) float64
}

// DefaultStrategies returns the ordered strategy list: exact id, attribute
// rule, hierarchy intersection, token-set similarity.
func DefaultStrategies() []Strategy {
	return []Strategy{
		exactIDStrategy{},
		attributeStrategy{},
		hierarchyStrategy{},
		similarityStrategy{},
	}
}

// exactIDStrategy matches when the token and record id contain each other
type exactIDStrategy struct{}

func (exactIDStrategy) Name() string { return "exact_id" }

func (exactIDStrategy) TryMatch(token string, record coa.ResourceRecord) float64 {
	if textmatch.Contains(record.ID, token) || textmatch.Contains(token, record.ID) {
		return ConfidenceExact
	}
	return 0
}

// attributeStrategy applies the category+level rule: some token word must
// appear in the record category, and some token word must appear in the
// record level unless the level is unspecified.
type attributeStrategy struct{}

func (attributeStrategy) Name() string { return "attribute" }

func (attributeStrategy) TryMatch(token string, record coa.ResourceRecord) float64 {
	words := textmatch.Tokens(token)
	if len(words) == 0 || record.Category == "" {
		return 0
	}
	categoryHit := false
	levelHit := textmatch.Normalize(record.Level) == ""
	for _, w := range words {
		if textmatch.Contains(record.Category, w) {
			categoryHit = true
		}
		if textmatch.Contains(record.Level, w) {
			levelHit = true
		}
	}
	if categoryHit && levelHit {
		return ConfidenceAttribute
	}
	return 0
}

// hierarchyStrategy matches when a broader/narrower alternative of the token
// intersects the record's category text
type hierarchyStrategy struct{}

func (hierarchyStrategy) Name() string { return "hierarchy" }

func (hierarchyStrategy) TryMatch(token string, record coa.ResourceRecord) float64 {
	text := record.SearchText()
	for _, alt := range Alternatives(token) {
		for _, w := range textmatch.Tokens(alt) {
			if textmatch.Contains(text, w) && textmatch.Contains(record.Category, w) {
				return ConfidenceHierarchy
			}
		}
	}
	return 0
}

// similarityStrategy falls back to token-set overlap over the record's
// searchable text
type similarityStrategy struct{}

func (similarityStrategy) Name() string { return "similarity" }

func (similarityStrategy) TryMatch(token string, record coa.ResourceRecord) float64 {
	sim := textmatch.Jaccard(token, record.SearchText())
	if sim >= SimilarityFloor {
		return ConfidenceSimilarity * sim
	}
	return 0
}
