package ports

// RelevanceMapperPort maps a (coaType, threatType) pair to a relevance score
// in [0,1]. Optional; consumers fall back to string-similarity heuristics
// when nil.
type RelevanceMapperPort interface {
	Relevance(coaType, threatType string) (float64, bool)
}

// SnippetPort supplies retrieved text snippets about a candidate, used by the
// historical-success keyword heuristic. Optional.
type SnippetPort interface {
	Snippets(candidateID string) []string
}
