package score

import "coarank/domain/core"

// ChainSource records which search produced a chain
type ChainSource string

const (
	ChainDirect ChainSource = "direct"
	ChainShared ChainSource = "shared_context"
	ChainNone   ChainSource = "none"
)

// ChainEdge is one relationship hop between graph nodes
type ChainEdge struct {
	From       core.NodeID `json:"from"`
	To         core.NodeID `json:"to"`
	Relation   string      `json:"relation"`
	Confidence float64     `json:"confidence"` // [0,1]
}

// ChainResult summarizes graph connectivity between a situation and a
// candidate. An empty result is a valid, scoreable outcome.
type ChainResult struct {
	Edges         []ChainEdge `json:"edges,omitempty"`
	Source        ChainSource `json:"source"`
	PathCount     int         `json:"path_count"`
	AvgConfidence float64     `json:"avg_confidence"`
	Relevance     float64     `json:"relevance"`
}

// Found reports whether any chain connects the pair
func (c ChainResult) Found() bool {
	return len(c.Edges) > 0
}

// EmptyChain returns the explicit no-chain result
func EmptyChain() ChainResult {
	return ChainResult{Source: ChainNone}
}
