package chain

import (
	"context"
	"strings"
	"sync"

	"coarank/domain/core"
	"coarank/domain/score"
	"coarank/internal/textmatch"
	"coarank/ports"
)

// DefaultMaxDepth bounds the direct path search
const DefaultMaxDepth = 4

type cacheKey struct {
	situation core.SituationID
	candidate core.CandidateID
}

// Cache memoizes graph-chain lookups for one pipeline run. Writes are keyed
// by (situation, candidate) and idempotent, so a coarse mutex suffices for
// the Pass-2 worker pool. Clear at the start of each run.
type Cache struct {
	graph    ports.GraphPort
	maxDepth int

	mu      sync.Mutex
	results map[cacheKey]score.ChainResult
}

// NewCache creates a per-run chain lookup cache
func NewCache(graph ports.GraphPort, maxDepth int) *Cache {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Cache{
		graph:    graph,
		maxDepth: maxDepth,
		results:  make(map[cacheKey]score.ChainResult),
	}
}

// Clear drops all memoized results
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[cacheKey]score.ChainResult)
}

// Lookup returns the chain between a situation and a candidate, memoized.
// An empty chain is a valid outcome; the error is non-nil only when the
// graph collaborator is unreachable (callers degrade to an empty chain).
func (c *Cache) Lookup(ctx context.Context, situationID core.SituationID, candidateID core.CandidateID) (score.ChainResult, error) {
	key := cacheKey{situation: situationID, candidate: candidateID}

	c.mu.Lock()
	if cached, ok := c.results[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	result, err := c.resolve(ctx, situationID, candidateID)
	if err != nil {
		return score.EmptyChain(), err
	}

	c.mu.Lock()
	c.results[key] = result
	c.mu.Unlock()
	return result, nil
}

func (c *Cache) resolve(ctx context.Context, situationID core.SituationID, candidateID core.CandidateID) (score.ChainResult, error) {
	if c.graph == nil {
		return score.EmptyChain(), core.ErrGraphUnavailable
	}

	from := core.NodeID(situationID)
	to := core.NodeID(candidateID)

	edges, err := c.graph.FindPath(ctx, from, to, c.maxDepth)
	if err != nil {
		return score.EmptyChain(), err
	}
	if len(edges) > 0 {
		return summarize(situationID, edges, score.ChainDirect, 1), nil
	}

	shared, err := c.graph.FindSharedContext(ctx, from, to)
	if err != nil {
		return score.EmptyChain(), err
	}
	if len(shared) > 0 {
		// Shared-context edges come in pairs (situation->n, candidate->n);
		// each pair is one connecting path.
		pathCount := len(shared) / 2
		if pathCount == 0 {
			pathCount = 1
		}
		return summarize(situationID, shared, score.ChainShared, pathCount), nil
	}

	// Absence of a chain is a valid, scoreable outcome
	return score.EmptyChain(), nil
}

func summarize(situationID core.SituationID, edges []score.ChainEdge, source score.ChainSource, pathCount int) score.ChainResult {
	confSum := 0.0
	for _, e := range edges {
		confSum += e.Confidence
	}
	return score.ChainResult{
		Edges:         edges,
		Source:        source,
		PathCount:     pathCount,
		AvgConfidence: confSum / float64(len(edges)),
		Relevance:     nodeRelevance(situationID, edges),
	}
}

// nodeRelevance is the direct id/keyword-overlap fallback used when no
// external relevance mapper is injected
func nodeRelevance(situationID core.SituationID, edges []score.ChainEdge) float64 {
	var sb strings.Builder
	for _, e := range edges {
		sb.WriteString(e.From.String())
		sb.WriteString(" ")
		sb.WriteString(e.To.String())
		sb.WriteString(" ")
		sb.WriteString(e.Relation)
		sb.WriteString(" ")
	}
	return textmatch.Jaccard(situationID.String(), sb.String())
}
