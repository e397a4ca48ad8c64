package graph

import (
	"context"
	"sort"
	"sync"

	"coarank/domain/core"
	"coarank/domain/score"
)

// Edge is a directed, labeled relationship in the in-memory graph
type Edge struct {
	From       core.NodeID
	To         core.NodeID
	Relation   string
	Confidence float64
}

// MemoryGraph is an adjacency-list knowledge graph implementing
// ports.GraphPort. Safe for concurrent reads after construction.
type MemoryGraph struct {
	mu         sync.RWMutex
	outgoing   map[core.NodeID][]Edge
	attributes map[core.NodeID]map[string]string
}

// NewMemoryGraph creates an empty graph
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		outgoing:   make(map[core.NodeID][]Edge),
		attributes: make(map[core.NodeID]map[string]string),
	}
}

// AddEdge inserts a directed edge
func (g *MemoryGraph) AddEdge(from, to core.NodeID, relation string, confidence float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outgoing[from] = append(g.outgoing[from], Edge{From: from, To: to, Relation: relation, Confidence: confidence})
}

// SetAttributes records a node's attribute map
func (g *MemoryGraph) SetAttributes(node core.NodeID, attrs map[string]string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attributes[node] = attrs
}

// FindPath returns the edges of a shortest path from from to to, bounded by
// maxDepth hops. Empty when no path exists within the bound.
func (g *MemoryGraph) FindPath(ctx context.Context, from, to core.NodeID, maxDepth int) ([]score.ChainEdge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if from == to {
		return nil, nil
	}

	// BFS with parent-edge tracking gives shortest hop count
	type visit struct {
		node  core.NodeID
		depth int
	}
	parents := map[core.NodeID]Edge{}
	visited := map[core.NodeID]bool{from: true}
	queue := []visit{{node: from, depth: 0}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]
		if current.depth >= maxDepth {
			continue
		}
		for _, edge := range g.outgoing[current.node] {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			parents[edge.To] = edge
			if edge.To == to {
				return g.reconstruct(from, to, parents), nil
			}
			queue = append(queue, visit{node: edge.To, depth: current.depth + 1})
		}
	}
	return nil, nil
}

func (g *MemoryGraph) reconstruct(from, to core.NodeID, parents map[core.NodeID]Edge) []score.ChainEdge {
	var reversed []score.ChainEdge
	node := to
	for node != from {
		edge, ok := parents[node]
		if !ok {
			return nil
		}
		reversed = append(reversed, score.ChainEdge{
			From: edge.From, To: edge.To, Relation: edge.Relation, Confidence: edge.Confidence,
		})
		node = edge.From
	}
	out := make([]score.ChainEdge, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		out = append(out, reversed[i])
	}
	return out
}

// FindSharedContext returns edge pairs linking both nodes to common
// neighbors, in deterministic neighbor order
func (g *MemoryGraph) FindSharedContext(ctx context.Context, from, to core.NodeID) ([]score.ChainEdge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fromEdges := map[core.NodeID]Edge{}
	for _, e := range g.outgoing[from] {
		fromEdges[e.To] = e
	}

	var shared []core.NodeID
	toEdges := map[core.NodeID]Edge{}
	for _, e := range g.outgoing[to] {
		if _, ok := fromEdges[e.To]; ok {
			if _, dup := toEdges[e.To]; !dup {
				shared = append(shared, e.To)
				toEdges[e.To] = e
			}
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	var out []score.ChainEdge
	for _, neighbor := range shared {
		fe := fromEdges[neighbor]
		te := toEdges[neighbor]
		out = append(out,
			score.ChainEdge{From: fe.From, To: fe.To, Relation: fe.Relation, Confidence: fe.Confidence},
			score.ChainEdge{From: te.From, To: te.To, Relation: te.Relation, Confidence: te.Confidence},
		)
	}
	return out, nil
}

// AttributesOf returns a copy of a node's attributes
func (g *MemoryGraph) AttributesOf(ctx context.Context, node core.NodeID) (map[string]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	attrs := make(map[string]string, len(g.attributes[node]))
	for k, v := range g.attributes[node] {
		attrs[k] = v
	}
	return attrs, nil
}
