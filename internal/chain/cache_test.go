package chain

import (
	"context"
	"errors"
	"math"
	"testing"

	"coarank/domain/core"
	"coarank/domain/score"
)

// fakeGraph counts calls and serves canned edges
type fakeGraph struct {
	pathCalls   int
	sharedCalls int
	pathEdges   []score.ChainEdge
	sharedEdges []score.ChainEdge
	err         error
}

func (f *fakeGraph) FindPath(ctx context.Context, from, to core.NodeID, maxDepth int) ([]score.ChainEdge, error) {
	f.pathCalls++
	return f.pathEdges, f.err
}

func (f *fakeGraph) FindSharedContext(ctx context.Context, from, to core.NodeID) ([]score.ChainEdge, error) {
	f.sharedCalls++
	return f.sharedEdges, f.err
}

func (f *fakeGraph) AttributesOf(ctx context.Context, node core.NodeID) (map[string]string, error) {
	return nil, nil
}

func TestCache_MemoizesDirectPath(t *testing.T) {
	graph := &fakeGraph{pathEdges: []score.ChainEdge{
		{From: "sit-1", To: "mid", Relation: "threatens", Confidence: 0.9},
		{From: "mid", To: "coa-1", Relation: "countered_by", Confidence: 0.7},
	}}
	cache := NewCache(graph, 4)
	ctx := context.Background()

	first, err := cache.Lookup(ctx, "sit-1", "coa-1")
	if err != nil {
		t.Fatal(err)
	}
	if first.Source != score.ChainDirect {
		t.Errorf("expected direct chain, got %s", first.Source)
	}
	if first.PathCount != 1 {
		t.Errorf("expected 1 path, got %d", first.PathCount)
	}
	if math.Abs(first.AvgConfidence-0.8) > 1e-9 {
		t.Errorf("expected avg confidence 0.8, got %.2f", first.AvgConfidence)
	}

	second, err := cache.Lookup(ctx, "sit-1", "coa-1")
	if err != nil {
		t.Fatal(err)
	}
	if graph.pathCalls != 1 {
		t.Errorf("expected memoized second lookup, graph queried %d times", graph.pathCalls)
	}
	if len(second.Edges) != len(first.Edges) {
		t.Error("memoized result drifted")
	}
}

func TestCache_SharedContextFallback(t *testing.T) {
	graph := &fakeGraph{sharedEdges: []score.ChainEdge{
		{From: "sit-1", To: "sector-9", Relation: "located_in", Confidence: 0.8},
		{From: "coa-1", To: "sector-9", Relation: "applies_to", Confidence: 0.6},
	}}
	cache := NewCache(graph, 4)

	result, err := cache.Lookup(context.Background(), "sit-1", "coa-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != score.ChainShared {
		t.Errorf("expected shared-context chain, got %s", result.Source)
	}
	if result.PathCount != 1 {
		t.Errorf("expected 1 shared path, got %d", result.PathCount)
	}
}

func TestCache_EmptyChainIsValidOutcome(t *testing.T) {
	graph := &fakeGraph{}
	cache := NewCache(graph, 4)

	result, err := cache.Lookup(context.Background(), "sit-1", "coa-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Found() {
		t.Error("expected empty chain")
	}
	if result.Source != score.ChainNone {
		t.Errorf("expected source none, got %s", result.Source)
	}

	// Empty outcomes are memoized too
	if _, err := cache.Lookup(context.Background(), "sit-1", "coa-1"); err != nil {
		t.Fatal(err)
	}
	if graph.pathCalls != 1 {
		t.Errorf("expected memoized empty result, graph queried %d times", graph.pathCalls)
	}
}

func TestCache_ClearDropsResults(t *testing.T) {
	graph := &fakeGraph{}
	cache := NewCache(graph, 4)
	ctx := context.Background()

	if _, err := cache.Lookup(ctx, "sit-1", "coa-1"); err != nil {
		t.Fatal(err)
	}
	cache.Clear()
	if _, err := cache.Lookup(ctx, "sit-1", "coa-1"); err != nil {
		t.Fatal(err)
	}
	if graph.pathCalls != 2 {
		t.Errorf("expected re-query after Clear, got %d calls", graph.pathCalls)
	}
}

func TestCache_GraphErrorNotCached(t *testing.T) {
	graph := &fakeGraph{err: errors.New("graph down")}
	cache := NewCache(graph, 4)

	result, err := cache.Lookup(context.Background(), "sit-1", "coa-1")
	if err == nil {
		t.Fatal("expected collaborator error")
	}
	if result.Found() {
		t.Error("expected empty chain alongside the error")
	}

	// Errors must not poison the cache; a recovered graph is queried again
	graph.err = nil
	if _, err := cache.Lookup(context.Background(), "sit-1", "coa-1"); err != nil {
		t.Fatal(err)
	}
	if graph.pathCalls != 2 {
		t.Errorf("expected re-query after error, got %d calls", graph.pathCalls)
	}
}
