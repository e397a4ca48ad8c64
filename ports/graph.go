package ports

import (
	"context"

	"coarank/domain/core"
	"coarank/domain/score"
)

// GraphPort queries the external knowledge graph. Implementations return
// empty slices (not errors) when no connectivity exists; errors are reserved
// for the collaborator being unreachable.
type GraphPort interface {
	// FindPath returns the edges of a shortest path between two nodes,
	// bounded by maxDepth hops. Empty when no path exists.
	FindPath(ctx context.Context, from, to core.NodeID, maxDepth int) ([]score.ChainEdge, error)

	// FindSharedContext returns edges linking both nodes to common
	// neighbors. Empty when the nodes share no context.
	FindSharedContext(ctx context.Context, from, to core.NodeID) ([]score.ChainEdge, error)

	// AttributesOf returns the attribute map of a node
	AttributesOf(ctx context.Context, node core.NodeID) (map[string]string, error)
}
