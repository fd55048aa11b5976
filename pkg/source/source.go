// Package source defines where graph loads read their data from.
//
// A [Source] answers two kinds of queries: node scans filtered by label, and
// relationship lookups for a batch of nodes filtered by type and direction.
// The loader issues one node scan per load and one relationship lookup per
// batch and direction, possibly in parallel, so implementations must be safe
// for concurrent use.
//
// Implementations live in subpackages:
//
//   - source/memory: in-memory property graph and JSON dump files
//   - source/neo4j: Neo4j over Bolt
//   - source/postgres: PostgreSQL node and relationship tables
//   - source/mongo: MongoDB node and relationship collections
package source

import (
	"context"

	"github.com/matzehuels/graphload/pkg/graph"
)

// NodeRecord is a node as reported by a source.
type NodeRecord struct {
	ID         int64
	Labels     []string
	Properties map[string]any
}

// RelationshipRecord is a relationship as reported by a source.
type RelationshipRecord struct {
	ID         int64
	Type       string
	StartID    int64
	EndID      int64
	Properties map[string]any
}

// NodeQuery selects the nodes of a load.
type NodeQuery struct {
	Label      string         // "" matches every label
	Properties []string       // keys the loader reads; sources may return more
	Params     map[string]any // passed to the backing query unmodified
}

// RelationshipQuery selects the relationships attached to a batch of nodes.
type RelationshipQuery struct {
	Type string // "" matches every type

	// Direction selects how NodeIDs are matched: Outgoing matches start
	// nodes, Incoming matches end nodes.
	Direction  graph.Direction
	NodeIDs    []int64
	Properties []string
	Params     map[string]any
}

// Source reads nodes and relationships from a backing store.
type Source interface {
	// Nodes returns the nodes matching q in a stable order.
	Nodes(ctx context.Context, q NodeQuery) ([]NodeRecord, error)
	// Relationships returns the relationships of q.NodeIDs in a stable order.
	Relationships(ctx context.Context, q RelationshipQuery) ([]RelationshipRecord, error)
}

// PropertyKeys lists the property keys present in a source.
type PropertyKeys struct {
	Node         []string
	Relationship []string
}

// PropertyKeyLister is implemented by sources that can enumerate their
// property keys. Loaders use it to reject configured keys that cannot resolve.
type PropertyKeyLister interface {
	PropertyKeys(ctx context.Context) (PropertyKeys, error)
}

// Identifier is implemented by sources with a stable identity, used to scope
// cached loads.
type Identifier interface {
	SourceID() string
}
