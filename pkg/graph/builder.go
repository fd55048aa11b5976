package graph

import (
	"fmt"

	"github.com/matzehuels/graphload/pkg/memtrack"
)

// BuilderOptions configures a [Builder].
type BuilderOptions struct {
	Outgoing   bool // keep the outgoing adjacency
	Incoming   bool // keep the incoming adjacency
	Accumulate bool // sum parallel relationship weights instead of keeping the last

	// ExpectedNodes presizes the node arrays.
	ExpectedNodes int

	// Tracker receives the size of the built graph. nil means memtrack.Empty.
	Tracker memtrack.Tracker
}

type pair struct{ source, target int }

// Builder assembles a [Graph]. Nodes must be added before the relationships
// that reference them.
type Builder struct {
	opts BuilderOptions
	g    *Graph
	seen [2]map[pair]int // position of an existing relationship in targets[source]
}

// NewBuilder creates an empty builder.
func NewBuilder(opts BuilderOptions) *Builder {
	if opts.Tracker == nil {
		opts.Tracker = memtrack.Empty
	}
	n := max(opts.ExpectedNodes, 0)
	b := &Builder{
		opts: opts,
		g: &Graph{
			original:       make([]int64, 0, n),
			index:          make(map[int64]int, n),
			nodeWeights:    make([]float64, 0, n),
			nodeProperties: make([]float64, 0, n),
		},
	}
	if opts.Outgoing {
		b.g.adj[Outgoing] = newAdjacency(0)
		b.seen[Outgoing] = make(map[pair]int)
	}
	if opts.Incoming {
		b.g.adj[Incoming] = newAdjacency(0)
		b.seen[Incoming] = make(map[pair]int)
	}
	return b
}

// AddNode adds a node and returns its mapped ID.
func (b *Builder) AddNode(original int64, weight, property float64) (int, error) {
	if _, ok := b.g.index[original]; ok {
		return 0, fmt.Errorf("%w: %d", ErrDuplicateNode, original)
	}
	id := len(b.g.original)
	b.g.original = append(b.g.original, original)
	b.g.index[original] = id
	b.g.nodeWeights = append(b.g.nodeWeights, weight)
	b.g.nodeProperties = append(b.g.nodeProperties, property)
	for _, a := range b.g.adj {
		if a != nil {
			a.targets = append(a.targets, nil)
			a.weights = append(a.weights, nil)
		}
	}
	return id, nil
}

// HasNode reports whether a node with the original ID was added.
func (b *Builder) HasNode(original int64) bool {
	_, ok := b.g.index[original]
	return ok
}

// NodeCount returns the number of nodes added so far.
func (b *Builder) NodeCount() int { return len(b.g.original) }

// AddRelationship records a relationship between two original IDs in
// direction d. For Outgoing, from is the start node; for Incoming, from is
// the end node and to the start node.
func (b *Builder) AddRelationship(d Direction, from, to int64, weight float64) error {
	if d < Outgoing || d > Incoming || b.g.adj[d] == nil {
		return fmt.Errorf("%w: %s", ErrDirectionNotLoaded, d)
	}
	src, ok := b.g.index[from]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, from)
	}
	tgt, ok := b.g.index[to]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, to)
	}

	a := b.g.adj[d]
	key := pair{src, tgt}
	if pos, ok := b.seen[d][key]; ok {
		if b.opts.Accumulate {
			a.weights[src][pos] += weight
		} else {
			a.weights[src][pos] = weight
		}
		return nil
	}
	b.seen[d][key] = len(a.targets[src])
	a.targets[src] = append(a.targets[src], tgt)
	a.weights[src] = append(a.weights[src], weight)
	a.count++
	return nil
}

// Build finalizes the graph and reports its size to the tracker.
// The builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	g := b.g
	switch {
	case g.adj[Outgoing] != nil:
		g.relCount = g.adj[Outgoing].count
	case g.adj[Incoming] != nil:
		g.relCount = g.adj[Incoming].count
	}
	b.opts.Tracker.Add(g.MemoryUsage())
	b.g = nil
	b.seen = [2]map[pair]int{}
	return g
}
