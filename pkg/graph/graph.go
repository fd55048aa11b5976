package graph

import "github.com/matzehuels/graphload/pkg/memtrack"

// Graph is an immutable weighted graph with dense node IDs.
type Graph struct {
	original       []int64       // mapped -> original
	index          map[int64]int // original -> mapped
	nodeWeights    []float64
	nodeProperties []float64

	adj      [2]*adjacency // indexed by Direction; nil when not loaded
	relCount int
}

type adjacency struct {
	targets [][]int
	weights [][]float64
	count   int
}

func newAdjacency(n int) *adjacency {
	return &adjacency{
		targets: make([][]int, n),
		weights: make([][]float64, n),
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.original) }

// RelationshipCount returns the number of distinct relationships.
// When both directions are loaded each relationship is counted once.
func (g *Graph) RelationshipCount() int { return g.relCount }

// HasDirection reports whether the adjacency for d was loaded.
func (g *Graph) HasDirection(d Direction) bool {
	return d >= Outgoing && d <= Incoming && g.adj[d] != nil
}

// Directions returns the loaded directions, outgoing first.
func (g *Graph) Directions() []Direction {
	var out []Direction
	for _, d := range []Direction{Outgoing, Incoming} {
		if g.HasDirection(d) {
			out = append(out, d)
		}
	}
	return out
}

// ToMapped translates an original source ID into a mapped node ID.
func (g *Graph) ToMapped(original int64) (int, bool) {
	id, ok := g.index[original]
	return id, ok
}

// ToOriginal translates a mapped node ID back to the source ID.
func (g *Graph) ToOriginal(node int) int64 { return g.original[node] }

// NodeWeight returns the weight of a mapped node.
func (g *Graph) NodeWeight(node int) float64 { return g.nodeWeights[node] }

// NodeProperty returns the property value of a mapped node.
func (g *Graph) NodeProperty(node int) float64 { return g.nodeProperties[node] }

// Degree returns the number of relationships of node in direction d.
// It is 0 when d was not loaded.
func (g *Graph) Degree(node int, d Direction) int {
	if !g.HasDirection(d) {
		return 0
	}
	return len(g.adj[d].targets[node])
}

// ForEachRelationship calls fn for every relationship of node in direction d,
// in insertion order. Iteration stops when fn returns false.
func (g *Graph) ForEachRelationship(node int, d Direction, fn func(target int, weight float64) bool) {
	if !g.HasDirection(d) {
		return
	}
	a := g.adj[d]
	for i, t := range a.targets[node] {
		if !fn(t, a.weights[node][i]) {
			return
		}
	}
}

// Weight returns the weight of the relationship from source to target in
// direction d. For Incoming, source is the end node of the relationship.
func (g *Graph) Weight(source, target int, d Direction) (float64, bool) {
	if !g.HasDirection(d) {
		return 0, false
	}
	a := g.adj[d]
	for i, t := range a.targets[source] {
		if t == target {
			return a.weights[source][i], true
		}
	}
	return 0, false
}

// MemoryUsage estimates the bytes held by the graph arrays.
func (g *Graph) MemoryUsage() int64 {
	n := len(g.original)
	bytes := memtrack.SizeOfInt64Array(n) +
		memtrack.SizeOfFloat64Array(n)*2 +
		int64(n)*(memtrack.BytesPerInt64+memtrack.BytesPerInt)
	for _, a := range g.adj {
		if a == nil {
			continue
		}
		bytes += int64(n) * memtrack.BytesArrayHeader * 2
		for i := range a.targets {
			bytes += memtrack.SizeOfIntArray(len(a.targets[i])) - memtrack.BytesArrayHeader
			bytes += memtrack.SizeOfFloat64Array(len(a.weights[i])) - memtrack.BytesArrayHeader
		}
	}
	return bytes
}
