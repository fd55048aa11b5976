// Package graph provides the in-memory weighted graph a load produces.
//
// A [Graph] is immutable once built. Nodes are addressed by dense mapped IDs
// in the range [0, NodeCount()); the original IDs reported by the source are
// kept alongside so results can be translated back with [Graph.ToOriginal]
// and [Graph.ToMapped].
//
// # Core Types
//
//   - [Graph]: node weights, node properties and per-direction adjacency
//   - [Builder]: single-writer construction with parallel edge handling
//   - [Direction]: which adjacency (outgoing or incoming) a query reads
//   - [Snapshot]: the JSON wire format used for caching and export
//
// # Building
//
//	b := graph.NewBuilder(graph.BuilderOptions{Outgoing: true})
//	b.AddNode(42, 1.0, 1.0)
//	b.AddNode(7, 1.0, 1.0)
//	b.AddRelationship(graph.Outgoing, 42, 7, 2.5)
//	g := b.Build()
//
// Relationships between the same ordered pair in the same direction collapse
// into one. With Accumulate set their weights are summed; otherwise the last
// weight added wins.
//
// # Serialization
//
// Graphs use a flat JSON format keyed by original IDs:
//
//	{
//	  "directions": ["outgoing"],
//	  "nodes": [{"id": 42, "weight": 1, "property": 1}],
//	  "relationships": [{"direction": "outgoing", "from": 42, "to": 7, "weight": 2.5}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("graph.json")   // File → Graph
//	graph.WriteFile(g, "output.json")      // Graph → File
//	data, _ := graph.Marshal(g)            // Graph → []byte
//	parsed, _ := graph.Unmarshal(data)     // []byte → Graph
//
// # Concurrency
//
// A built Graph is safe for concurrent reads. A Builder is not safe for
// concurrent use.
package graph
