package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/graphload/pkg/graph"
)

func ExampleBuilder() {
	b := graph.NewBuilder(graph.BuilderOptions{Outgoing: true, Accumulate: true})
	b.AddNode(42, 1, 1)
	b.AddNode(7, 1, 1)
	b.AddRelationship(graph.Outgoing, 42, 7, 2)
	b.AddRelationship(graph.Outgoing, 42, 7, 3)
	g := b.Build()

	src, _ := g.ToMapped(42)
	tgt, _ := g.ToMapped(7)
	w, _ := g.Weight(src, tgt, graph.Outgoing)
	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("relationships:", g.RelationshipCount())
	fmt.Println("weight:", w)
	// Output:
	// nodes: 2
	// relationships: 1
	// weight: 5
}

func ExampleWrite() {
	b := graph.NewBuilder(graph.BuilderOptions{Outgoing: true})
	b.AddNode(42, 1, 1)
	b.AddNode(7, 2, 0)
	b.AddRelationship(graph.Outgoing, 42, 7, 2.5)

	if err := graph.Write(b.Build(), os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "directions": [
	//     "outgoing"
	//   ],
	//   "nodes": [
	//     {
	//       "id": 42,
	//       "weight": 1,
	//       "property": 1
	//     },
	//     {
	//       "id": 7,
	//       "weight": 2,
	//       "property": 0
	//     }
	//   ],
	//   "relationships": [
	//     {
	//       "direction": "outgoing",
	//       "from": 42,
	//       "to": 7,
	//       "weight": 2.5
	//     }
	//   ]
	// }
}
