package loader_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/loader"
	"github.com/matzehuels/graphload/pkg/pool"
	"github.com/matzehuels/graphload/pkg/source"
	"github.com/matzehuels/graphload/pkg/source/memory"
)

func ExampleLoader_Load() {
	src := memory.New("example")
	src.AddNode(source.NodeRecord{ID: 1, Labels: []string{"Person"}})
	src.AddNode(source.NodeRecord{ID: 2, Labels: []string{"Person"}})
	src.AddRelationship(source.RelationshipRecord{
		ID: 1, Type: "FOLLOWS", StartID: 1, EndID: 2,
		Properties: map[string]any{"weight": 0.8},
	})

	opts := loadconfig.DefaultOptions()
	opts.RelationshipType = loadconfig.Some("FOLLOWS")
	opts.Direction = loadconfig.Outgoing
	opts.RelationWeightProperty = loadconfig.Some("weight")
	opts.Executor = pool.New(2)
	opts.Concurrency = 2

	res, err := loader.New(src).Load(context.Background(), loadconfig.New(opts))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	w, _ := res.Graph.Weight(0, 1, graph.Outgoing)
	fmt.Println("nodes:", res.Graph.NodeCount())
	fmt.Println("relationships:", res.Graph.RelationshipCount())
	fmt.Println("weight:", w)
	// Output:
	// nodes: 2
	// relationships: 1
	// weight: 0.8
}
