package loadconfig_test

import (
	"fmt"

	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/pool"
)

func ExampleDefault() {
	cfg := loadconfig.Default()

	fmt.Println("any label:", cfg.LoadsAnyLabel())
	fmt.Println("concurrent:", cfg.IsConcurrent())
	fmt.Println("concurrency:", cfg.EffectiveConcurrency())
	fmt.Println("default weight:", cfg.RelationDefaultWeight())
	// Output:
	// any label: true
	// concurrent: false
	// concurrency: 1
	// default weight: 1
}

func ExampleNew() {
	opts := loadconfig.DefaultOptions()
	opts.RelationshipType = loadconfig.Some("FOLLOWS")
	opts.Direction = loadconfig.Outgoing
	opts.RelationWeightProperty = loadconfig.Some("weight")
	cfg := loadconfig.New(opts)

	fmt.Println("any type:", cfg.LoadsAnyRelationshipType())
	fmt.Println("outgoing:", cfg.LoadOutgoing())
	fmt.Println("incoming:", cfg.LoadIncoming())
	fmt.Println("default weight:", cfg.UsesDefaultRelationshipWeight())
	// Output:
	// any type: false
	// outgoing: true
	// incoming: false
	// default weight: false
}

func ExampleForExecutor() {
	opts := loadconfig.DefaultOptions()
	opts.Executor = pool.New(4)
	opts.Concurrency = 4
	cfg := loadconfig.New(opts)

	fmt.Println("concurrent:", cfg.IsConcurrent())
	fmt.Println("concurrency:", cfg.EffectiveConcurrency())
	// Output:
	// concurrent: true
	// concurrency: 4
}
