// Package loader materializes a [graph.Graph] from a [source.Source] as
// described by a [loadconfig.Config].
//
// # Load Phases
//
//  1. Validate the configuration values the loader cannot honor
//  2. Look up a cached graph for the same source and configuration
//  3. Scan nodes with the label filter and resolve node weights and properties
//  4. Partition the nodes into batches and fetch their relationships for each
//     loaded direction, in parallel when the configuration carries an executor
//  5. Merge the batches in order into the graph
//
// Batches are merged in batch order whatever order they finish in, so
// a parallel load and a sequential load of the same source produce the same
// graph.
//
// # Relationship Rules
//
// Only relationships whose two endpoints were loaded are kept. Relationships
// between the same pair of nodes in the same direction collapse into one:
// their weights are summed when the configuration accumulates weights,
// otherwise the last one wins.
//
// # Usage
//
//	src, _ := memory.ReadFile("graph.json")
//	l := loader.New(src, loader.WithCache(fileCache))
//	res, err := l.Load(ctx, loadconfig.ForExecutor(pool.New(8)))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Graph.NodeCount(), res.Stats.Duration)
//
// # Errors
//
// Validation failures carry codes from pkg/errors:
//
//	INVALID_BATCH_SIZE     batch size is neither -1 nor positive
//	INVALID_CONCURRENCY    an executor is set but the concurrency is below 1
//	INVALID_PROPERTY       a configured property key is malformed
//	INVALID_LABEL          a label or relationship type is malformed
//	UNRESOLVABLE_PROPERTY  the source does not know a configured property key
//	SOURCE_ERROR           the source failed
//	CANCELED               the context was canceled
package loader
