// Package loadconfig defines the configuration contract for loading a graph
// from a property-graph store into memory.
//
// A [Config] describes one load: which nodes and relationships to read, how
// to resolve weights and properties that are missing, and under which
// concurrency and instrumentation policy the load runs. It is immutable and
// performs no I/O; loaders consume it through its derived queries.
//
// # Construction
//
// There are three ways to build a Config:
//
//	cfg := loadconfig.Default()                 // everything, single-threaded
//	cfg := loadconfig.ForExecutor(pool.New(8))  // everything, in parallel
//	cfg := loadconfig.New(opts)                 // fully parameterized
//
// [DefaultOptions] is the single owner of default values. Derive custom
// options from it and override fields by name:
//
//	opts := loadconfig.DefaultOptions()
//	opts.StartLabel = loadconfig.Some("Person")
//	opts.RelationshipType = loadconfig.Some("FOLLOWS")
//	opts.Direction = loadconfig.Outgoing
//	opts.RelationWeightProperty = loadconfig.Some("weight")
//	cfg := loadconfig.New(opts)
//
// # Absent Values
//
// Filters and property keys are [Optional] values. An absent label or
// relationship type loads everything; an absent property key makes the loader
// use the matching default value for every node or relationship. The default
// values are never consulted when a property key is present, except for
// individual elements that lack the property.
//
// # Concurrency Policy
//
// The [Executor] is the only switch between sequential and parallel loading.
// Without one, [Config.EffectiveConcurrency] is 1 regardless of the requested
// concurrency. A batch size of -1 lets the loader choose how to partition the
// work; any positive value is a hint it should honor.
//
// # Instrumentation
//
// The logger receives progress messages no more often than LogMillis
// milliseconds; a value <= 0 disables periodic logging. The memory tracker
// receives allocation reports for the arrays built during the load.
//
// # Validation
//
// Config never fails. Garbage values such as a negative concurrency are stored
// unchanged. Loaders translate unusable values into their own errors.
package loadconfig
