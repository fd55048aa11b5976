package loadconfig

import (
	"context"
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphload/pkg/memtrack"
	"github.com/matzehuels/graphload/pkg/pool"
)

// =============================================================================
// Default Values - Single Source of Truth for Library and CLI
// =============================================================================

const (
	// DefaultWeight is the fallback for relationship weights, node weights and
	// node property values when no property key is configured.
	DefaultWeight = 1.0

	// DefaultBatchSize lets the loader pick a batch size.
	DefaultBatchSize = -1

	// DefaultLogMillis disables periodic progress logging.
	DefaultLogMillis = -1
)

// =============================================================================
// Executor - Execution Context
// =============================================================================

// Executor is the execution context for parallel loading.
// Its presence on a Config is the only switch between sequential and parallel
// loading. [pool.Pool] is the standard implementation.
type Executor interface {
	// Run executes tasks and returns the first error.
	Run(ctx context.Context, tasks []func(context.Context) error) error
	// Size returns the number of workers available.
	Size() int
}

// =============================================================================
// Options - Construction Parameters
// =============================================================================

// Options holds every parameter of a load configuration.
// Start from DefaultOptions and override fields by name:
//
//	opts := loadconfig.DefaultOptions()
//	opts.RelationshipType = loadconfig.Some("FOLLOWS")
//	opts.Direction = loadconfig.Outgoing
//	cfg := loadconfig.New(opts)
type Options struct {
	// Filters
	StartLabel       Optional[string] // node label filter; absent loads every label
	EndLabel         Optional[string] // reserved, stored but not consulted
	RelationshipType Optional[string] // relationship type filter; absent loads every type
	Direction        Direction

	// Weights and properties
	RelationWeightProperty   Optional[string]
	RelationDefaultWeight    float64
	NodeWeightProperty       Optional[string]
	NodeDefaultWeight        float64
	NodeProperty             Optional[string]
	NodeDefaultPropertyValue float64

	// Params are passed unmodified to the source queries.
	Params map[string]any

	// Concurrency
	Executor          Executor // nil loads sequentially
	Concurrency       int
	BatchSize         int  // -1 lets the loader decide
	AccumulateWeights bool // sum parallel relationship weights instead of keeping the last

	// Instrumentation
	Logger    *log.Logger
	LogMillis int64 // <= 0 disables periodic progress logging
	Tracker   memtrack.Tracker
}

// DefaultOptions returns options that load every label and relationship type
// in both directions, single-threaded, with all defaults set to 1.0.
func DefaultOptions() Options {
	return Options{
		Direction:                Both,
		RelationDefaultWeight:    DefaultWeight,
		NodeDefaultWeight:        DefaultWeight,
		NodeDefaultPropertyValue: DefaultWeight,
		Params:                   map[string]any{},
		Concurrency:              pool.DefaultConcurrency,
		BatchSize:                DefaultBatchSize,
		Logger:                   discardLogger(),
		LogMillis:                DefaultLogMillis,
		Tracker:                  memtrack.Empty,
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// =============================================================================
// Config - Immutable Load Configuration
// =============================================================================

// Config is the immutable description of one graph load.
// It performs no I/O and no validation: values are stored as given apart from
// normalizing nil params, logger and tracker. Loaders are responsible for
// rejecting values they cannot honor.
//
// A Config is safe for concurrent reads.
type Config struct {
	startLabel       Optional[string]
	endLabel         Optional[string]
	relationshipType Optional[string]
	loadIncoming     bool
	loadOutgoing     bool

	relationWeightProperty   Optional[string]
	relationDefaultWeight    float64
	nodeWeightProperty       Optional[string]
	nodeDefaultWeight        float64
	nodeProperty             Optional[string]
	nodeDefaultPropertyValue float64

	params map[string]any

	executor          Executor
	concurrency       int
	batchSize         int
	accumulateWeights bool

	logger    *log.Logger
	logMillis int64
	tracker   memtrack.Tracker
}

// New creates a Config from fully specified options.
func New(opts Options) *Config {
	in, out := opts.Direction.flags()

	params := map[string]any{}
	if opts.Params != nil {
		params = maps.Clone(opts.Params)
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	tracker := opts.Tracker
	if tracker == nil {
		tracker = memtrack.Empty
	}

	return &Config{
		startLabel:               opts.StartLabel,
		endLabel:                 opts.EndLabel,
		relationshipType:         opts.RelationshipType,
		loadIncoming:             in,
		loadOutgoing:             out,
		relationWeightProperty:   opts.RelationWeightProperty,
		relationDefaultWeight:    opts.RelationDefaultWeight,
		nodeWeightProperty:       opts.NodeWeightProperty,
		nodeDefaultWeight:        opts.NodeDefaultWeight,
		nodeProperty:             opts.NodeProperty,
		nodeDefaultPropertyValue: opts.NodeDefaultPropertyValue,
		params:                   params,
		executor:                 opts.Executor,
		concurrency:              opts.Concurrency,
		batchSize:                opts.BatchSize,
		accumulateWeights:        opts.AccumulateWeights,
		logger:                   logger,
		logMillis:                opts.LogMillis,
		tracker:                  tracker,
	}
}

// Default creates a Config that loads the whole graph single-threaded.
func Default() *Config {
	return New(DefaultOptions())
}

// ForExecutor creates a Config that loads the whole graph on exec, leaving
// the batch size to the loader.
func ForExecutor(exec Executor) *Config {
	opts := DefaultOptions()
	opts.Executor = exec
	return New(opts)
}

// =============================================================================
// Derived Queries
// =============================================================================

// IsConcurrent reports whether an executor is available.
func (c *Config) IsConcurrent() bool { return c.executor != nil }

// EffectiveConcurrency returns the parallelism a loader must use.
// It is 1 without an executor, whatever concurrency was requested.
func (c *Config) EffectiveConcurrency() int {
	if !c.IsConcurrent() {
		return 1
	}
	return c.concurrency
}

// UsesDefaultRelationshipWeight reports whether relationship weights come from
// RelationDefaultWeight because no weight property is configured.
func (c *Config) UsesDefaultRelationshipWeight() bool { return !c.relationWeightProperty.IsPresent() }

// UsesDefaultNodeWeight reports whether no node weight property is configured.
func (c *Config) UsesDefaultNodeWeight() bool { return !c.nodeWeightProperty.IsPresent() }

// UsesDefaultNodeProperty reports whether no node property is configured.
func (c *Config) UsesDefaultNodeProperty() bool { return !c.nodeProperty.IsPresent() }

// LoadsAnyLabel reports whether nodes of every label are loaded.
func (c *Config) LoadsAnyLabel() bool { return !c.startLabel.IsPresent() }

// LoadsAnyRelationshipType reports whether relationships of every type are loaded.
func (c *Config) LoadsAnyRelationshipType() bool { return !c.relationshipType.IsPresent() }

// =============================================================================
// Accessors
// =============================================================================

// StartLabel returns the label nodes must carry, if any.
func (c *Config) StartLabel() Optional[string] { return c.startLabel }

// EndLabel returns the stored end label. Loaders do not filter on it.
func (c *Config) EndLabel() Optional[string] { return c.endLabel }

// RelationshipType returns the relationship type to load, if any.
func (c *Config) RelationshipType() Optional[string] { return c.relationshipType }

// LoadIncoming reports whether incoming relationships are loaded.
func (c *Config) LoadIncoming() bool { return c.loadIncoming }

// LoadOutgoing reports whether outgoing relationships are loaded.
func (c *Config) LoadOutgoing() bool { return c.loadOutgoing }

// Direction reconstructs the direction from the two load flags.
func (c *Config) Direction() Direction { return directionOf(c.loadIncoming, c.loadOutgoing) }

// RelationWeightProperty returns the relationship property read as weight.
func (c *Config) RelationWeightProperty() Optional[string] { return c.relationWeightProperty }

// RelationDefaultWeight is the weight of relationships lacking the property.
func (c *Config) RelationDefaultWeight() float64 { return c.relationDefaultWeight }

// NodeWeightProperty returns the node property read as weight.
func (c *Config) NodeWeightProperty() Optional[string] { return c.nodeWeightProperty }

// NodeDefaultWeight is the weight of nodes lacking the property.
func (c *Config) NodeDefaultWeight() float64 { return c.nodeDefaultWeight }

// NodeProperty returns the node property read as value.
func (c *Config) NodeProperty() Optional[string] { return c.nodeProperty }

// NodeDefaultPropertyValue is the value of nodes lacking the property.
func (c *Config) NodeDefaultPropertyValue() float64 { return c.nodeDefaultPropertyValue }

// Params returns a copy of the parameter map. It is never nil.
func (c *Config) Params() map[string]any { return maps.Clone(c.params) }

// Executor returns the execution context, or nil for sequential loads.
func (c *Config) Executor() Executor { return c.executor }

// Concurrency returns the requested concurrency as stored.
// Loaders should call EffectiveConcurrency instead.
func (c *Config) Concurrency() int { return c.concurrency }

// BatchSize returns the nodes per batch, or DefaultBatchSize for automatic.
func (c *Config) BatchSize() int { return c.batchSize }

// AccumulateWeights reports whether parallel relationships sum their weights.
func (c *Config) AccumulateWeights() bool { return c.accumulateWeights }

// Logger returns the logger loads report to.
func (c *Config) Logger() *log.Logger { return c.logger }

// LogMillis returns the progress log interval in milliseconds.
func (c *Config) LogMillis() int64 { return c.logMillis }

// Tracker returns the memory tracker loaded graphs are charged to.
func (c *Config) Tracker() memtrack.Tracker { return c.tracker }

// ProgressLogging reports whether periodic progress logging is enabled.
func (c *Config) ProgressLogging() bool { return c.logMillis > 0 }

// Options returns the options this Config was built from, normalized.
// Modify the result and pass it to New to derive a variant.
func (c *Config) Options() Options {
	return Options{
		StartLabel:               c.startLabel,
		EndLabel:                 c.endLabel,
		RelationshipType:         c.relationshipType,
		Direction:                c.Direction(),
		RelationWeightProperty:   c.relationWeightProperty,
		RelationDefaultWeight:    c.relationDefaultWeight,
		NodeWeightProperty:       c.nodeWeightProperty,
		NodeDefaultWeight:        c.nodeDefaultWeight,
		NodeProperty:             c.nodeProperty,
		NodeDefaultPropertyValue: c.nodeDefaultPropertyValue,
		Params:                   c.Params(),
		Executor:                 c.executor,
		Concurrency:              c.concurrency,
		BatchSize:                c.batchSize,
		AccumulateWeights:        c.accumulateWeights,
		Logger:                   c.logger,
		LogMillis:                c.logMillis,
		Tracker:                  c.tracker,
	}
}
