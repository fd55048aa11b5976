package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphload/pkg/cache"
	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/observability"
	"github.com/matzehuels/graphload/pkg/source"
)

// MinBatchSize is the smallest batch the loader picks on its own.
// Explicitly configured batch sizes may be smaller.
const MinBatchSize = 10_000

// Loader loads graphs from one source.
// A Loader is safe for concurrent use.
type Loader struct {
	src      source.Source
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	sourceID string
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache stores loaded graphs in c and reuses them for equal loads.
func WithCache(c cache.Cache) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
	}
}

// WithKeyer sets how cache keys are derived.
func WithKeyer(k cache.Keyer) Option {
	return func(l *Loader) {
		if k != nil {
			l.keyer = k
		}
	}
}

// WithCacheTTL sets how long cached graphs stay valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithSourceID overrides the identity used to scope cache keys.
func WithSourceID(id string) Option {
	return func(l *Loader) { l.sourceID = id }
}

// New creates a loader for src. Without options, caching is disabled.
func New(src source.Source, opts ...Option) *Loader {
	l := &Loader{
		src:   src,
		cache: cache.NewNullCache(),
		keyer: cache.NewDefaultKeyer(),
		ttl:   cache.DefaultTTL,
	}
	if id, ok := src.(source.Identifier); ok {
		l.sourceID = id.SourceID()
	} else {
		l.sourceID = fmt.Sprintf("%T", src)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SourceID returns the identity used to scope cache keys.
func (l *Loader) SourceID() string { return l.sourceID }

// Stats describes a finished load.
type Stats struct {
	Nodes         int
	Relationships int
	Batches       int
	Skipped       int // relationships dropped because an endpoint was not loaded
	MemoryBytes   int64
	Duration      time.Duration
}

// Result is the outcome of a load.
type Result struct {
	ID       string
	Graph    *graph.Graph
	Stats    Stats
	CacheHit bool
}

// Load materializes the graph described by cfg.
func (l *Loader) Load(ctx context.Context, cfg *loadconfig.Config) (*Result, error) {
	start := time.Now()
	res := &Result{ID: uuid.NewString()}
	logger := cfg.Logger().With("load", res.ID[:8])
	hooks := observability.Load()

	if err := l.validate(ctx, cfg); err != nil {
		logger.Error("invalid load configuration", "error", err)
		return nil, err
	}

	hooks.OnLoadStart(ctx, l.sourceID, cfg.EffectiveConcurrency())
	logger.Debug("starting load",
		"source", l.sourceID,
		"direction", cfg.Direction(),
		"concurrency", cfg.EffectiveConcurrency(),
		"batch_size", cfg.BatchSize(),
	)

	key, err := l.keyer.LoadKey(l.sourceID, keyOpts(cfg))
	if err != nil {
		logger.Warn("cache bypassed for load", "error", err)
		key = ""
	}
	if g, ok := l.cached(ctx, key, logger); ok {
		cfg.Tracker().Add(g.MemoryUsage())
		res.Graph = g
		res.CacheHit = true
		res.Stats = Stats{
			Nodes:         g.NodeCount(),
			Relationships: g.RelationshipCount(),
			MemoryBytes:   g.MemoryUsage(),
			Duration:      time.Since(start),
		}
		logger.Info("loaded graph from cache", "nodes", res.Stats.Nodes, "relationships", res.Stats.Relationships)
		hooks.OnLoadComplete(ctx, l.sourceID, res.Stats.Nodes, res.Stats.Relationships, res.Stats.Duration, nil)
		return res, nil
	}

	g, stats, err := l.materialize(ctx, cfg, logger)
	stats.Duration = time.Since(start)
	if err != nil {
		err = classify(err)
		logger.Error("load failed", "error", err, "duration", stats.Duration)
		hooks.OnLoadComplete(ctx, l.sourceID, 0, 0, stats.Duration, err)
		return nil, err
	}

	l.store(ctx, key, g, logger)

	res.Graph = g
	res.Stats = stats
	logger.Info("loaded graph",
		"nodes", stats.Nodes,
		"relationships", stats.Relationships,
		"batches", stats.Batches,
		"duration", stats.Duration.Round(time.Millisecond),
	)
	hooks.OnLoadComplete(ctx, l.sourceID, stats.Nodes, stats.Relationships, stats.Duration, nil)
	return res, nil
}

func (l *Loader) materialize(ctx context.Context, cfg *loadconfig.Config, logger *log.Logger) (*graph.Graph, Stats, error) {
	var stats Stats
	hooks := observability.Load()

	scanStart := time.Now()
	nodes, err := l.src.Nodes(ctx, source.NodeQuery{
		Label:      cfg.StartLabel().OrElse(""),
		Properties: nodeKeys(cfg),
		Params:     cfg.Params(),
	})
	if err != nil {
		return nil, stats, errors.Wrap(errors.ErrCodeSource, err, "scan nodes")
	}
	hooks.OnNodesScanned(ctx, l.sourceID, len(nodes), time.Since(scanStart))
	logger.Debug("scanned nodes", "nodes", len(nodes), "duration", time.Since(scanStart))

	b := graph.NewBuilder(graph.BuilderOptions{
		Outgoing:      cfg.LoadOutgoing(),
		Incoming:      cfg.LoadIncoming(),
		Accumulate:    cfg.AccumulateWeights(),
		ExpectedNodes: len(nodes),
		Tracker:       cfg.Tracker(),
	})
	weightKey := cfg.NodeWeightProperty().OrElse("")
	propKey := cfg.NodeProperty().OrElse("")
	ids := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		weight := source.Property(n.Properties, weightKey, cfg.NodeDefaultWeight())
		prop := source.Property(n.Properties, propKey, cfg.NodeDefaultPropertyValue())
		if _, err := b.AddNode(n.ID, weight, prop); err != nil {
			return nil, stats, errors.Wrap(errors.ErrCodeSource, err, "source returned node %d twice", n.ID)
		}
		ids = append(ids, n.ID)
	}

	batches := partition(ids, batchSize(cfg, len(ids)))
	stats.Batches = len(batches)
	results, err := l.fetch(ctx, cfg, batches, logger)
	if err != nil {
		return nil, stats, err
	}

	relWeightKey := cfg.RelationWeightProperty().OrElse("")
	for _, r := range results {
		for _, dr := range r {
			for _, rel := range dr.rels {
				if !b.HasNode(rel.StartID) || !b.HasNode(rel.EndID) {
					stats.Skipped++
					continue
				}
				from, to := rel.StartID, rel.EndID
				if dr.direction == graph.Incoming {
					from, to = to, from
				}
				weight := source.Property(rel.Properties, relWeightKey, cfg.RelationDefaultWeight())
				if err := b.AddRelationship(dr.direction, from, to, weight); err != nil {
					return nil, stats, errors.Wrap(errors.ErrCodeInternal, err, "add relationship %d", rel.ID)
				}
			}
		}
	}

	g := b.Build()
	stats.Nodes = g.NodeCount()
	stats.Relationships = g.RelationshipCount()
	stats.MemoryBytes = g.MemoryUsage()
	return g, stats, nil
}

// cached and store skip the backend for NullCache and for an empty key.
func (l *Loader) cached(ctx context.Context, key string, logger *log.Logger) (*graph.Graph, bool) {
	if _, ok := l.cache.(cache.NullCache); ok || key == "" {
		return nil, false
	}
	backend := backendName(l.cache)
	data, hit, err := l.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, backend)
		return nil, false
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		logger.Warn("discarding unreadable cache entry", "error", err)
		_ = l.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, backend)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, backend)
	return g, true
}

func (l *Loader) store(ctx context.Context, key string, g *graph.Graph, logger *log.Logger) {
	if _, ok := l.cache.(cache.NullCache); ok || key == "" {
		return
	}
	data, err := graph.Marshal(g)
	if err != nil {
		logger.Warn("encode graph for cache", "error", err)
		return
	}
	if err := l.cache.Set(ctx, key, data, l.ttl); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, backendName(l.cache), len(data))
}

func backendName(c cache.Cache) string {
	switch c.(type) {
	case *cache.FileCache:
		return "file"
	case *cache.RedisCache:
		return "redis"
	default:
		return fmt.Sprintf("%T", c)
	}
}

// classify maps context errors to the CANCELED code.
func classify(err error) error {
	if errors.GetCode(err) == errors.ErrCodeCanceled {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeCanceled, err, "load canceled")
	}
	return err
}

func keyOpts(cfg *loadconfig.Config) cache.LoadKeyOpts {
	return cache.LoadKeyOpts{
		StartLabel:               cfg.StartLabel().OrElse(""),
		RelationshipType:         cfg.RelationshipType().OrElse(""),
		LoadIncoming:             cfg.LoadIncoming(),
		LoadOutgoing:             cfg.LoadOutgoing(),
		RelationWeightProperty:   cfg.RelationWeightProperty().OrElse(""),
		RelationDefaultWeight:    cfg.RelationDefaultWeight(),
		NodeWeightProperty:       cfg.NodeWeightProperty().OrElse(""),
		NodeDefaultWeight:        cfg.NodeDefaultWeight(),
		NodeProperty:             cfg.NodeProperty().OrElse(""),
		NodeDefaultPropertyValue: cfg.NodeDefaultPropertyValue(),
		AccumulateWeights:        cfg.AccumulateWeights(),
		Params:                   cfg.Params(),
	}
}

func nodeKeys(cfg *loadconfig.Config) []string {
	var keys []string
	for _, o := range []loadconfig.Optional[string]{cfg.NodeWeightProperty(), cfg.NodeProperty()} {
		if k, ok := o.Get(); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func relationshipKeys(cfg *loadconfig.Config) []string {
	if k, ok := cfg.RelationWeightProperty().Get(); ok {
		return []string{k}
	}
	return nil
}
