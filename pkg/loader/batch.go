package loader

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/observability"
	"github.com/matzehuels/graphload/pkg/source"
)

// batchSize returns the configured batch size, or splits n nodes evenly
// across the effective concurrency with MinBatchSize as the floor.
func batchSize(cfg *loadconfig.Config, n int) int {
	if cfg.BatchSize() > 0 {
		return cfg.BatchSize()
	}
	conc := max(cfg.EffectiveConcurrency(), 1)
	return max((n+conc-1)/conc, MinBatchSize)
}

// partition splits ids into consecutive batches of at most size ids.
func partition(ids []int64, size int) [][]int64 {
	if len(ids) == 0 || size <= 0 {
		return nil
	}
	batches := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

type directionResult struct {
	direction graph.Direction
	rels      []source.RelationshipRecord
}

// fetch reads the relationships of every batch. Results are indexed by
// batch so the caller can merge them in a fixed order.
func (l *Loader) fetch(ctx context.Context, cfg *loadconfig.Config, batches [][]int64, logger *log.Logger) ([][]directionResult, error) {
	var directions []graph.Direction
	if cfg.LoadOutgoing() {
		directions = append(directions, graph.Outgoing)
	}
	if cfg.LoadIncoming() {
		directions = append(directions, graph.Incoming)
	}

	results := make([][]directionResult, len(batches))
	prog := newProgress(logger, len(batches), cfg.LogMillis())
	hooks := observability.Load()
	relType := cfg.RelationshipType().OrElse("")
	relKeys := relationshipKeys(cfg)

	tasks := make([]func(context.Context) error, len(batches))
	for i, batch := range batches {
		tasks[i] = func(ctx context.Context) error {
			out := make([]directionResult, 0, len(directions))
			fetched := 0
			for _, d := range directions {
				start := time.Now()
				rels, err := l.src.Relationships(ctx, source.RelationshipQuery{
					Type:       relType,
					Direction:  d,
					NodeIDs:    batch,
					Properties: relKeys,
					Params:     cfg.Params(),
				})
				hooks.OnBatchComplete(ctx, d.String(), len(rels), time.Since(start), err)
				if err != nil {
					return errors.Wrap(errors.ErrCodeSource, err, "read %s relationships of batch %d", d, i)
				}
				out = append(out, directionResult{direction: d, rels: rels})
				fetched += len(rels)
			}
			results[i] = out
			prog.batchDone(fetched)
			return nil
		}
	}

	if cfg.IsConcurrent() {
		if err := cfg.Executor().Run(ctx, tasks); err != nil {
			return nil, err
		}
		return results, nil
	}
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := task(ctx); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// progress logs batch completion at most once per interval.
type progress struct {
	logger   *log.Logger
	total    int
	interval int64 // nanoseconds; <= 0 disables logging
	done     atomic.Int64
	rels     atomic.Int64
	last     atomic.Int64
}

func newProgress(logger *log.Logger, total int, logMillis int64) *progress {
	return &progress{
		logger:   logger,
		total:    total,
		interval: logMillis * int64(time.Millisecond),
	}
}

func (p *progress) batchDone(rels int) {
	done := p.done.Add(1)
	fetched := p.rels.Add(int64(rels))
	if p.interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := p.last.Load()
	if last != 0 && now-last < p.interval {
		return
	}
	if !p.last.CompareAndSwap(last, now) {
		return
	}
	p.logger.Info("loading relationships",
		"batches", done,
		"total", p.total,
		"relationships", fetched,
		"percent", done*100/int64(max(p.total, 1)),
	)
}
