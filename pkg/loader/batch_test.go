package loader

import (
	"testing"

	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/pool"
)

func TestPartition(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name  string
		ids   []int64
		size  int
		sizes []int
	}{
		{"even", ids[:6], 3, []int{3, 3}},
		{"remainder", ids, 3, []int{3, 3, 1}},
		{"single", ids, 100, []int{7}},
		{"one per batch", ids[:3], 1, []int{1, 1, 1}},
		{"empty", nil, 3, nil},
		{"invalid size", ids, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := partition(tt.ids, tt.size)
			if len(batches) != len(tt.sizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.sizes))
			}
			next := int64(1)
			for i, b := range batches {
				if len(b) != tt.sizes[i] {
					t.Errorf("batch %d has %d ids, want %d", i, len(b), tt.sizes[i])
				}
				for _, id := range b {
					if id != next {
						t.Errorf("batch %d: id %d out of order, want %d", i, id, next)
					}
					next++
				}
			}
		})
	}
}

func TestBatchSize(t *testing.T) {
	tests := []struct {
		name        string
		executor    bool
		concurrency int
		batch       int
		nodes       int
		want        int
	}{
		{"configured", false, 1, 50, 1000, 50},
		{"configured concurrent", true, 4, 50, 1000, 50},
		{"sequential default", false, 8, -1, 100_000, 100_000},
		{"concurrent split", true, 4, -1, 100_000, 25_000},
		{"concurrent floor", true, 4, -1, 1000, MinBatchSize},
		{"concurrent rounds up", true, 3, -1, 100_000, 33_334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := loadconfig.DefaultOptions()
			opts.Concurrency = tt.concurrency
			opts.BatchSize = tt.batch
			if tt.executor {
				opts.Executor = pool.New(tt.concurrency)
			}
			if got := batchSize(loadconfig.New(opts), tt.nodes); got != tt.want {
				t.Errorf("batchSize() = %d, want %d", got, tt.want)
			}
		})
	}
}
