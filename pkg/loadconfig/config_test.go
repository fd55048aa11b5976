package loadconfig

import (
	"testing"

	"github.com/matzehuels/graphload/pkg/memtrack"
	"github.com/matzehuels/graphload/pkg/pool"
)

func TestDirectionFlags(t *testing.T) {
	tests := []struct {
		name         string
		direction    Direction
		wantIncoming bool
		wantOutgoing bool
	}{
		{"both", Both, true, true},
		{"incoming", Incoming, true, false},
		{"outgoing", Outgoing, false, true},
		{"unknown falls back to both", Direction(42), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Direction = tt.direction
			cfg := New(opts)
			if cfg.LoadIncoming() != tt.wantIncoming {
				t.Errorf("LoadIncoming() = %v, want %v", cfg.LoadIncoming(), tt.wantIncoming)
			}
			if cfg.LoadOutgoing() != tt.wantOutgoing {
				t.Errorf("LoadOutgoing() = %v, want %v", cfg.LoadOutgoing(), tt.wantOutgoing)
			}
			if !cfg.LoadIncoming() && !cfg.LoadOutgoing() {
				t.Error("at least one direction must be enabled")
			}
		})
	}
}

func TestNilParamsNormalizeToEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.Params = nil
	cfg := New(opts)

	params := cfg.Params()
	if params == nil {
		t.Fatal("Params() should never be nil")
	}
	if len(params) != 0 {
		t.Errorf("Params() = %v, want empty", params)
	}
}

func TestParamsAreCopied(t *testing.T) {
	in := map[string]any{"since": 2020}
	opts := DefaultOptions()
	opts.Params = in
	cfg := New(opts)

	in["since"] = 1999
	if got := cfg.Params()["since"]; got != 2020 {
		t.Errorf("stored params changed with caller map: got %v", got)
	}

	out := cfg.Params()
	out["extra"] = true
	if _, ok := cfg.Params()["extra"]; ok {
		t.Error("Params() result should not alias the stored map")
	}
}

func TestEffectiveConcurrencyWithoutExecutor(t *testing.T) {
	for _, requested := range []int{-4, 0, 1, 8, 64} {
		opts := DefaultOptions()
		opts.Concurrency = requested
		cfg := New(opts)
		if got := cfg.EffectiveConcurrency(); got != 1 {
			t.Errorf("EffectiveConcurrency() with concurrency %d and no executor = %d, want 1", requested, got)
		}
		if cfg.Concurrency() != requested {
			t.Errorf("Concurrency() = %d, want stored %d", cfg.Concurrency(), requested)
		}
	}
}

func TestEffectiveConcurrencyWithExecutor(t *testing.T) {
	for _, requested := range []int{-4, 0, 1, 8, 64} {
		opts := DefaultOptions()
		opts.Executor = pool.New(2)
		opts.Concurrency = requested
		cfg := New(opts)
		if got := cfg.EffectiveConcurrency(); got != requested {
			t.Errorf("EffectiveConcurrency() = %d, want %d", got, requested)
		}
	}
}

func TestUsesDefaultQueries(t *testing.T) {
	tests := []struct {
		name                  string
		relWeight, nodeWeight Optional[string]
		nodeProp              Optional[string]
	}{
		{"all absent", None[string](), None[string](), None[string]()},
		{"relationship weight only", Some("weight"), None[string](), None[string]()},
		{"node weight only", None[string](), Some("score"), None[string]()},
		{"node property only", None[string](), None[string](), Some("community")},
		{"all present", Some("weight"), Some("score"), Some("community")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RelationWeightProperty = tt.relWeight
			opts.NodeWeightProperty = tt.nodeWeight
			opts.NodeProperty = tt.nodeProp
			cfg := New(opts)

			if cfg.UsesDefaultRelationshipWeight() != !tt.relWeight.IsPresent() {
				t.Errorf("UsesDefaultRelationshipWeight() = %v", cfg.UsesDefaultRelationshipWeight())
			}
			if cfg.UsesDefaultNodeWeight() != !tt.nodeWeight.IsPresent() {
				t.Errorf("UsesDefaultNodeWeight() = %v", cfg.UsesDefaultNodeWeight())
			}
			if cfg.UsesDefaultNodeProperty() != !tt.nodeProp.IsPresent() {
				t.Errorf("UsesDefaultNodeProperty() = %v", cfg.UsesDefaultNodeProperty())
			}
		})
	}
}

func TestLoadsAnyQueries(t *testing.T) {
	opts := DefaultOptions()
	cfg := New(opts)
	if !cfg.LoadsAnyLabel() || !cfg.LoadsAnyRelationshipType() {
		t.Error("absent filters should load any label and relationship type")
	}

	opts.StartLabel = Some("Person")
	opts.RelationshipType = Some("KNOWS")
	cfg = New(opts)
	if cfg.LoadsAnyLabel() {
		t.Error("LoadsAnyLabel() should be false with a start label")
	}
	if cfg.LoadsAnyRelationshipType() {
		t.Error("LoadsAnyRelationshipType() should be false with a relationship type")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.LoadsAnyLabel() {
		t.Error("LoadsAnyLabel() should be true")
	}
	if !cfg.LoadsAnyRelationshipType() {
		t.Error("LoadsAnyRelationshipType() should be true")
	}
	if !cfg.UsesDefaultRelationshipWeight() {
		t.Error("UsesDefaultRelationshipWeight() should be true")
	}
	if cfg.RelationDefaultWeight() != 1.0 || cfg.NodeDefaultWeight() != 1.0 || cfg.NodeDefaultPropertyValue() != 1.0 {
		t.Error("default values should all be 1.0")
	}
	if cfg.EffectiveConcurrency() != 1 {
		t.Errorf("EffectiveConcurrency() = %d, want 1", cfg.EffectiveConcurrency())
	}
	if cfg.IsConcurrent() {
		t.Error("IsConcurrent() should be false")
	}
	if !cfg.LoadIncoming() || !cfg.LoadOutgoing() {
		t.Error("default should load both directions")
	}
	if cfg.Concurrency() != pool.DefaultConcurrency {
		t.Errorf("Concurrency() = %d, want %d", cfg.Concurrency(), pool.DefaultConcurrency)
	}
	if cfg.BatchSize() != -1 {
		t.Errorf("BatchSize() = %d, want -1", cfg.BatchSize())
	}
	if cfg.AccumulateWeights() {
		t.Error("AccumulateWeights() should be false")
	}
	if cfg.LogMillis() != -1 || cfg.ProgressLogging() {
		t.Errorf("LogMillis() = %d, progress logging should be disabled", cfg.LogMillis())
	}
	if cfg.Logger() == nil {
		t.Error("Logger() should never be nil")
	}
	if !memtrack.IsEmpty(cfg.Tracker()) {
		t.Error("Tracker() should be memtrack.Empty")
	}
	if cfg.EndLabel().IsPresent() {
		t.Error("EndLabel() should be absent")
	}
}

func TestForExecutor(t *testing.T) {
	exec := pool.New(3)
	cfg := ForExecutor(exec)

	if !cfg.IsConcurrent() {
		t.Error("IsConcurrent() should be true")
	}
	if got := cfg.EffectiveConcurrency(); got != pool.DefaultConcurrency {
		t.Errorf("EffectiveConcurrency() = %d, want %d", got, pool.DefaultConcurrency)
	}
	if cfg.Executor() != exec {
		t.Error("Executor() should return the given executor")
	}
	if cfg.BatchSize() != -1 {
		t.Errorf("BatchSize() = %d, want -1", cfg.BatchSize())
	}
	if !cfg.LoadsAnyLabel() || !cfg.LoadsAnyRelationshipType() {
		t.Error("ForExecutor should load everything")
	}
}

func TestForExecutorNil(t *testing.T) {
	cfg := ForExecutor(nil)
	if cfg.IsConcurrent() {
		t.Error("a nil executor should not be concurrent")
	}
	if cfg.EffectiveConcurrency() != 1 {
		t.Errorf("EffectiveConcurrency() = %d, want 1", cfg.EffectiveConcurrency())
	}
}

func TestFullConstructionScenario(t *testing.T) {
	opts := DefaultOptions()
	opts.RelationshipType = Some("FOLLOWS")
	opts.Direction = Outgoing
	opts.RelationWeightProperty = Some("weight")
	cfg := New(opts)

	if cfg.LoadsAnyRelationshipType() {
		t.Error("LoadsAnyRelationshipType() should be false")
	}
	if !cfg.LoadOutgoing() || cfg.LoadIncoming() {
		t.Errorf("LoadOutgoing()=%v LoadIncoming()=%v, want true/false", cfg.LoadOutgoing(), cfg.LoadIncoming())
	}
	if cfg.UsesDefaultRelationshipWeight() {
		t.Error("UsesDefaultRelationshipWeight() should be false")
	}
	if v, _ := cfg.RelationshipType().Get(); v != "FOLLOWS" {
		t.Errorf("RelationshipType() = %q", v)
	}
}

func TestNilInstrumentationIsNormalized(t *testing.T) {
	cfg := New(Options{})
	if cfg.Logger() == nil {
		t.Error("nil Logger should be replaced by a discard logger")
	}
	if cfg.Tracker() == nil {
		t.Error("nil Tracker should be replaced by memtrack.Empty")
	}
	if cfg.Params() == nil {
		t.Error("nil Params should be replaced by an empty map")
	}
}

func TestGarbageValuesPassThrough(t *testing.T) {
	opts := DefaultOptions()
	opts.Concurrency = -7
	opts.BatchSize = -300
	opts.LogMillis = -5
	opts.RelationDefaultWeight = -2.5
	cfg := New(opts)

	if cfg.Concurrency() != -7 || cfg.BatchSize() != -300 || cfg.LogMillis() != -5 {
		t.Error("values should be stored unchanged")
	}
	if cfg.RelationDefaultWeight() != -2.5 {
		t.Errorf("RelationDefaultWeight() = %v", cfg.RelationDefaultWeight())
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.StartLabel = Some("Person")
	opts.EndLabel = Some("Company")
	opts.Direction = Incoming
	opts.NodeProperty = Some("community")
	opts.NodeDefaultPropertyValue = 0
	opts.AccumulateWeights = true
	opts.LogMillis = 500
	opts.Params = map[string]any{"limit": 10}
	cfg := New(opts)

	derived := New(cfg.Options())
	if derived.Direction() != Incoming {
		t.Errorf("Direction() = %v, want incoming", derived.Direction())
	}
	if v, _ := derived.StartLabel().Get(); v != "Person" {
		t.Errorf("StartLabel() = %q", v)
	}
	if v, _ := derived.EndLabel().Get(); v != "Company" {
		t.Errorf("EndLabel() = %q", v)
	}
	if !derived.AccumulateWeights() || derived.LogMillis() != 500 || !derived.ProgressLogging() {
		t.Error("scalar options lost in round trip")
	}
	if derived.Params()["limit"] != 10 {
		t.Errorf("Params() = %v", derived.Params())
	}
}
