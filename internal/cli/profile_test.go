package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/loadconfig"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "load.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadProfile(t *testing.T) {
	path := writeProfile(t, `
label = "Person"
end_label = "Company"
relationship_type = "KNOWS"
direction = "out"
concurrency = 4
batch_size = 20000
accumulate_weights = true
log_millis = 250

[relationship_weight]
property = "since"
default = 0.5

[node_property]
property = "community"
default = 0.0

[params]
min_since = 2020
`)

	p, err := readProfile(path)
	if err != nil {
		t.Fatalf("readProfile() error: %v", err)
	}

	opts := loadconfig.DefaultOptions()
	if err := p.apply(&opts); err != nil {
		t.Fatalf("apply() error: %v", err)
	}
	cfg := loadconfig.New(opts)

	if v, _ := cfg.StartLabel().Get(); v != "Person" {
		t.Errorf("StartLabel() = %q", v)
	}
	if v, _ := cfg.EndLabel().Get(); v != "Company" {
		t.Errorf("EndLabel() = %q", v)
	}
	if v, _ := cfg.RelationshipType().Get(); v != "KNOWS" {
		t.Errorf("RelationshipType() = %q", v)
	}
	if !cfg.LoadOutgoing() || cfg.LoadIncoming() {
		t.Errorf("direction = %v, want outgoing", cfg.Direction())
	}
	if v, _ := cfg.RelationWeightProperty().Get(); v != "since" || cfg.RelationDefaultWeight() != 0.5 {
		t.Errorf("relationship weight = %q/%v", v, cfg.RelationDefaultWeight())
	}
	if !cfg.UsesDefaultNodeWeight() || cfg.NodeDefaultWeight() != loadconfig.DefaultWeight {
		t.Error("absent node_weight section should keep defaults")
	}
	if v, _ := cfg.NodeProperty().Get(); v != "community" || cfg.NodeDefaultPropertyValue() != 0 {
		t.Errorf("node property = %q/%v", v, cfg.NodeDefaultPropertyValue())
	}
	if cfg.Concurrency() != 4 || cfg.BatchSize() != 20000 || !cfg.AccumulateWeights() || cfg.LogMillis() != 250 {
		t.Error("execution settings not applied")
	}
	if got := cfg.Params()["min_since"]; got != int64(2020) {
		t.Errorf("Params()[min_since] = %#v", got)
	}
}

func TestReadProfileEmptyKeepsDefaults(t *testing.T) {
	p, err := readProfile(writeProfile(t, "# nothing set\n"))
	if err != nil {
		t.Fatalf("readProfile() error: %v", err)
	}
	opts := loadconfig.DefaultOptions()
	if err := p.apply(&opts); err != nil {
		t.Fatal(err)
	}
	cfg := loadconfig.New(opts)
	if !cfg.LoadsAnyLabel() || !cfg.LoadsAnyRelationshipType() || cfg.Direction() != loadconfig.Both {
		t.Error("empty profile should load everything in both directions")
	}
	if cfg.BatchSize() != loadconfig.DefaultBatchSize {
		t.Errorf("BatchSize() = %d", cfg.BatchSize())
	}
}

func TestReadProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "lable = \"Person\"\n"},
		{"unknown nested key", "[node_weight]\nprop = \"score\"\n"},
		{"syntax", "label = \n"},
		{"wrong type", "concurrency = \"four\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readProfile(writeProfile(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidProfile) {
				t.Errorf("readProfile() error = %v, want %s", err, errors.ErrCodeInvalidProfile)
			}
		})
	}
}

func TestReadProfileMissingFile(t *testing.T) {
	_, err := readProfile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidProfile)
	}
}

func TestProfileInvalidDirection(t *testing.T) {
	p, err := readProfile(writeProfile(t, "direction = \"sideways\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	opts := loadconfig.DefaultOptions()
	if err := p.apply(&opts); !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("apply() error = %v, want %s", err, errors.ErrCodeInvalidProfile)
	}
}
