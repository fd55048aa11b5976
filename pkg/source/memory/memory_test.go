package memory

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

const dump = `{
  "nodes": [
    {"id": 1, "labels": ["Person"], "properties": {"age": 30}},
    {"id": 2, "labels": ["Person"], "properties": {"age": 40, "score": 2}},
    {"id": 3, "labels": ["Company"]}
  ],
  "relationships": [
    {"id": 10, "type": "KNOWS", "start": 1, "end": 2, "properties": {"weight": 0.5}},
    {"id": 11, "type": "WORKS_AT", "start": 1, "end": 3},
    {"id": 12, "type": "KNOWS", "start": 2, "end": 1}
  ]
}`

func loadDump(t *testing.T) *Source {
	t.Helper()
	s, err := Read("test", strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return s
}

func TestNodes(t *testing.T) {
	s := loadDump(t)
	ctx := context.Background()

	tests := []struct {
		label string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"Person", []int64{1, 2}},
		{"Company", []int64{3}},
		{"Missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			nodes, err := s.Nodes(ctx, source.NodeQuery{Label: tt.label})
			if err != nil {
				t.Fatal(err)
			}
			var ids []int64
			for _, n := range nodes {
				ids = append(ids, n.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("Nodes(%q) = %v, want %v", tt.label, ids, tt.want)
			}
		})
	}
}

func TestRelationships(t *testing.T) {
	s := loadDump(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    source.RelationshipQuery
		want []int64
	}{
		{"outgoing all", source.RelationshipQuery{Direction: graph.Outgoing, NodeIDs: []int64{1}}, []int64{10, 11}},
		{"outgoing typed", source.RelationshipQuery{Direction: graph.Outgoing, NodeIDs: []int64{1, 2}, Type: "KNOWS"}, []int64{10, 12}},
		{"incoming", source.RelationshipQuery{Direction: graph.Incoming, NodeIDs: []int64{1}}, []int64{12}},
		{"incoming company", source.RelationshipQuery{Direction: graph.Incoming, NodeIDs: []int64{3}}, []int64{11}},
		{"no nodes", source.RelationshipQuery{Direction: graph.Outgoing}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rels, err := s.Relationships(ctx, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			var ids []int64
			for _, r := range rels {
				ids = append(ids, r.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("Relationships() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestPropertyKeys(t *testing.T) {
	keys, err := loadDump(t).PropertyKeys(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(keys.Node, []string{"age", "score"}) {
		t.Errorf("Node keys = %v", keys.Node)
	}
	if !slices.Equal(keys.Relationship, []string{"weight"}) {
		t.Errorf("Relationship keys = %v", keys.Relationship)
	}
}

func TestCanceledContext(t *testing.T) {
	s := loadDump(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Nodes(ctx, source.NodeQuery{}); err == nil {
		t.Error("Nodes should fail on a canceled context")
	}
	if _, err := s.Relationships(ctx, source.RelationshipQuery{NodeIDs: []int64{1}}); err == nil {
		t.Error("Relationships should fail on a canceled context")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(dump), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	nodes, rels := s.Stats()
	if nodes != 3 || rels != 3 {
		t.Errorf("Stats() = (%d, %d), want (3, 3)", nodes, rels)
	}
	if s.SourceID() != "memory:"+path {
		t.Errorf("SourceID() = %q", s.SourceID())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Read("bad", strings.NewReader("{")); err == nil {
		t.Error("expected error for malformed dump")
	}
}
