// Package memory provides an in-memory property graph [source.Source].
//
// It backs tests and small loads, and reads the JSON dump format:
//
//	{
//	  "nodes": [{"id": 1, "labels": ["Person"], "properties": {"age": 42}}],
//	  "relationships": [{"id": 7, "type": "KNOWS", "start": 1, "end": 2, "properties": {"weight": 0.5}}]
//	}
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/source"
)

// Source is an in-memory property graph. Nodes and relationships are returned
// in insertion order. It is safe for concurrent use.
type Source struct {
	id string

	mu      sync.RWMutex
	nodes   []source.NodeRecord
	rels    []source.RelationshipRecord
	byStart map[int64][]int
	byEnd   map[int64][]int
}

// New creates an empty source identified by id.
func New(id string) *Source {
	return &Source{
		id:      id,
		byStart: make(map[int64][]int),
		byEnd:   make(map[int64][]int),
	}
}

// SourceID implements [source.Identifier].
func (s *Source) SourceID() string { return "memory:" + s.id }

// AddNode appends a node.
func (s *Source) AddNode(n source.NodeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
}

// AddRelationship appends a relationship. Its endpoints need not exist.
func (s *Source) AddRelationship(r source.RelationshipRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.rels)
	s.rels = append(s.rels, r)
	s.byStart[r.StartID] = append(s.byStart[r.StartID], i)
	s.byEnd[r.EndID] = append(s.byEnd[r.EndID], i)
}

// Nodes implements [source.Source].
func (s *Source) Nodes(ctx context.Context, q source.NodeQuery) ([]source.NodeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []source.NodeRecord
	for _, n := range s.nodes {
		if source.HasLabel(n.Labels, q.Label) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Relationships implements [source.Source].
func (s *Source) Relationships(ctx context.Context, q source.RelationshipQuery) ([]source.RelationshipRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.byStart
	if q.Direction == graph.Incoming {
		index = s.byEnd
	}

	var out []source.RelationshipRecord
	for _, id := range q.NodeIDs {
		for _, i := range index[id] {
			r := s.rels[i]
			if q.Type == "" || r.Type == q.Type {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// PropertyKeys implements [source.PropertyKeyLister].
func (s *Source) PropertyKeys(ctx context.Context) (source.PropertyKeys, error) {
	if err := ctx.Err(); err != nil {
		return source.PropertyKeys{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodeKeys := map[string]struct{}{}
	for _, n := range s.nodes {
		for k := range n.Properties {
			nodeKeys[k] = struct{}{}
		}
	}
	relKeys := map[string]struct{}{}
	for _, r := range s.rels {
		for k := range r.Properties {
			relKeys[k] = struct{}{}
		}
	}
	return source.PropertyKeys{Node: sortedKeys(nodeKeys), Relationship: sortedKeys(relKeys)}, nil
}

// Stats returns the number of stored nodes and relationships.
func (s *Source) Stats() (nodes, relationships int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes), len(s.rels)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// JSON Dumps
// =============================================================================

// Dump is the JSON representation of a property graph.
type Dump struct {
	Nodes         []DumpNode         `json:"nodes"`
	Relationships []DumpRelationship `json:"relationships"`
}

// DumpNode is a serialized node.
type DumpNode struct {
	ID         int64          `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// DumpRelationship is a serialized relationship.
type DumpRelationship struct {
	ID         int64          `json:"id"`
	Type       string         `json:"type"`
	Start      int64          `json:"start"`
	End        int64          `json:"end"`
	Properties map[string]any `json:"properties,omitempty"`
}

// FromDump creates a source from a decoded dump.
func FromDump(id string, d Dump) *Source {
	s := New(id)
	for _, n := range d.Nodes {
		s.AddNode(source.NodeRecord{ID: n.ID, Labels: slices.Clone(n.Labels), Properties: n.Properties})
	}
	for _, r := range d.Relationships {
		s.AddRelationship(source.RelationshipRecord{
			ID:         r.ID,
			Type:       r.Type,
			StartID:    r.Start,
			EndID:      r.End,
			Properties: r.Properties,
		})
	}
	return s
}

// Read decodes a JSON dump from r.
func Read(id string, r io.Reader) (*Source, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDump(id, d), nil
}

// ReadFile decodes a JSON dump file. The path identifies the source.
func ReadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(path, f)
}
