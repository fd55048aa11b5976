package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to JSON bytes.
// Nodes keep their mapped order, so a round trip preserves mapped IDs.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a graph.
func Unmarshal(data []byte) (*Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions. The graph is written to a
// temporary file next to path and renamed into place, so a failed write
// leaves any existing file untouched.
func WriteFile(g *Graph, path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".graph-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeGraphTo(g, f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// Read decodes a JSON graph from an io.Reader.
func Read(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// ToSnapshot converts a graph to its serialization type.
func ToSnapshot(g *Graph) Snapshot {
	s := Snapshot{
		Directions:    []string{},
		Nodes:         make([]Node, g.NodeCount()),
		Relationships: []Relationship{},
	}
	for i, id := range g.original {
		s.Nodes[i] = Node{ID: id, Weight: g.nodeWeights[i], Property: g.nodeProperties[i]}
	}
	for _, d := range g.Directions() {
		s.Directions = append(s.Directions, d.String())
		for src := range g.original {
			g.ForEachRelationship(src, d, func(tgt int, w float64) bool {
				s.Relationships = append(s.Relationships, Relationship{
					Direction: d.String(),
					From:      g.original[src],
					To:        g.original[tgt],
					Weight:    w,
				})
				return true
			})
		}
	}
	return s
}

// FromSnapshot rebuilds a graph from its serialization type.
func FromSnapshot(s Snapshot) (*Graph, error) {
	opts := BuilderOptions{ExpectedNodes: len(s.Nodes)}
	for _, name := range s.Directions {
		d, err := parseDirection(name)
		if err != nil {
			return nil, err
		}
		switch d {
		case Outgoing:
			opts.Outgoing = true
		case Incoming:
			opts.Incoming = true
		}
	}

	b := NewBuilder(opts)
	for _, n := range s.Nodes {
		if _, err := b.AddNode(n.ID, n.Weight, n.Property); err != nil {
			return nil, err
		}
	}
	for _, r := range s.Relationships {
		d, err := parseDirection(r.Direction)
		if err != nil {
			return nil, err
		}
		if err := b.AddRelationship(d, r.From, r.To, r.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToSnapshot(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromSnapshot(s)
}
