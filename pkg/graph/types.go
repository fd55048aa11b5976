package graph

import (
	"errors"
	"fmt"
)

// Direction selects one of the two adjacency structures of a [Graph].
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// String returns the serialized name of the direction.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return DirectionOutgoing
	case Incoming:
		return DirectionIncoming
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// =============================================================================
// Constants
// =============================================================================

// Serialized direction names.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

func parseDirection(s string) (Direction, error) {
	switch s {
	case DirectionOutgoing:
		return Outgoing, nil
	case DirectionIncoming:
		return Incoming, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrDuplicateNode is returned when a node with the same original ID is added twice.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode is returned when a relationship references a node that was never added.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDirectionNotLoaded is returned when a relationship targets an adjacency the builder does not keep.
	ErrDirectionNotLoaded = errors.New("direction not loaded")
	// ErrInvalidDirection is returned when a snapshot names an unknown direction.
	ErrInvalidDirection = errors.New("invalid direction")
)

// =============================================================================
// Serialization Types
// =============================================================================

// Snapshot is the JSON representation of a [Graph].
type Snapshot struct {
	Directions    []string       `json:"directions"`
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

// Node is a serialized node keyed by its original ID.
type Node struct {
	ID       int64   `json:"id"`
	Weight   float64 `json:"weight"`
	Property float64 `json:"property"`
}

// Relationship is a serialized relationship between two original IDs.
type Relationship struct {
	Direction string  `json:"direction"`
	From      int64   `json:"from"`
	To        int64   `json:"to"`
	Weight    float64 `json:"weight"`
}
