package loadconfig

import (
	"fmt"
	"strings"
)

// Direction selects which relationships are loaded relative to each node.
type Direction int

const (
	// Both loads incoming and outgoing relationships. It is the zero value.
	Both Direction = iota
	// Outgoing loads relationships starting at the node.
	Outgoing
	// Incoming loads relationships ending at the node.
	Incoming
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection parses "incoming", "outgoing" or "both" (case-insensitive).
// The short forms "in" and "out" are accepted as well.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "incoming":
		return Incoming, nil
	case "out", "outgoing":
		return Outgoing, nil
	case "both", "":
		return Both, nil
	default:
		return Both, fmt.Errorf("invalid direction: %q (must be one of: incoming, outgoing, both)", s)
	}
}

// flags expands d into (loadIncoming, loadOutgoing).
// Unknown values load both sides so at least one side is always enabled.
func (d Direction) flags() (incoming, outgoing bool) {
	switch d {
	case Incoming:
		return true, false
	case Outgoing:
		return false, true
	default:
		return true, true
	}
}

func directionOf(incoming, outgoing bool) Direction {
	switch {
	case incoming && !outgoing:
		return Incoming
	case outgoing && !incoming:
		return Outgoing
	default:
		return Both
	}
}
