package game

import (
	"fmt"
	"strings"
)

// NodeID identifies a board location. Valid identifiers are positive; 0 is
// the "no node" sentinel.
type NodeID int

// Mode labels the transport kind of an edge. The zero value ModeAny stands
// for "no mode restriction" and is what callers pass when the adversary's
// ticket was not disclosed.
type Mode uint8

const (
	ModeAny Mode = iota
	ModeTaxi
	ModeBus
	ModeUnderground
)

// AllModes lists the concrete transport modes an edge may carry.
var AllModes = []Mode{ModeTaxi, ModeBus, ModeUnderground}

var modeNames = map[Mode]string{
	ModeAny:         "any",
	ModeTaxi:        "taxi",
	ModeBus:         "bus",
	ModeUnderground: "underground",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode maps a scenario-file label to a Mode. Only concrete modes are
// accepted; "any" never appears in board data.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "taxi":
		return ModeTaxi, nil
	case "bus":
		return ModeBus, nil
	case "underground":
		return ModeUnderground, nil
	}
	return ModeAny, fmt.Errorf("unknown transport mode %q", s)
}

// Edge connects two nodes with one transport mode. Endpoints are unordered;
// the same pair may be connected again under a different mode.
type Edge struct {
	A    NodeID
	B    NodeID
	Mode Mode
}

// JointMove holds one destination per detective, index-aligned with the
// detective position list it was derived from.
type JointMove []NodeID

func (jm JointMove) Clone() JointMove {
	clone := make(JointMove, len(jm))
	copy(clone, jm)
	return clone
}

func (jm JointMove) Equal(other JointMove) bool {
	if len(jm) != len(other) {
		return false
	}
	for i := range jm {
		if jm[i] != other[i] {
			return false
		}
	}
	return true
}

// Less orders joint moves lexicographically. It is the tie-break order for
// equally scored moves, so search results stay reproducible.
func (jm JointMove) Less(other JointMove) bool {
	for i := range jm {
		if i >= len(other) {
			return false
		}
		if jm[i] != other[i] {
			return jm[i] < other[i]
		}
	}
	return len(jm) < len(other)
}

func (jm JointMove) String() string {
	parts := make([]string, len(jm))
	for i, n := range jm {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
