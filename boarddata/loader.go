// Package boarddata loads board scenarios: the transport graph, 2-D node
// coordinates for rendering collaborators, and the starting configuration
// of a game.
package boarddata

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"pursuit/game"
	"pursuit/utils"
)

// NodeSpec places one board node.
type NodeSpec struct {
	ID game.NodeID `yaml:"id"`
	X  float64     `yaml:"x"`
	Y  float64     `yaml:"y"`
}

// EdgeSpec connects two nodes with one transport mode. The same pair may
// appear again under a different mode.
type EdgeSpec struct {
	A    game.NodeID `yaml:"a"`
	B    game.NodeID `yaml:"b"`
	Mode string      `yaml:"mode"`
}

// Scenario is one playable board setup.
type Scenario struct {
	Name        string        `yaml:"name"`
	Nodes       []NodeSpec    `yaml:"nodes"`
	Edges       []EdgeSpec    `yaml:"edges"`
	Detectives  []game.NodeID `yaml:"detectives"`
	Adversary   game.NodeID   `yaml:"adversary"`
	RevealTurns []int         `yaml:"reveal_turns"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if len(s.Nodes) == 0 {
		return fmt.Errorf("scenario %q has no nodes", s.Name)
	}
	known := make(map[game.NodeID]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID <= 0 {
			return fmt.Errorf("node identifier %d is not positive", n.ID)
		}
		if known[n.ID] {
			return fmt.Errorf("duplicate node identifier %d", n.ID)
		}
		known[n.ID] = true
	}

	type edgeKey struct {
		a, b game.NodeID
		mode game.Mode
	}
	seen := make(map[edgeKey]bool, len(s.Edges))
	for _, e := range s.Edges {
		mode, err := game.ParseMode(e.Mode)
		if err != nil {
			return fmt.Errorf("edge %d-%d: %w", e.A, e.B, err)
		}
		if !known[e.A] || !known[e.B] {
			return fmt.Errorf("edge %d-%d references an unlisted node", e.A, e.B)
		}
		if e.A == e.B {
			return fmt.Errorf("self-loop on node %d", e.A)
		}
		key := edgeKey{a: min(e.A, e.B), b: max(e.A, e.B), mode: mode}
		if seen[key] {
			return fmt.Errorf("duplicate %s edge %d-%d", mode, e.A, e.B)
		}
		seen[key] = true
	}

	if len(s.Detectives) == 0 {
		return fmt.Errorf("scenario %q has no detectives", s.Name)
	}
	for i, d := range s.Detectives {
		if !known[d] {
			return fmt.Errorf("detective %d starts on unlisted node %d", i, d)
		}
		if utils.Contains(s.Detectives[:i], d) {
			return fmt.Errorf("detectives share starting node %d", d)
		}
	}
	if s.Adversary == 0 {
		return fmt.Errorf("scenario %q has no adversary start", s.Name)
	}
	if !known[s.Adversary] {
		return fmt.Errorf("adversary starts on unlisted node %d", s.Adversary)
	}
	if utils.Contains(s.Detectives, s.Adversary) {
		return fmt.Errorf("adversary starts on detective-held node %d", s.Adversary)
	}

	for i, turn := range s.RevealTurns {
		if turn <= 0 {
			return fmt.Errorf("reveal turn %d is not positive", turn)
		}
		if utils.Contains(s.RevealTurns[:i], turn) {
			return fmt.Errorf("duplicate reveal turn %d", turn)
		}
	}
	return nil
}

// Board builds the transport graph. Graph-level problems the scenario
// checks cannot see (a disconnected board) surface here.
func (s *Scenario) Board() (*game.Board, error) {
	nodes := make([]game.NodeID, len(s.Nodes))
	for i, n := range s.Nodes {
		nodes[i] = n.ID
	}
	edges := make([]game.Edge, len(s.Edges))
	for i, e := range s.Edges {
		mode, err := game.ParseMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.A, e.B, err)
		}
		edges[i] = game.Edge{A: e.A, B: e.B, Mode: mode}
	}
	return game.NewBoard(nodes, edges)
}

// Layout builds the coordinate index for rendering and input collaborators.
func (s *Scenario) Layout() *Layout {
	points := make(map[game.NodeID]orb.Point, len(s.Nodes))
	for _, n := range s.Nodes {
		points[n.ID] = orb.Point{n.X, n.Y}
	}
	return NewLayout(points)
}
