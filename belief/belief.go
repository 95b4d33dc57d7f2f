// Package belief tracks the detectives' knowledge of the adversary's
// location as a probability distribution over board nodes. The distribution
// advances through a predict/correct cycle: Predict models the adversary's
// unseen transition each turn, Correct collapses to certainty on reveal
// turns, and ObserveDetectives folds in the passive evidence that the
// adversary cannot share a node with a detective.
//
// Belief values are immutable: every operation returns a new value, so a
// search can hold a snapshot while the game loop advances its own.
package belief

import (
	"fmt"
	"sort"
	"strings"

	"pursuit/game"
	"pursuit/utils"
)

const epsilon = 1e-9

// Belief is a probability mass function over board nodes. The zero mass
// case (Sum() == 0) only arises when no node can hold the adversary, which
// callers treat as terminal.
type Belief struct {
	masses map[game.NodeID]float64
}

// New builds a belief from raw masses and normalizes them. Entries with
// non-positive mass are dropped.
func New(masses map[game.NodeID]float64) *Belief {
	b := &Belief{masses: make(map[game.NodeID]float64, len(masses))}
	total := 0.0
	for _, p := range masses {
		if p > 0 {
			total += p
		}
	}
	if total == 0 {
		return b
	}
	for n, p := range masses {
		if p > 0 {
			b.masses[n] = p / total
		}
	}
	return b
}

// NewUniform spreads mass evenly over every board node not in excluded.
// With every node excluded the result carries zero mass.
func NewUniform(board *game.Board, excluded []game.NodeID) *Belief {
	b := &Belief{masses: make(map[game.NodeID]float64, board.NumNodes())}
	count := 0
	for _, n := range board.Nodes() {
		if !utils.Contains(excluded, n) {
			count++
		}
	}
	if count == 0 {
		return b
	}
	p := 1.0 / float64(count)
	for _, n := range board.Nodes() {
		if !utils.Contains(excluded, n) {
			b.masses[n] = p
		}
	}
	return b
}

// NewCertain places the full mass on a single node, the shape Correct
// produces after a reveal.
func NewCertain(n game.NodeID) *Belief {
	return &Belief{masses: map[game.NodeID]float64{n: 1}}
}

// Predict advances the belief one adversary move: the mass on every node is
// redistributed over that node's legal destinations, excluding nodes held
// by detectives. When the used transport mode was disclosed, only that
// mode's edges carry mass and each destination weighs the same; with
// ModeAny the union of modes carries it, weighted 1 + escapeBias·degree so
// well-connected nodes ("escape routes") attract more mass than dead ends.
//
// The second return value flags a degenerate update: no destination could
// accept any mass, and the result fell back to a uniform distribution over
// nodes not occupied by a detective.
func (b *Belief) Predict(board *game.Board, used game.Mode, detectives []game.NodeID, escapeBias float64) (*Belief, bool) {
	next := make(map[game.NodeID]float64, len(b.masses))
	for _, n := range b.sortedSupport() {
		p := b.masses[n]
		destinations := game.LegalMoves(board, n, used, detectives)
		if len(destinations) == 0 {
			continue
		}
		total := 0.0
		for _, d := range destinations {
			total += destinationWeight(board, d, used, escapeBias)
		}
		for _, d := range destinations {
			next[d] += p * destinationWeight(board, d, used, escapeBias) / total
		}
	}
	if normalized, ok := normalize(next); ok {
		return &Belief{masses: normalized}, false
	}
	return NewUniform(board, detectives), true
}

func destinationWeight(board *game.Board, d game.NodeID, used game.Mode, escapeBias float64) float64 {
	if used != game.ModeAny {
		return 1
	}
	return 1 + escapeBias*float64(board.Degree(d))
}

// Correct collapses the belief to certainty at the revealed node. It is the
// only operation that produces certainty.
func (b *Belief) Correct(n game.NodeID) *Belief {
	return NewCertain(n)
}

// ObserveDetectives zeroes the mass on detective-held nodes and
// renormalizes. The degenerate flag and fallback match Predict.
func (b *Belief) ObserveDetectives(board *game.Board, detectives []game.NodeID) (*Belief, bool) {
	next := make(map[game.NodeID]float64, len(b.masses))
	for n, p := range b.masses {
		if utils.Contains(detectives, n) {
			continue
		}
		next[n] = p
	}
	if normalized, ok := normalize(next); ok {
		return &Belief{masses: normalized}, false
	}
	return NewUniform(board, detectives), true
}

func normalize(masses map[game.NodeID]float64) (map[game.NodeID]float64, bool) {
	total := 0.0
	for _, p := range masses {
		total += p
	}
	if total <= 0 {
		return nil, false
	}
	for n := range masses {
		masses[n] /= total
	}
	return masses, true
}

// Prob returns the mass on n, zero for nodes outside the support.
func (b *Belief) Prob(n game.NodeID) float64 {
	return b.masses[n]
}

// Sum is the total mass; 1 up to rounding, or exactly 0 for the terminal
// zero-mass belief.
func (b *Belief) Sum() float64 {
	total := 0.0
	for _, p := range b.masses {
		total += p
	}
	return total
}

// Support lists the nodes holding mass, ascending.
func (b *Belief) Support() []game.NodeID {
	return b.sortedSupport()
}

// Certain reports the node holding the full mass, if any.
func (b *Belief) Certain() (game.NodeID, bool) {
	for n, p := range b.masses {
		if p >= 1-epsilon {
			return n, true
		}
	}
	return 0, false
}

// TopCandidates returns the smallest set of highest-probability nodes whose
// cumulative mass strictly exceeds coverage. Probability ties resolve by
// ascending node so the set is deterministic; the result is re-sorted
// ascending for canonical iteration.
func (b *Belief) TopCandidates(coverage float64) []game.NodeID {
	support := b.sortedSupport()
	sort.SliceStable(support, func(i, j int) bool {
		pi, pj := b.masses[support[i]], b.masses[support[j]]
		if pi != pj {
			return pi > pj
		}
		return support[i] < support[j]
	})

	var chosen []game.NodeID
	cumulative := 0.0
	for _, n := range support {
		chosen = append(chosen, n)
		cumulative += b.masses[n]
		if cumulative > coverage {
			break
		}
	}
	sort.Slice(chosen, func(i, j int) bool { return chosen[i] < chosen[j] })
	return chosen
}

func (b *Belief) sortedSupport() []game.NodeID {
	return utils.SortedKeys(b.masses)
}

// String renders the highest-mass entries for logs.
func (b *Belief) String() string {
	support := b.sortedSupport()
	sort.SliceStable(support, func(i, j int) bool {
		pi, pj := b.masses[support[i]], b.masses[support[j]]
		if pi != pj {
			return pi > pj
		}
		return support[i] < support[j]
	})
	const shown = 4
	parts := make([]string, 0, shown+1)
	for i, n := range support {
		if i == shown {
			parts = append(parts, fmt.Sprintf("+%d more", len(support)-shown))
			break
		}
		parts = append(parts, fmt.Sprintf("%d:%.3f", n, b.masses[n]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
