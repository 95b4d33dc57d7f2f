package engine

import (
	"golang.org/x/exp/rand"

	"pursuit/game"
)

// Adversary decides the hidden player's move in self-play. It is a
// simulation stand-in: in a real game the adversary is the opponent and
// only the Observation of their move reaches the engine.
type Adversary interface {
	Move(b *game.Board, from game.NodeID, detectives []game.NodeID) (game.NodeID, game.Mode, error)
}

// RandomAdversary walks uniformly over the legal (destination, mode) pairs,
// so an edge served by two modes is twice as likely as a single-mode edge.
// Seeded, so games replay exactly.
type RandomAdversary struct {
	rng *rand.Rand
}

func NewRandomAdversary(seed uint64) *RandomAdversary {
	return &RandomAdversary{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAdversary) Move(b *game.Board, from game.NodeID, detectives []game.NodeID) (game.NodeID, game.Mode, error) {
	type step struct {
		to   game.NodeID
		mode game.Mode
	}
	var steps []step
	for _, mode := range game.AllModes {
		for _, to := range game.LegalMoves(b, from, mode, detectives) {
			steps = append(steps, step{to: to, mode: mode})
		}
	}
	if len(steps) == 0 {
		return 0, game.ModeAny, game.ErrNoLegalMoves
	}

	chosen := steps[a.rng.Intn(len(steps))]
	return chosen.to, chosen.mode, nil
}
