package game

import (
	"errors"

	"pursuit/utils"
)

// ErrNoLegalMoves is reported when a player has no legal destination. The
// caller owns the game-level consequence; this package never decides
// win/loss.
var ErrNoLegalMoves = errors.New("no legal moves")

// LegalMoves lists the destinations reachable from `from` in one hop via
// `mode`, excluding occupied nodes. Pass nil when no occupancy restriction
// applies. Results are ascending. Detectives hold unlimited tickets for
// every mode, so they query with ModeAny.
func LegalMoves(b *Board, from NodeID, mode Mode, occupied []NodeID) []NodeID {
	neighbors := b.Neighbors(from, mode)
	moves := make([]NodeID, 0, len(neighbors))
	for _, n := range neighbors {
		if utils.Contains(occupied, n) {
			continue
		}
		moves = append(moves, n)
	}
	return moves
}
