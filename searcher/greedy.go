package searcher

import (
	"math"

	"pursuit/belief"
	"pursuit/game"
)

// Greedy assigns each detective the destination that maximizes Score with
// every other detective held at its current assignment, in detective order.
// It is the one-ply strategy: no look-ahead, no adversary model. A detective
// with no legal destination holds position; when no detective can move at
// all the error is game.ErrNoLegalMoves.
func Greedy(b *game.Board, bel *belief.Belief, detectives []game.NodeID, w Weights) (game.JointMove, float64, error) {
	if !anyLegalMove(b, detectives) {
		return nil, 0, game.ErrNoLegalMoves
	}
	move, score := greedy(b, bel, detectives, w)
	return move, score, nil
}

// greedy is the depth-0 assignment without the legality precondition; the
// deepening search uses it directly as its budget-exhaustion fallback.
func greedy(b *game.Board, bel *belief.Belief, detectives []game.NodeID, w Weights) (game.JointMove, float64) {
	assigned := game.JointMove(detectives).Clone()
	for i := range assigned {
		moves := game.LegalMoves(b, assigned[i], game.ModeAny, otherPositions(assigned, i))
		if len(moves) == 0 {
			continue // blocked: hold position
		}
		best := math.Inf(-1)
		choice := assigned[i]
		for _, m := range moves {
			assigned[i] = m
			if value := Score(b, bel, assigned, w); value > best {
				best = value
				choice = m
			}
		}
		assigned[i] = choice
	}
	return assigned, Score(b, bel, assigned, w)
}

// anyLegalMove reports whether at least one detective has a legal
// destination given the others' current positions.
func anyLegalMove(b *game.Board, detectives []game.NodeID) bool {
	for i := range detectives {
		if len(game.LegalMoves(b, detectives[i], game.ModeAny, otherPositions(detectives, i))) > 0 {
			return true
		}
	}
	return false
}

// otherPositions lists every position except the one at skip.
func otherPositions(positions []game.NodeID, skip int) []game.NodeID {
	others := make([]game.NodeID, 0, len(positions)-1)
	for i, p := range positions {
		if i != skip {
			others = append(others, p)
		}
	}
	return others
}
