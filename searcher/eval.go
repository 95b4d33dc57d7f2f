// Package searcher scores detective configurations against a belief over the
// adversary's location and runs the depth-limited adversarial search that
// picks the detectives' joint move each turn. The package is pure
// computation: it never logs and never mutates its inputs, so one board and
// one belief snapshot can be shared by every search worker.
package searcher

import (
	"fmt"
	"math"

	"pursuit/belief"
	"pursuit/game"
	"pursuit/utils"
)

// CaptureScore is the value of a terminal win state: a detective standing on
// the node the belief holds with certainty.
const CaptureScore = math.MaxFloat64

// Weights are the evaluation and prediction coefficients. They are validated
// once at construction and never change during a search.
type Weights struct {
	// Proximity scales the belief-weighted expected distance term. Larger
	// values close in on the probable adversary location more aggressively.
	Proximity float64
	// Coverage scales the crowding penalty for detective pairs within one
	// hop of each other. Larger values spread the detectives out more.
	Coverage float64
	// EscapeBias weights the prediction spread toward well-connected nodes:
	// a destination of degree d attracts mass proportional to 1+EscapeBias*d
	// when the adversary's transport mode was not disclosed.
	EscapeBias float64
}

// DefaultWeights returns the documented defaults: proximity 1, coverage 0.5,
// escape bias 1/3.
func DefaultWeights() Weights {
	return Weights{Proximity: 1, Coverage: 0.5, EscapeBias: 1.0 / 3}
}

func (w Weights) Validate() error {
	if w.Proximity <= 0 {
		return fmt.Errorf("proximity weight must be positive, got %v", w.Proximity)
	}
	if w.Coverage < 0 {
		return fmt.Errorf("coverage weight must not be negative, got %v", w.Coverage)
	}
	if w.EscapeBias < 0 {
		return fmt.Errorf("escape bias must not be negative, got %v", w.EscapeBias)
	}
	return nil
}

// Score rates a detective configuration against a belief snapshot; higher is
// better for the detectives. It is CaptureScore when a detective stands on a
// confirmed adversary node, and otherwise the negated belief-weighted
// expected distance to the nearest detective minus a crowding penalty for
// each detective pair within one hop of another.
func Score(b *game.Board, bel *belief.Belief, detectives []game.NodeID, w Weights) float64 {
	if captured(bel, detectives) {
		return CaptureScore
	}

	expected := 0.0
	for _, n := range bel.Support() {
		expected += bel.Prob(n) * float64(minDistance(b, detectives, n))
	}

	return -w.Proximity*expected - w.Coverage*float64(crowdedPairs(b, detectives))
}

// captured reports whether the belief is certain and a detective holds that
// node.
func captured(bel *belief.Belief, detectives []game.NodeID) bool {
	n, certain := bel.Certain()
	return certain && utils.Contains(detectives, n)
}

func minDistance(b *game.Board, detectives []game.NodeID, n game.NodeID) int {
	closest := math.MaxInt
	for _, d := range detectives {
		if dist := b.Distance(d, n); dist >= 0 && dist < closest {
			closest = dist
		}
	}
	return closest
}

// crowdedPairs counts unordered detective pairs at hop distance <= 1.
func crowdedPairs(b *game.Board, detectives []game.NodeID) int {
	crowded := 0
	for i := 0; i < len(detectives); i++ {
		for j := i + 1; j < len(detectives); j++ {
			if dist := b.Distance(detectives[i], detectives[j]); dist >= 0 && dist <= 1 {
				crowded++
			}
		}
	}
	return crowded
}
