package searcher

import (
	"math"
	"sync"
	"sync/atomic"

	"pursuit/belief"
	"pursuit/game"
	"pursuit/utils"
)

// run holds the per-invocation search state: everything the recursion reads
// is immutable (board, root belief, weights) or owned by exactly one branch
// worker (its cloned position slice and stats), so branches never contend.
type run struct {
	board    *game.Board
	belief   *belief.Belief
	weights  Weights
	coverage float64
	done     <-chan struct{}

	rootDepth int
	nodes     atomic.Int64
	prunes    atomic.Int64
	metrics   Collector
}

// branchStats accumulates counters inside one root branch and is flushed to
// the shared run once the branch finishes, keeping atomics off the hot path.
type branchStats struct {
	nodes  int64
	prunes int64
}

type branchResult struct {
	move     game.JointMove
	score    float64
	complete bool
}

// halted reports a cooperative cancellation request: deadline passed or the
// caller's context was cancelled. Branches stop expanding and their depth is
// discarded.
func (r *run) halted() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// searchToDepth runs one full-width search of the given depth, fanning the
// first detective's root moves out over the worker pool. Every branch is
// searched with a full alpha-beta window, so the reduction is independent of
// worker scheduling: highest score wins, exact ties go to the
// lexicographically smallest joint move. The final return is false when
// cancellation interrupted any branch, in which case the depth's result must
// be discarded.
func (r *run) searchToDepth(goroutines int, detectives []game.NodeID, depth int) (game.JointMove, float64, bool) {
	r.rootDepth = depth

	firstMoves := game.LegalMoves(r.board, detectives[0], game.ModeAny, otherPositions(detectives, 0))
	if len(firstMoves) == 0 {
		firstMoves = []game.NodeID{detectives[0]} // blocked: hold position
	}

	tasks := make(chan int, len(firstMoves))
	for i := range firstMoves {
		tasks <- i
	}
	close(tasks)

	results := make([]branchResult, len(firstMoves))
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				positions := game.JointMove(detectives).Clone()
				positions[0] = firstMoves[t]
				results[t] = r.searchBranch(positions, depth)
			}
		}()
	}
	wg.Wait()

	var best game.JointMove
	bestScore := math.Inf(-1)
	for _, result := range results {
		if !result.complete {
			return nil, 0, false
		}
		if result.score > bestScore || (result.score == bestScore && result.move.Less(best)) {
			best = result.move
			bestScore = result.score
		}
	}
	return best, bestScore, true
}

// searchBranch evaluates one root branch: the first detective's move is
// fixed in positions and the remaining detectives are assigned by the max
// levels below. positions is owned by this branch and mutated in place.
func (r *run) searchBranch(positions game.JointMove, depth int) branchResult {
	var stats branchStats
	score, rest := r.maxLevel(positions, 1, depth, r.belief, math.Inf(-1), math.Inf(1), &stats)

	r.nodes.Add(stats.nodes)
	r.prunes.Add(stats.prunes)
	r.metrics.AddNodes(stats.nodes)
	r.metrics.AddPrunes(stats.prunes)

	if r.halted() {
		return branchResult{}
	}
	move := append(game.JointMove{positions[0]}, rest...)
	return branchResult{move: move, score: score, complete: true}
}

// maxLevel assigns a destination to detective idx and recurses to the next
// detective at the same depth; once every detective has moved it hands over
// to the minimizing level. Moves iterate in ascending node order and ties
// keep the earliest branch, so the search is deterministic. The returned
// slice is the chosen destinations for detectives idx.. and is only
// assembled at the root depth, where the caller needs the joint move.
func (r *run) maxLevel(positions game.JointMove, idx, depth int, bel *belief.Belief, alpha, beta float64, stats *branchStats) (float64, []game.NodeID) {
	if r.halted() {
		return 0, nil
	}
	if idx == len(positions) {
		return r.minLevel(positions, depth, bel, alpha, beta, stats), nil
	}
	stats.nodes++

	moves := game.LegalMoves(r.board, positions[idx], game.ModeAny, otherPositions(positions, idx))
	if len(moves) == 0 {
		moves = []game.NodeID{positions[idx]} // blocked: hold position
	}

	assembleLine := depth == r.rootDepth
	best := math.Inf(-1)
	var bestLine []game.NodeID
	previous := positions[idx]
	for _, m := range moves {
		positions[idx] = m
		value, line := r.maxLevel(positions, idx+1, depth, bel, alpha, beta, stats)
		positions[idx] = previous

		if r.halted() {
			return best, bestLine
		}
		if value > best {
			best = value
			if assembleLine {
				bestLine = append([]game.NodeID{m}, line...)
			}
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			stats.prunes++
			break
		}
	}
	return best, bestLine
}

// minLevel models the adversary's response. Candidates are the smallest
// highest-probability set of the belief covering the configured threshold,
// iterated in ascending node order; each candidate collapses the belief to
// that node and re-predicts it one ply forward, and depth decrements. A
// candidate already under a detective is a capture under that hypothesis; a
// candidate with no escape move is evaluated in place.
func (r *run) minLevel(positions game.JointMove, depth int, bel *belief.Belief, alpha, beta float64, stats *branchStats) float64 {
	if r.halted() {
		return 0
	}
	stats.nodes++

	if captured(bel, positions) {
		return CaptureScore
	}
	candidates := bel.TopCandidates(r.coverage)
	if len(candidates) == 0 {
		return Score(r.board, bel, positions, r.weights)
	}

	best := math.Inf(1)
	for _, c := range candidates {
		value := r.candidateValue(positions, depth, c, alpha, beta, stats)
		if r.halted() {
			return best
		}
		if value < best {
			best = value
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			stats.prunes++
			break
		}
	}
	return best
}

// candidateValue scores one hypothesized adversary location.
func (r *run) candidateValue(positions game.JointMove, depth int, c game.NodeID, alpha, beta float64, stats *branchStats) float64 {
	if utils.Contains(positions, c) {
		// A detective moved onto the hypothesized node: captured.
		return CaptureScore
	}
	next, trapped := belief.NewCertain(c).Predict(r.board, game.ModeAny, positions, r.weights.EscapeBias)
	if trapped {
		// The hypothesized adversary has no escape move; evaluate it pinned
		// in place rather than letting the uniform fallback teleport it.
		return Score(r.board, belief.NewCertain(c), positions, r.weights)
	}
	if depth-1 == 0 {
		return Score(r.board, next, positions, r.weights)
	}
	value, _ := r.maxLevel(positions, 0, depth-1, next, alpha, beta, stats)
	return value
}
