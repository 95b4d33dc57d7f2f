package searcher

import (
	"context"
	"time"

	"pursuit/belief"
	"pursuit/game"
)

const DefaultMaxDepth = 2
const DefaultBudget = 2 * time.Second
const DefaultCoverage = 0.8

type Option func(s *Searcher)

// Searcher picks the detectives' joint move by iterative-deepening
// adversarial search over the belief's most probable adversary locations.
// A Searcher is reusable across turns; FindMove itself must not be called
// concurrently on the same instance when a real metrics collector is
// installed.
type Searcher struct {
	goroutines int
	maxDepth   int
	budget     time.Duration
	coverage   float64
	weights    Weights
	metrics    Collector
}

func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithTimeBudget bounds one FindMove call. The budget only applies when the
// caller's context carries no deadline of its own.
func WithTimeBudget(budget time.Duration) Option {
	return func(s *Searcher) {
		if budget > 0 {
			s.budget = budget
		}
	}
}

// WithBeliefCoverage sets the probability mass the adversary model must
// cover when picking belief candidates, in (0, 1].
func WithBeliefCoverage(coverage float64) Option {
	return func(s *Searcher) {
		if coverage > 0 && coverage <= 1 {
			s.coverage = coverage
		}
	}
}

func WithWeights(w Weights) Option {
	return func(s *Searcher) {
		if w.Validate() == nil {
			s.weights = w
		}
	}
}

func WithMetrics(c Collector) Option {
	return func(s *Searcher) {
		if c != nil {
			s.metrics = c
		}
	}
}

func NewSearcher(goroutines int, options ...Option) *Searcher {
	if goroutines < 1 {
		goroutines = 1
	}
	s := &Searcher{ // Default values
		goroutines: goroutines,
		maxDepth:   DefaultMaxDepth,
		budget:     DefaultBudget,
		coverage:   DefaultCoverage,
		weights:    DefaultWeights(),
		metrics:    NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result reports how the returned move was found.
type Result struct {
	Score    float64
	Depth    int // deepest fully completed depth, 0 when only the baseline finished
	Nodes    int64
	Prunes   int64
	Elapsed  time.Duration
	Fallback bool // true when the greedy baseline was returned
}

// FindMove returns the best joint move for the detectives given the current
// belief. Depths 1..maxDepth are searched in turn and a depth interrupted by
// the deadline is discarded, so the same inputs always produce the same
// move. The greedy one-ply assignment is computed first as the depth-0
// baseline; it is what the deadline can never take away, and FindMove
// returns it with Fallback set when no full depth completes in time.
// game.ErrNoLegalMoves is returned when every detective is blocked.
func (s *Searcher) FindMove(ctx context.Context, b *game.Board, bel *belief.Belief, detectives []game.NodeID) (game.JointMove, Result, error) {
	start := time.Now()
	if !anyLegalMove(b, detectives) {
		return nil, Result{}, game.ErrNoLegalMoves
	}

	s.metrics.Start(s.goroutines)

	if _, ok := ctx.Deadline(); !ok && s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}

	r := &run{
		board:    b,
		belief:   bel,
		weights:  s.weights,
		coverage: s.coverage,
		done:     ctx.Done(),
		metrics:  s.metrics,
	}

	best, bestScore := greedy(b, bel, detectives, s.weights)
	result := Result{Score: bestScore, Fallback: true}

	for depth := 1; depth <= s.maxDepth; depth++ {
		move, score, complete := r.searchToDepth(s.goroutines, detectives, depth)
		if !complete {
			break
		}
		best, bestScore = move, score
		result = Result{Score: score, Depth: depth}
		if bestScore >= CaptureScore {
			break // a forced capture does not improve with depth
		}
	}

	result.Nodes = r.nodes.Load()
	result.Prunes = r.prunes.Load()
	result.Elapsed = time.Since(start)

	s.metrics.SetDepth(result.Depth)
	if result.Fallback {
		s.metrics.SetFallback()
	}
	s.metrics.Complete()

	return best, result, nil
}
