package engine

import (
	"context"
	"time"

	"pursuit/belief"
	"pursuit/game"
	"pursuit/searcher"
)

// Strategy picks the detectives' joint move for one turn. The search and
// greedy strategies share this interface, so a runner can swap them between
// turns.
type Strategy interface {
	ChooseMove(ctx context.Context, b *game.Board, bel *belief.Belief, detectives []game.NodeID) (game.JointMove, searcher.Result, error)
}

// SearchStrategy answers with the iterative-deepening adversarial search.
type SearchStrategy struct {
	searcher *searcher.Searcher
}

// NewSearchStrategy builds the searcher from the config. collector may be
// nil.
func NewSearchStrategy(cfg Config, collector searcher.Collector) *SearchStrategy {
	options := []searcher.Option{
		searcher.WithMaxDepth(cfg.MaxDepth),
		searcher.WithTimeBudget(cfg.TimeBudget),
		searcher.WithBeliefCoverage(cfg.BeliefCoverage),
		searcher.WithWeights(cfg.Weights()),
	}
	if collector != nil {
		options = append(options, searcher.WithMetrics(collector))
	}
	return &SearchStrategy{searcher: searcher.NewSearcher(cfg.Goroutines, options...)}
}

func (s *SearchStrategy) ChooseMove(ctx context.Context, b *game.Board, bel *belief.Belief, detectives []game.NodeID) (game.JointMove, searcher.Result, error) {
	return s.searcher.FindMove(ctx, b, bel, detectives)
}

// GreedyStrategy answers with the one-ply assignment. It is the search's
// depth-0 baseline packaged as a strategy of its own, kept as the
// experiment control group.
type GreedyStrategy struct {
	weights searcher.Weights
}

func NewGreedyStrategy(w searcher.Weights) *GreedyStrategy {
	if w.Validate() != nil {
		w = searcher.DefaultWeights()
	}
	return &GreedyStrategy{weights: w}
}

func (g *GreedyStrategy) ChooseMove(ctx context.Context, b *game.Board, bel *belief.Belief, detectives []game.NodeID) (game.JointMove, searcher.Result, error) {
	start := time.Now()
	move, score, err := searcher.Greedy(b, bel, detectives, g.weights)
	if err != nil {
		return nil, searcher.Result{}, err
	}
	return move, searcher.Result{Score: score, Elapsed: time.Since(start)}, nil
}
