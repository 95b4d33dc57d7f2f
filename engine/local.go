package engine

import (
	"context"
	"errors"
	"fmt"

	"pursuit/belief"
	"pursuit/game"
	"pursuit/utils"

	"github.com/rs/zerolog/log"
)

// DefaultMaxTurns is the canonical game length: the adversary wins by
// evading capture this long.
const DefaultMaxTurns = 24

// LocalGame plays the full pursuit loop in-process. It owns the ground
// truth (the adversary's real position), drives the adversary stand-in, and
// queries the engine for the detectives' joint moves. The detectives' side
// only ever sees Observations, exactly as against a remote opponent.
type LocalGame struct {
	engine     *Engine
	adversary  Adversary
	bel        *belief.Belief
	detectives []game.NodeID
	hidden     game.NodeID
	reveals    map[int]bool
	maxTurns   int
}

// Outcome reports how a game ended.
type Outcome struct {
	Captured bool
	Turns    int
}

// NewLocalGame validates the starting configuration. The adversary's start
// is hidden from the detectives, so the initial belief is uniform over every
// node they do not hold. maxTurns <= 0 selects DefaultMaxTurns.
func NewLocalGame(e *Engine, adversary Adversary, detectives []game.NodeID, hidden game.NodeID, revealTurns []int, maxTurns int) (*LocalGame, error) {
	if e == nil {
		return nil, fmt.Errorf("local game requires an engine")
	}
	if adversary == nil {
		return nil, fmt.Errorf("local game requires an adversary")
	}
	if len(detectives) == 0 {
		return nil, fmt.Errorf("local game requires at least one detective")
	}
	for i, d := range detectives {
		if !e.board.Has(d) {
			return nil, fmt.Errorf("detective %d starts on unknown node %d", i, d)
		}
		if utils.Contains(detectives[:i], d) {
			return nil, fmt.Errorf("detectives %d and %d share starting node %d", utils.FindIndex(detectives, d), i, d)
		}
	}
	if !e.board.Has(hidden) {
		return nil, fmt.Errorf("adversary starts on unknown node %d", hidden)
	}
	if utils.Contains(detectives, hidden) {
		return nil, fmt.Errorf("adversary starts on detective-held node %d", hidden)
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	reveals := make(map[int]bool, len(revealTurns))
	for _, turn := range revealTurns {
		reveals[turn] = true
	}

	return &LocalGame{
		engine:     e,
		adversary:  adversary,
		bel:        belief.NewUniform(e.board, detectives),
		detectives: append([]game.NodeID(nil), detectives...),
		hidden:     hidden,
		reveals:    reveals,
		maxTurns:   maxTurns,
	}, nil
}

// Run plays turns until the adversary is captured, the detectives are all
// blocked, or the turn limit is reached. Each turn the adversary moves
// first, the belief absorbs the resulting observation (the transport mode
// is always disclosed, the node only on scheduled reveal turns), and the
// detectives respond with a searched joint move.
func (g *LocalGame) Run(ctx context.Context) (Outcome, error) {
	log.Info().Msgf("starting game: %d detectives, %d nodes, max %d turns",
		len(g.detectives), g.engine.board.NumNodes(), g.maxTurns)

	for turn := 1; turn <= g.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return Outcome{Turns: turn - 1}, err
		}

		to, mode, err := g.adversary.Move(g.engine.board, g.hidden, g.detectives)
		if errors.Is(err, game.ErrNoLegalMoves) {
			log.Info().Msgf("turn %d: adversary trapped at %d", turn, g.hidden)
			return Outcome{Captured: true, Turns: turn}, nil
		}
		if err != nil {
			return Outcome{Turns: turn}, fmt.Errorf("failed to move adversary: %w", err)
		}
		g.hidden = to

		obs := Observation{UsedMode: mode}
		if g.reveals[turn] {
			obs.Revealed = g.hidden
			log.Info().Msgf("turn %d: adversary revealed at %d", turn, g.hidden)
		}
		g.bel, _ = g.engine.UpdateBelief(g.bel, obs, g.detectives)

		move, _, err := g.engine.ComputeDetectiveMove(ctx, g.bel, g.detectives, 0)
		if errors.Is(err, game.ErrNoLegalMoves) {
			log.Info().Msgf("turn %d: every detective is blocked, adversary escapes", turn)
			return Outcome{Turns: turn}, nil
		}
		if err != nil {
			return Outcome{Turns: turn}, err
		}
		g.detectives = move

		if utils.Contains(g.detectives, g.hidden) {
			log.Info().Msgf("turn %d: adversary captured at %d", turn, g.hidden)
			return Outcome{Captured: true, Turns: turn}, nil
		}
	}

	log.Info().Msgf("adversary evaded capture for %d turns", g.maxTurns)
	return Outcome{Turns: g.maxTurns}, nil
}
