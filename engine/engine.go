// Package engine exposes the detective decision subsystem to a game loop.
// ComputeDetectiveMove picks the joint move for the current turn and
// UpdateBelief advances the detectives' knowledge after each adversary
// move; everything else (ground truth, rendering, input) belongs to the
// caller. LocalGame in this package is the in-process caller used for
// self-play and experiments.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"pursuit/belief"
	"pursuit/game"
	"pursuit/searcher"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config collects every tunable of the decision subsystem. Start from
// DefaultConfig and override; the zero value does not validate.
type Config struct {
	ProximityWeight float64       `yaml:"proximity_weight"`
	CoverageWeight  float64       `yaml:"coverage_weight"`
	EscapeBias      float64       `yaml:"escape_bias"`
	BeliefCoverage  float64       `yaml:"belief_coverage"`
	MaxDepth        int           `yaml:"max_depth"`
	TimeBudget      time.Duration `yaml:"time_budget"`
	Goroutines      int           `yaml:"goroutines"`
}

func DefaultConfig() Config {
	return Config{
		ProximityWeight: 1,
		CoverageWeight:  0.5,
		EscapeBias:      1.0 / 3,
		BeliefCoverage:  0.8,
		MaxDepth:        2,
		TimeBudget:      2 * time.Second,
		Goroutines:      8,
	}
}

func (c Config) Validate() error {
	if err := c.Weights().Validate(); err != nil {
		return err
	}
	if c.BeliefCoverage <= 0 || c.BeliefCoverage > 1 {
		return fmt.Errorf("belief coverage must be in (0, 1], got %v", c.BeliefCoverage)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("time budget must be positive, got %v", c.TimeBudget)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be at least 1, got %d", c.Goroutines)
	}
	return nil
}

// Weights maps the config's evaluation entries onto searcher weights.
func (c Config) Weights() searcher.Weights {
	return searcher.Weights{
		Proximity:  c.ProximityWeight,
		Coverage:   c.CoverageWeight,
		EscapeBias: c.EscapeBias,
	}
}

// rawConfig mirrors Config with optional fields so a file only overrides
// the entries it names. The time budget is a duration string ("1500ms").
type rawConfig struct {
	ProximityWeight *float64 `yaml:"proximity_weight"`
	CoverageWeight  *float64 `yaml:"coverage_weight"`
	EscapeBias      *float64 `yaml:"escape_bias"`
	BeliefCoverage  *float64 `yaml:"belief_coverage"`
	MaxDepth        *int     `yaml:"max_depth"`
	TimeBudget      *string  `yaml:"time_budget"`
	Goroutines      *int     `yaml:"goroutines"`
}

// LoadConfig reads a YAML config file and merges it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.ProximityWeight != nil {
		cfg.ProximityWeight = *raw.ProximityWeight
	}
	if raw.CoverageWeight != nil {
		cfg.CoverageWeight = *raw.CoverageWeight
	}
	if raw.EscapeBias != nil {
		cfg.EscapeBias = *raw.EscapeBias
	}
	if raw.BeliefCoverage != nil {
		cfg.BeliefCoverage = *raw.BeliefCoverage
	}
	if raw.MaxDepth != nil {
		cfg.MaxDepth = *raw.MaxDepth
	}
	if raw.TimeBudget != nil {
		budget, err := time.ParseDuration(*raw.TimeBudget)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse time budget: %w", err)
		}
		cfg.TimeBudget = budget
	}
	if raw.Goroutines != nil {
		cfg.Goroutines = *raw.Goroutines
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Observation describes what the adversary's last move disclosed. The zero
// value means nothing was disclosed.
type Observation struct {
	UsedMode game.Mode   // travel-log transport mode, ModeAny when hidden
	Revealed game.NodeID // ground-truth node on scheduled reveal turns, 0 otherwise
}

// MoveEvent reports one computed joint move.
type MoveEvent struct {
	Turn      int
	Positions []game.NodeID // detective positions the move was computed from
	Move      game.JointMove
	Result    searcher.Result
}

// BeliefEvent reports one belief update.
type BeliefEvent struct {
	Turn        int
	Observation Observation
	Belief      *belief.Belief
	Degenerate  bool
}

// Observer receives engine events; renderers and experiment recorders
// subscribe with WithObserver. Callbacks run synchronously on the engine's
// goroutine and should return quickly.
type Observer interface {
	HandleMove(MoveEvent)
	HandleBelief(BeliefEvent)
}

// Engine drives the decision subsystem for one game. It is not safe for
// concurrent use; run one Engine per game.
type Engine struct {
	board     *game.Board
	config    Config
	strategy  Strategy
	collector searcher.Collector
	observers []Observer

	moves   int
	updates int
}

type EngineOption func(e *Engine)

func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithStrategy replaces the default search strategy.
func WithStrategy(s Strategy) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithCollector routes search metrics from the default strategy to c. It
// has no effect when WithStrategy is also given.
func WithCollector(c searcher.Collector) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

func New(b *game.Board, cfg Config, options ...EngineOption) (*Engine, error) {
	if b == nil {
		return nil, fmt.Errorf("engine requires a board")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{board: b, config: cfg}
	for _, option := range options {
		option(e)
	}
	if e.strategy == nil {
		e.strategy = NewSearchStrategy(cfg, e.collector)
	}
	return e, nil
}

// ComputeDetectiveMove picks the detectives' joint move for the current
// turn. bel must already reflect the adversary's last move (UpdateBelief).
// budget <= 0 uses the configured time budget. game.ErrNoLegalMoves means
// every detective is blocked; the caller owns the game-level consequence.
func (e *Engine) ComputeDetectiveMove(ctx context.Context, bel *belief.Belief, detectives []game.NodeID, budget time.Duration) (game.JointMove, searcher.Result, error) {
	if budget <= 0 {
		budget = e.config.TimeBudget
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	e.moves++
	move, result, err := e.strategy.ChooseMove(ctx, e.board, bel, detectives)
	if err != nil {
		return nil, searcher.Result{}, fmt.Errorf("failed to compute joint move: %w", err)
	}

	if result.Fallback {
		log.Warn().Msgf("turn %d: budget %v exhausted before depth 1 completed, using the greedy move", e.moves, budget)
	}
	log.Info().Msgf("turn %d: move %v score %g depth %d nodes %d in %v",
		e.moves, move, result.Score, result.Depth, result.Nodes, result.Elapsed)

	event := MoveEvent{
		Turn:      e.moves,
		Positions: append([]game.NodeID(nil), detectives...),
		Move:      move,
		Result:    result,
	}
	for _, o := range e.observers {
		o.HandleMove(event)
	}
	return move, result, nil
}

// UpdateBelief advances the belief for one adversary move: the detectives'
// positions are folded in as passive evidence, the move is predicted under
// the disclosed transport mode, and a scheduled reveal collapses the result
// to the ground-truth node. The flag reports a degenerate update that
// recovered to a uniform distribution.
func (e *Engine) UpdateBelief(bel *belief.Belief, obs Observation, detectives []game.NodeID) (*belief.Belief, bool) {
	e.updates++

	next, observeDegenerate := bel.ObserveDetectives(e.board, detectives)
	next, predictDegenerate := next.Predict(e.board, obs.UsedMode, detectives, e.config.EscapeBias)
	degenerate := observeDegenerate || predictDegenerate
	if obs.Revealed != 0 {
		next = next.Correct(obs.Revealed)
	}

	if degenerate {
		log.Warn().Msgf("update %d: degenerate belief recovered to uniform", e.updates)
	}

	event := BeliefEvent{Turn: e.updates, Observation: obs, Belief: next, Degenerate: degenerate}
	for _, o := range e.observers {
		o.HandleBelief(event)
	}
	return next, degenerate
}
