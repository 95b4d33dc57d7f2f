// Package experiments runs batches of seeded self-play games to compare
// engine configurations. Results are stored as CSV files under results/.
package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pursuit/boarddata"
	"pursuit/engine"
	"pursuit/experiments/metrics"
	"pursuit/game"
)

const (
	NumGames = 30 // Per configuration
	BaseSeed = 1000
)

// RunStrategyComparison plays the searched strategy and the greedy baseline
// on identical seeds, so per-seed outcomes are directly comparable.
func RunStrategyComparison() {
	configs := []metrics.RunConfig{
		{ID: 1, Strategy: "greedy", Goroutines: 1},
		{ID: 2, Strategy: "search", Goroutines: 8, Depth: 2, Budget: 2 * time.Second},
	}

	runExperiment("strategies", configs, NumGames)
}

// RunDepthExperiment varies the iterative-deepening limit.
func RunDepthExperiment() {
	configs := []metrics.RunConfig{
		{ID: 1, Strategy: "search", Goroutines: 8, Depth: 1, Budget: 2 * time.Second},
		{ID: 2, Strategy: "search", Goroutines: 8, Depth: 2, Budget: 2 * time.Second},
		{ID: 3, Strategy: "search", Goroutines: 8, Depth: 3, Budget: 2 * time.Second},
	}

	runExperiment("depth", configs, NumGames)
}

func runExperiment(name string, configs []metrics.RunConfig, games int) {
	scenario := boarddata.Demo()
	board, err := scenario.Board()
	if err != nil {
		panic(fmt.Sprintf("failed to build experiment board: %v", err))
	}

	// Run a number of games for each configuration
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(configs), config)

		for i := 0; i < games; i++ {
			// The same seed across configs pairs the games
			seed := BaseSeed + uint64(i)

			count++
			record, moves := runGame(board, scenario, config, seed, count)
			gameRecords = append(gameRecords, record)
			moveRecords = append(moveRecords, moves...)

			log.Info().Msgf("completed config %d of %d game %d of %d: captured=%t turns=%d",
				ci+1, len(configs), i+1, games, record.Captured, record.Turns)
		}
		log.Info().Msgf("completed config %d of %d", ci+1, len(configs))
	}

	log.Info().Msgf("completed %s experiment", name)

	storeRecords(name, configs, gameRecords, moveRecords)
}

func storeRecords(name string, configs []metrics.RunConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteRunConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store run configs: %v", err))
	}
	log.Info().Msg("stored run configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}
	log.Info().Msgf("stored move records under %s", writer.Dir())
}

// runGame plays a single seeded game under one configuration.
func runGame(board *game.Board, scenario *boarddata.Scenario, config metrics.RunConfig, seed uint64, id int) (metrics.GameRecord, []metrics.MoveRecord) {
	recorder := &moveRecorder{game: id}
	e, err := newEngine(board, config, recorder)
	if err != nil {
		panic(fmt.Sprintf("failed to create engine: %v", err))
	}

	adversary := engine.NewRandomAdversary(seed)
	g, err := engine.NewLocalGame(e, adversary, scenario.Detectives, scenario.Adversary, scenario.RevealTurns, 0)
	if err != nil {
		panic(fmt.Sprintf("failed to create game: %v", err))
	}

	start := time.Now()
	outcome, err := g.Run(context.Background())
	if err != nil {
		panic(fmt.Sprintf("game %d failed: %v", id, err))
	}

	return metrics.GameRecord{
		ID:       id,
		Config:   config.ID,
		Seed:     seed,
		Captured: outcome.Captured,
		Turns:    outcome.Turns,
		Duration: time.Since(start),
	}, recorder.records
}

func newEngine(board *game.Board, config metrics.RunConfig, recorder *moveRecorder) (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	if config.Goroutines > 0 {
		cfg.Goroutines = config.Goroutines
	}
	if config.Depth > 0 {
		cfg.MaxDepth = config.Depth
	}
	if config.Budget > 0 {
		cfg.TimeBudget = config.Budget
	}

	options := []engine.EngineOption{engine.WithObserver(recorder)}
	if config.Strategy == "greedy" {
		options = append(options, engine.WithStrategy(engine.NewGreedyStrategy(cfg.Weights())))
	}

	return engine.New(board, cfg, options...)
}

// moveRecorder collects one MoveRecord per computed joint move.
type moveRecorder struct {
	game    int
	records []metrics.MoveRecord
}

func (r *moveRecorder) HandleMove(e engine.MoveEvent) {
	r.records = append(r.records, metrics.MoveRecord{
		Game:     r.game,
		Turn:     e.Turn,
		Move:     fmt.Sprintf("%v", e.Move),
		Score:    e.Result.Score,
		Depth:    e.Result.Depth,
		Nodes:    e.Result.Nodes,
		Prunes:   e.Result.Prunes,
		Fallback: e.Result.Fallback,
		Elapsed:  e.Result.Elapsed,
	})
}

func (r *moveRecorder) HandleBelief(engine.BeliefEvent) {}
