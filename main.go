// Command pursuit runs detective self-play on a board scenario. The engine
// tracks a belief over the hidden adversary's location and searches joint
// detective moves; a seeded random walker plays the adversary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pursuit/boarddata"
	"pursuit/engine"
	"pursuit/experiments"
	"pursuit/observability"
	"pursuit/searcher"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario YAML path (default: the embedded demo board)")
	configPath := flag.String("config", "", "engine config YAML path")
	games := flag.Int("games", 1, "number of self-play games")
	turns := flag.Int("turns", engine.DefaultMaxTurns, "turn limit per game")
	seed := flag.Uint64("seed", 1, "base seed for the adversary walk")
	goroutines := flag.Int("goroutines", 0, "search goroutines (overrides config when set)")
	budget := flag.Duration("budget", 0, "search budget per move (overrides config when set)")
	depth := flag.Int("depth", 0, "iterative-deepening limit (overrides config when set)")
	greedy := flag.Bool("greedy", false, "play the one-ply greedy strategy instead of searching")
	metricsAddr := flag.String("metrics", "", "HTTP address for Prometheus /metrics (off when empty)")
	experiment := flag.String("experiment", "", "run a batch experiment: strategies, depth or throughput")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *experiment != "" {
		switch *experiment {
		case "strategies":
			experiments.RunStrategyComparison()
		case "depth":
			experiments.RunDepthExperiment()
		case "throughput":
			experiments.RunParallelismThroughput()
		default:
			log.Fatal().Msgf("unknown experiment %q", *experiment)
		}
		return
	}

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}
	if *budget > 0 {
		cfg.TimeBudget = *budget
	}
	if *depth > 0 {
		cfg.MaxDepth = *depth
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	scenario := boarddata.Demo()
	if *scenarioPath != "" {
		loaded, err := boarddata.Load(*scenarioPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load scenario")
		}
		scenario = loaded
	}
	board, err := scenario.Board()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build board")
	}

	var collector searcher.Collector
	var metricsSrv *http.Server
	if *metricsAddr != "" {
		prom, err := observability.NewPrometheusCollector(nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up metrics")
		}
		collector = prom
		metricsSrv = serveMetrics(*metricsAddr, prom)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Playing %d game(s) on %s with detectives %v...\n", *games, scenario.Name, scenario.Detectives)

	captures := 0
	played := 0
	for i := 0; i < *games; i++ {
		options := []engine.EngineOption{}
		if collector != nil {
			options = append(options, engine.WithCollector(collector))
		}
		if *greedy {
			options = append(options, engine.WithStrategy(engine.NewGreedyStrategy(cfg.Weights())))
		}

		e, err := engine.New(board, cfg, options...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create engine")
		}

		adversary := engine.NewRandomAdversary(*seed + uint64(i))
		g, err := engine.NewLocalGame(e, adversary, scenario.Detectives, scenario.Adversary, scenario.RevealTurns, *turns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create game")
		}

		outcome, err := g.Run(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Printf("Game %d interrupted.\n", i+1)
				break
			}
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}

		played++
		if outcome.Captured {
			captures++
			fmt.Printf("Game %d over! Adversary captured after %d turn(s).\n", i+1, outcome.Turns)
		} else {
			fmt.Printf("Game %d over! Adversary escaped after %d turn(s).\n", i+1, outcome.Turns)
		}
	}

	if played > 0 {
		fmt.Printf("Captured in %d of %d game(s) (%.0f%%).\n", captures, played, float64(captures)/float64(played)*100)
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

func serveMetrics(addr string, collector *observability.PrometheusCollector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server exited")
		}
	}()

	log.Info().Msgf("serving Prometheus metrics on %s/metrics", addr)
	return srv
}
