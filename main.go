package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sburba/chive/internal/selfplay"
	"github.com/sburba/chive/pkg/engine"
	eval "github.com/sburba/chive/pkg/eval/queen"
)

type config struct {
	games        int
	concurrency  int
	maxPly       int
	openingPlies int
	seed         uint64
	depth        int
	nodes        int
	moveTime     time.Duration
	threads      int
	hash         int
	replayPath   string
}

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var cfg config
	flag.IntVar(&cfg.games, "games", 2, "number of games to play")
	flag.IntVar(&cfg.concurrency, "concurrency", 1, "games played in parallel")
	flag.IntVar(&cfg.maxPly, "maxply", 300, "ply budget per game")
	flag.IntVar(&cfg.openingPlies, "openings", 2, "seeded random plies per game")
	flag.Uint64Var(&cfg.seed, "seed", 1, "base seed for opening plies")
	flag.IntVar(&cfg.depth, "depth", 0, "fixed search depth per turn")
	flag.IntVar(&cfg.nodes, "nodes", 0, "fixed node budget per turn")
	flag.DurationVar(&cfg.moveTime, "movetime", 100*time.Millisecond, "time budget per turn")
	flag.IntVar(&cfg.threads, "threads", 1, "search threads per engine")
	flag.IntVar(&cfg.hash, "hash", 64, "transposition table size in MB")
	flag.StringVar(&cfg.replayPath, "replay", "", "write replays to this file")
	flag.Parse()

	if err := run(logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("match failed")
	}
}

func run(logger zerolog.Logger, cfg config) error {
	var tc selfplay.TimeControl
	switch {
	case cfg.depth != 0:
		tc.FixedDepth = cfg.depth
	case cfg.nodes != 0:
		tc.FixedNodes = cfg.nodes
	default:
		tc.FixedTime = cfg.moveTime
	}

	var newSearcher = func() selfplay.Searcher {
		var e = engine.NewEngine(func() engine.Evaluator {
			return eval.NewEvaluationService()
		})
		e.Hash = cfg.hash
		e.Threads = cfg.threads
		e.Prepare()
		return e
	}

	var onTrace func(selfplay.GameTrace) error
	if cfg.replayPath != "" {
		var f, err = os.Create(cfg.replayPath)
		if err != nil {
			return err
		}
		defer f.Close()
		var tw = selfplay.NewTraceWriter(f)
		onTrace = tw.Write
	}

	var score, err = selfplay.Run(context.Background(), selfplay.Config{
		Games:        cfg.games,
		Concurrency:  cfg.concurrency,
		MaxPly:       cfg.maxPly,
		OpeningPlies: cfg.openingPlies,
		Seed:         cfg.seed,
		TimeControl:  tc,
		EngineFirst:  newSearcher,
		EngineSecond: newSearcher,
		Logger:       logger,
		OnTrace:      onTrace,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("wins", score.Wins).
		Int("losses", score.Losses).
		Int("draws", score.Draws).
		Int("undecided", score.Undecided).
		Msg("final score")
	return nil
}
