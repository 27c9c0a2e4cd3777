package selfplay

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sburba/chive/pkg/hive"
)

// Config drives a match between two engine builders. Engines alternate the
// first move between games so neither side banks the first-player edge.
type Config struct {
	Games        int
	Concurrency  int
	MaxPly       int
	OpeningPlies int
	Seed         uint64
	TimeControl  TimeControl
	EngineFirst  func() Searcher
	EngineSecond func() Searcher
	Logger       zerolog.Logger
	OnTrace      func(GameTrace) error
}

// Score tallies a finished match from the first engine's point of view.
type Score struct {
	Wins      int
	Losses    int
	Draws     int
	Undecided int
}

func Run(ctx context.Context, config Config) (Score, error) {
	var logger = config.Logger
	logger.Info().
		Int("games", config.Games).
		Int("concurrency", config.Concurrency).
		Int("numCPU", runtime.NumCPU()).
		Msg("match started")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan GameTrace)

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < config.Games; i++ {
			var info = gameInfo{
				gameNumber:   i + 1,
				whiteIsFirst: i%2 == 0,
				seed:         config.Seed + uint64(i),
				openingPlies: config.OpeningPlies,
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
		return nil
	})

	var score Score
	g.Go(func() error {
		for trace := range gameResults {
			tally(&score, trace)
			if config.OnTrace != nil {
				if err := config.OnTrace(trace); err != nil {
					return err
				}
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, config, gameInfos, gameResults)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	logger.Info().
		Int("wins", score.Wins).
		Int("losses", score.Losses).
		Int("draws", score.Draws).
		Int("undecided", score.Undecided).
		Msg("match finished")
	return score, err
}

func playGames(
	ctx context.Context,
	config Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- GameTrace,
) error {
	var engineFirst = config.EngineFirst()
	var engineSecond = config.EngineSecond()
	for info := range gameInfos {
		var trace, err = playGame(ctx, engineFirst, engineSecond,
			config.TimeControl, config.MaxPly, info, config.Logger)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- trace:
		}
	}
	return nil
}

func tally(score *Score, trace GameTrace) {
	var firstIsWhite = trace.FirstIsWhite
	switch trace.Outcome {
	case hive.OutcomeDraw:
		score.Draws++
	case hive.OutcomeWhiteWin:
		if firstIsWhite {
			score.Wins++
		} else {
			score.Losses++
		}
	case hive.OutcomeBlackWin:
		if firstIsWhite {
			score.Losses++
		} else {
			score.Wins++
		}
	default:
		score.Undecided++
	}
}
