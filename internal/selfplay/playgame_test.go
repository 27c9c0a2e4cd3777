package selfplay

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sburba/chive/pkg/engine"
	eval "github.com/sburba/chive/pkg/eval/queen"
	"github.com/sburba/chive/pkg/hive"
)

func newSearcher() Searcher {
	var e = engine.NewEngine(func() engine.Evaluator {
		return eval.NewEvaluationService()
	})
	e.Hash = 4
	e.Threads = 1
	return e
}

func TestPlayGameStopsAtPlyBudget(t *testing.T) {
	var trace, err = playGame(context.Background(),
		newSearcher(), newSearcher(),
		TimeControl{FixedDepth: 1}, 8,
		gameInfo{gameNumber: 1, whiteIsFirst: true},
		zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, hive.OutcomeUndecided, trace.Outcome)
	require.Len(t, trace.Plies, 8)

	// the recorded plies replay to a legal game with matching keys
	var pos = hive.NewPosition()
	for _, ply := range trace.Plies {
		require.Equal(t, ply.BeforeKey, pos.Key)
		pos, err = pos.ApplyTurn(ply.Turn)
		require.NoError(t, err)
		require.Equal(t, ply.AfterKey, pos.Key)
	}
	require.Equal(t, pos.Board.String(), trace.FinalBoard)
}

func TestSeededGamesAreReproducible(t *testing.T) {
	var play = func() GameTrace {
		var trace, err = playGame(context.Background(),
			newSearcher(), newSearcher(),
			TimeControl{FixedDepth: 1}, 10,
			gameInfo{gameNumber: 1, whiteIsFirst: true, seed: 42, openingPlies: 3},
			zerolog.Nop())
		require.NoError(t, err)
		return trace
	}
	require.Equal(t, play(), play())
}

// scriptedSearcher feeds a fixed turn sequence to the driver, standing in
// for an engine whose choices the test controls exactly.
type scriptedSearcher struct {
	turns []hive.Turn
	next  int
}

func (s *scriptedSearcher) Search(ctx context.Context, params hive.SearchParams) hive.SearchInfo {
	var turn = s.turns[s.next]
	s.next++
	return hive.SearchInfo{MainLine: []hive.Turn{turn}}
}

func (s *scriptedSearcher) Clear() {
	s.next = 0
}

func scripted(t *testing.T, notation ...string) *scriptedSearcher {
	t.Helper()
	var s = &scriptedSearcher{}
	for _, text := range notation {
		turn, err := hive.ParseTurn(text)
		require.NoError(t, err)
		s.turns = append(s.turns, turn)
	}
	return s
}

// Both sides shuffle their queens back and forth, so the position after the
// fourth ply comes back on the eighth and the twelfth. The game must end the
// moment the third visit is on the board.
func TestPlayGameCallsThreefoldRepetition(t *testing.T) {
	var white = scripted(t,
		"A(0,0)", "Q(0,-1)", "(0,-1)-(1,-1)", "(1,-1)-(0,-1)",
		"(0,-1)-(1,-1)", "(1,-1)-(0,-1)")
	var black = scripted(t,
		"A(1,0)", "Q(2,0)", "(2,0)-(1,1)", "(1,1)-(2,0)",
		"(2,0)-(1,1)", "(1,1)-(2,0)")

	var trace, err = playGame(context.Background(), white, black,
		TimeControl{FixedDepth: 1}, 20,
		gameInfo{gameNumber: 1, whiteIsFirst: true},
		zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, hive.OutcomeDraw, trace.Outcome)
	require.Equal(t, "threefold repetition", trace.Comment)
	require.Len(t, trace.Plies, 12)
}

func TestRunTalliesEveryGame(t *testing.T) {
	var traces []GameTrace
	var score, err = Run(context.Background(), Config{
		Games:        2,
		Concurrency:  1,
		MaxPly:       6,
		TimeControl:  TimeControl{FixedDepth: 1},
		EngineFirst:  newSearcher,
		EngineSecond: newSearcher,
		Logger:       zerolog.Nop(),
		OnTrace: func(trace GameTrace) error {
			traces = append(traces, trace)
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, traces, 2)
	require.Equal(t, 2, score.Wins+score.Losses+score.Draws+score.Undecided)
	require.NotEqual(t, traces[0].FirstIsWhite, traces[1].FirstIsWhite)
}
