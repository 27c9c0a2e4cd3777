package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	eval "github.com/sburba/chive/pkg/eval/queen"
	"github.com/sburba/chive/pkg/hive"
)

func newTestEngine() *Engine {
	var e = NewEngine(func() Evaluator { return eval.NewEvaluationService() })
	e.Hash = 4
	e.Threads = 1
	return e
}

func openingPosition(t *testing.T, turns ...string) hive.Position {
	t.Helper()
	var pos = hive.NewPosition()
	for _, s := range turns {
		turn, err := hive.ParseTurn(s)
		require.NoError(t, err)
		pos, err = pos.ApplyTurn(turn)
		require.NoError(t, err)
	}
	return pos
}

func searchToDepth(e *Engine, pos hive.Position, depth int) hive.SearchInfo {
	return e.Search(context.Background(), hive.SearchParams{
		Positions: []hive.Position{pos},
		Limits:    hive.LimitsType{Depth: depth},
	})
}

// Black's queen has five occupied neighbours; the white grasshopper at
// (-2,0) jumps over the stack line into the last free hex.
func mateInOnePosition(t *testing.T) hive.Position {
	t.Helper()
	var board = hive.Board{
		{Q: 0, R: 0}:   {Bug: hive.Queen, White: false},
		{Q: 1, R: -1}:  {Bug: hive.Ant, White: false},
		{Q: 0, R: -1}:  {Bug: hive.Spider, White: false},
		{Q: -1, R: 0}:  {Bug: hive.Beetle, White: false},
		{Q: -1, R: 1}:  {Bug: hive.Grasshopper, White: false},
		{Q: 0, R: 1}:   {Bug: hive.Ladybug, White: false},
		{Q: -2, R: 0}:  {Bug: hive.Grasshopper, White: true},
		{Q: 0, R: -2}:  {Bug: hive.Queen, White: true},
	}
	pos, err := hive.NewPositionFromBoard(board, true)
	require.NoError(t, err)
	return pos
}

func TestSearchFindsMateInOne(t *testing.T) {
	var e = newTestEngine()
	var si = searchToDepth(e, mateInOnePosition(t), 1)

	require.Equal(t, hive.Score{Mate: 1}, si.Score)
	require.NotEmpty(t, si.MainLine)
	require.Equal(t, hive.Turn{
		Kind: hive.TurnMove,
		From: hive.Hex{Q: -2, R: 0},
		To:   hive.Hex{Q: 1, R: 0},
	}, si.MainLine[0])
}

func TestSearchIsDeterministic(t *testing.T) {
	var pos = openingPosition(t, "A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)")

	var first = searchToDepth(newTestEngine(), pos, 3)
	var second = searchToDepth(newTestEngine(), pos, 3)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.MainLine, second.MainLine)
	require.Equal(t, first.Depth, second.Depth)
}

func TestClearDoesNotChangeResult(t *testing.T) {
	var pos = openingPosition(t, "A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)")
	var e = newTestEngine()

	var first = searchToDepth(e, pos, 2)
	e.Clear()
	var second = searchToDepth(e, pos, 2)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.MainLine, second.MainLine)
}

// The table is a pure speedup: its size must never change what the search
// returns for a fixed depth.
func TestHashSizeDoesNotChangeResult(t *testing.T) {
	var pos = openingPosition(t, "A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)")

	var small = newTestEngine()
	small.Hash = 1
	var large = newTestEngine()
	large.Hash = 16

	var first = searchToDepth(small, pos, 3)
	var second = searchToDepth(large, pos, 3)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.MainLine[0], second.MainLine[0])
}

// minimax is a plain unpruned reference with the same value conventions as
// the engine: terminal outcomes by rule, leaf scores from the evaluator.
func minimax(ev Evaluator, p *hive.Position, depth, height int) int {
	switch p.Outcome() {
	case hive.OutcomeDraw:
		return valueDraw
	case hive.OutcomeWhiteWin:
		if p.WhiteMove {
			return winIn(height)
		}
		return lossIn(height)
	case hive.OutcomeBlackWin:
		if p.WhiteMove {
			return lossIn(height)
		}
		return winIn(height)
	}
	if depth <= 0 {
		return ev.Evaluate(p)
	}
	var best = -valueInfinity
	var ml = p.GenerateTurns(nil)
	for i := range ml {
		var child hive.Position
		if !p.MakeTurn(ml[i].Turn, &child) {
			continue
		}
		var score = -minimax(ev, &child, depth-1, height+1)
		if score > best {
			best = score
		}
	}
	return best
}

func minimaxRoot(ev Evaluator, p *hive.Position, depth int) (hive.Turn, int) {
	var best = -valueInfinity
	var bestTurn = hive.TurnEmpty
	var ml = p.GenerateTurns(nil)
	for i := range ml {
		var child hive.Position
		if !p.MakeTurn(ml[i].Turn, &child) {
			continue
		}
		var score = -minimax(ev, &child, depth-1, 1)
		if score > best {
			best = score
			bestTurn = ml[i].Turn
		}
	}
	return bestTurn, best
}

// The pruned search must return exactly the unpruned value and pick the
// same first-generated turn on ties.
func TestSearchMatchesMinimax(t *testing.T) {
	var positions = []hive.Position{
		openingPosition(t, "A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)"),
		openingPosition(t, "G(0,0)", "A(1,0)", "Q(-1,0)", "Q(2,0)", "S(-1,-1)"),
		mateInOnePosition(t),
	}
	for _, pos := range positions {
		for depth := 1; depth <= 2; depth++ {
			var wantTurn, wantValue = minimaxRoot(eval.NewEvaluationService(), &pos, depth)
			var si = searchToDepth(newTestEngine(), pos, depth)
			require.Equal(t, newScore(wantValue), si.Score)
			require.Equal(t, wantTurn, si.MainLine[0])
		}
	}
}

func TestNodesLimitStopsSearch(t *testing.T) {
	var pos = openingPosition(t, "A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)")
	var e = newTestEngine()
	var si = e.Search(context.Background(), hive.SearchParams{
		Positions: []hive.Position{pos},
		Limits:    hive.LimitsType{Nodes: 5000},
	})
	require.NotEmpty(t, si.MainLine)
	require.Less(t, si.Nodes, int64(200000))
}

func TestMateScoreRoundTrip(t *testing.T) {
	for _, height := range []int{0, 1, 5, 20} {
		for _, v := range []int{winIn(height), lossIn(height), 150, -150, 0} {
			require.Equal(t, v, valueFromTT(valueToTT(v, height), height))
		}
	}
}
