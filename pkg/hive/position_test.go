package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeTurnLeavesParentUntouched(t *testing.T) {
	var pos = NewPosition()
	var before = pos.Board.String()
	var beforeKey = pos.Key

	var child Position
	require.True(t, pos.MakeTurn(Turn{Kind: TurnPlace, Bug: Spider}, &child))

	require.Equal(t, before, pos.Board.String())
	require.Equal(t, beforeKey, pos.Key)
	require.True(t, pos.WhiteMove)
	require.Equal(t, 0, pos.Ply)

	require.False(t, child.WhiteMove)
	require.Equal(t, 1, child.Ply)
	require.Equal(t, int8(1), child.Reserves[sideWhite][Spider])
}

func TestIncrementalHashMatchesFromScratch(t *testing.T) {
	var pos = NewPosition()
	var script = []string{"A(0,0)", "G(0,-1)", "Q(-1,1)", "Q(1,-2)", "(-1,1)-(-1,0)"}
	for _, notation := range script {
		var turn, err = ParseTurn(notation)
		require.NoError(t, err)
		pos, err = pos.ApplyTurn(turn)
		require.NoError(t, err)
		require.Equal(t, HashBoard(pos.Board, pos.WhiteMove), pos.Key,
			"after %s", notation)
	}
}

func TestSkipTogglesOnlySideToMove(t *testing.T) {
	var pos = NewPosition()
	var child Position
	require.True(t, pos.MakeTurn(Turn{Kind: TurnSkip}, &child))
	require.False(t, child.WhiteMove)
	require.Equal(t, pos.Key^zobristBlackToMove, child.Key)
	require.Equal(t, pos.Board.String(), child.Board.String())
}

func TestApplyTurnRejectsIllegalTurn(t *testing.T) {
	var pos = NewPosition()

	// queens may not open
	var _, err = pos.ApplyTurn(Turn{Kind: TurnPlace, Bug: Queen})
	require.ErrorIs(t, err, ErrIllegalTurn)

	// no piece to move on an empty board
	_, err = pos.ApplyTurn(Turn{Kind: TurnMove, From: Hex{}, To: Hex{Q: 1}})
	require.ErrorIs(t, err, ErrIllegalTurn)

	// skipping is illegal while placements exist
	_, err = pos.ApplyTurn(Turn{Kind: TurnSkip})
	require.ErrorIs(t, err, ErrIllegalTurn)
}

func TestFromBoardRejectsExcessTiles(t *testing.T) {
	var board, err = ParseBoard(`
	Q  q  Q
	`)
	require.NoError(t, err)
	var _, perr = NewPositionFromBoard(board, true)
	require.ErrorIs(t, perr, ErrMalformedPosition)
}

func TestValidateRejectsFloatingTile(t *testing.T) {
	var board = Board{
		{Q: 0, R: 0, H: 0}: {Bug: Queen, White: true},
		{Q: 1, R: 0, H: 1}: {Bug: Beetle, White: false},
	}
	var _, err = NewPositionFromBoard(board, true)
	require.ErrorIs(t, err, ErrMalformedPosition)
}

func TestFreezeMarkerLastsOneTurn(t *testing.T) {
	var board, err = ParseBoard(`
	.  P  .
	 q  Q  a
	`)
	require.NoError(t, err)
	var pos, perr = NewPositionFromBoard(board, true)
	require.NoError(t, perr)

	// white throws the black queen
	var thrown Position
	require.True(t, pos.MakeTurn(Turn{
		Kind:    TurnMove,
		From:    Hex{Q: 0, R: 1},
		To:      Hex{Q: 2, R: 0},
		Freezes: true,
	}, &thrown))
	require.True(t, thrown.HasFrozen)
	require.Equal(t, Hex{Q: 2, R: 0}, thrown.Frozen)

	// any following turn clears the marker
	var after Position
	require.True(t, thrown.MakeTurn(Turn{Kind: TurnSkip}, &after))
	require.False(t, after.HasFrozen)
}

func TestOutcomeQueenSurrounded(t *testing.T) {
	var cases = []struct {
		name    string
		board   string
		outcome Outcome
	}{
		{
			name: "no queen surrounded",
			board: `
			.  a  .
			 a  Q  .
			.  a  q
			`,
			outcome: OutcomeNone,
		},
		{
			name: "white queen surrounded",
			board: `
			.  b  a  .
			 g  Q  a  .
			.  s  a  q
			`,
			outcome: OutcomeBlackWin,
		},
		{
			name: "both queens surrounded",
			board: `
			.  g  a  B  .
			 a  Q  q  G  .
			.  b  A  S  .
			`,
			outcome: OutcomeDraw,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var board, err = ParseBoard(tc.board)
			require.NoError(t, err)
			var pos, perr = NewPositionFromBoard(board, true)
			require.NoError(t, perr)
			require.Equal(t, tc.outcome, pos.Outcome())
		})
	}
}

func TestTurnNotationRoundTrip(t *testing.T) {
	var turns = []Turn{
		{Kind: TurnPlace, Bug: Ant},
		{Kind: TurnPlace, Bug: Queen, To: Hex{Q: -1, R: 2}},
		{Kind: TurnMove, From: Hex{Q: 0, R: 1}, To: Hex{Q: 2, R: -1}},
		{Kind: TurnMove, From: Hex{Q: 0, R: 0}, To: Hex{Q: 1, R: 0, H: 1}},
		{Kind: TurnSkip},
	}
	for _, turn := range turns {
		var parsed, err = ParseTurn(turn.String())
		require.NoError(t, err)
		require.Equal(t, turn, parsed)
	}
}
