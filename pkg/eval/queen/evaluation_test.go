package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sburba/chive/pkg/hive"
)

func positionFromMap(t *testing.T, s string, whiteMove bool) hive.Position {
	t.Helper()
	var board, err = hive.ParseBoard(s)
	require.NoError(t, err)
	pos, err := hive.NewPositionFromBoard(board, whiteMove)
	require.NoError(t, err)
	return pos
}

func TestCrowdedEnemyQueenScoresBetter(t *testing.T) {
	var service = NewEvaluationService()

	var open = positionFromMap(t, `
	Q a
	 q`, true)
	var crowded = positionFromMap(t, `
	Q a
	 q s
	b g`, true)

	require.Greater(t, service.Evaluate(&crowded), service.Evaluate(&open))
}

func TestEvaluationIsDeterministic(t *testing.T) {
	var service = NewEvaluationService()
	var pos = positionFromMap(t, `
	Q a q
	 b s`, false)
	require.Equal(t, service.Evaluate(&pos), service.Evaluate(&pos))
}
