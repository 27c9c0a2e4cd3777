package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// "*" cells mark hexes expected to be articulation points; they stand on the
// board as ants.
func assertArticulationPoints(t *testing.T, diagram string) {
	t.Helper()
	var cells, err = ParseHexMap(diagram)
	require.NoError(t, err)

	var boardCells = make(map[Hex]string, len(cells))
	var expected = make(map[Hex]bool)
	for hex, token := range cells {
		if token == "*" {
			expected[hex] = true
			boardCells[hex] = "a"
		} else {
			boardCells[hex] = token
		}
	}

	var actual = articulationPoints(boardFromCells(t, boardCells))
	require.Equal(t,
		renderMarked(boardCells, expected),
		renderMarked(boardCells, actual))
}

func TestArticulationLinearChain(t *testing.T) {
	assertArticulationPoints(t, `
	a  *  *  a
	`)
}

func TestArticulationStar(t *testing.T) {
	assertArticulationPoints(t, `
	.  a  .
	 .  *  a
	.  a  .
	`)
}

func TestArticulationCycleHasNone(t *testing.T) {
	assertArticulationPoints(t, `
	.  a  a
	 a  .  a
	.  a  a
	`)
}

func TestArticulationMultiplePoints(t *testing.T) {
	assertArticulationPoints(t, `
	a  *  *  a
	 .  .  a  a
	`)
}

func TestArticulationBridge(t *testing.T) {
	assertArticulationPoints(t, `
	a  a  .  .
	 a  *  .  .
	.  .  *  a
	 .  .  a  a
	`)
}

func TestArticulationRootWithTwoChildren(t *testing.T) {
	assertArticulationPoints(t, `
	a  *  a
	`)
}

func TestArticulationSinglePiece(t *testing.T) {
	assertArticulationPoints(t, `
	a
	`)
}

func TestArticulationTwoPieces(t *testing.T) {
	assertArticulationPoints(t, `
	a  a
	`)
}

func TestArticulationTShape(t *testing.T) {
	assertArticulationPoints(t, `
	.  a  .
	 a  *  a
	.  a  .
	`)
}

func TestArticulationDenseHive(t *testing.T) {
	assertArticulationPoints(t, `
	.  a  a  .
	 a  a  *  a
	.  a  a  .
	`)
}
