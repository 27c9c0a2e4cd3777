package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighborRingIsClosed(t *testing.T) {
	var sum = Hex{}
	for dir := 0; dir < DirCount; dir++ {
		var vec = DirectionVector(dir)
		require.Equal(t, 0, vec.Q+vec.R+vec.S())
		require.Equal(t, 1, FlatDistance(Hex{}, vec))
		sum = sum.Add(vec)
	}
	require.Equal(t, Hex{}, sum)

	// consecutive ring entries are adjacent to each other
	for dir := 0; dir < DirCount; dir++ {
		var next = DirectionVector((dir + 1) % DirCount)
		require.True(t, IsAdjacent(DirectionVector(dir), next))
	}
}

func TestRowColRoundTrip(t *testing.T) {
	for row := -4; row <= 4; row++ {
		for col := -4; col <= 4; col++ {
			var rc = RowCol{Row: row, Col: col, Height: 2}
			require.Equal(t, rc, RowColFromHex(rc.ToHex()))
		}
	}
}

func TestRotationCycle(t *testing.T) {
	var hex = Hex{Q: 3, R: -1, H: 2}
	require.Equal(t, hex, hex.RotatedBy(6))
	require.Equal(t, hex, hex.RotatedBy(0))

	var once = hex
	for i := 0; i < 6; i++ {
		once = once.RotatedBy(1)
	}
	require.Equal(t, hex, once)

	require.Equal(t, hex.RotatedBy(2), hex.RotatedBy(1).RotatedBy(1))
	require.Equal(t, hex.RotatedBy(5), hex.RotatedBy(-1))
}

func TestRotationPreservesDistance(t *testing.T) {
	var a = Hex{Q: 2, R: 1}
	var b = Hex{Q: -1, R: 3}
	for sixths := 1; sixths <= 6; sixths++ {
		require.Equal(t,
			FlatDistance(a, b),
			FlatDistance(a.RotatedBy(sixths), b.RotatedBy(sixths)))
	}
}

func TestFlatDistance(t *testing.T) {
	require.Equal(t, 0, FlatDistance(Hex{Q: 1, R: 1}, Hex{Q: 1, R: 1, H: 3}))
	require.Equal(t, 1, FlatDistance(Hex{}, Hex{Q: 1, R: -1}))
	require.Equal(t, 2, FlatDistance(Hex{}, Hex{Q: 2, R: -1}))
	require.Equal(t, 4, FlatDistance(Hex{Q: -1, R: -1}, Hex{Q: 1, R: 1}))
}

func TestHexOrderingIsTotal(t *testing.T) {
	var hexes = []Hex{
		{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: -1, R: 0},
		{Q: 0, R: -1}, {Q: 0, R: 1}, {Q: 0, R: 0, H: 1},
	}
	for _, a := range hexes {
		for _, b := range hexes {
			switch hexCompare(a, b) {
			case 0:
				require.Equal(t, a, b)
			case -1:
				require.Equal(t, 1, hexCompare(b, a))
			case 1:
				require.Equal(t, -1, hexCompare(b, a))
			}
		}
	}
}
