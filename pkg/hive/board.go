package hive

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Board maps occupied hexes to tiles. A stack of pieces occupies the hexes
// (q,r,0)..(q,r,n-1) with no gaps; only the top tile of a stack may move.
type Board map[Hex]Tile

func (b Board) Clone() Board {
	var result = make(Board, len(b))
	for hex, tile := range b {
		result[hex] = tile
	}
	return result
}

func (b Board) IsOccupied(hex Hex) bool {
	var _, ok = b[hex]
	return ok
}

func (b Board) TileAt(hex Hex) (Tile, bool) {
	var tile, ok = b[hex]
	return tile, ok
}

// StackHeight returns the number of tiles stacked on the hex's column.
func (b Board) StackHeight(hex Hex) int {
	var height = 0
	for b.IsOccupied(Hex{Q: hex.Q, R: hex.R, H: height}) {
		height++
	}
	return height
}

// TopTileAt returns the topmost tile of the column, if any.
func (b Board) TopTileAt(hex Hex) (Tile, bool) {
	var top, ok = b.TopmostOccupied(hex)
	if !ok {
		return Tile{}, false
	}
	return b[top], true
}

// TopmostOccupied returns the highest occupied hex of the column.
func (b Board) TopmostOccupied(hex Hex) (Hex, bool) {
	var height = b.StackHeight(hex)
	if height == 0 {
		return Hex{}, false
	}
	return Hex{Q: hex.Q, R: hex.R, H: height - 1}, true
}

// OccupiedNeighbors returns the occupied ring neighbors at the hex's level,
// in ring order.
func (b Board) OccupiedNeighbors(hex Hex) []Hex {
	var result []Hex
	for _, n := range Neighbors(hex) {
		if b.IsOccupied(n) {
			result = append(result, n)
		}
	}
	return result
}

// UnoccupiedNeighbors returns the empty ring neighbors at the hex's level, in
// ring order.
func (b Board) UnoccupiedNeighbors(hex Hex) []Hex {
	var result []Hex
	for _, n := range Neighbors(hex) {
		if !b.IsOccupied(n) {
			result = append(result, n)
		}
	}
	return result
}

// TopmostOccupiedNeighbors returns the top of each occupied neighbor column.
func (b Board) TopmostOccupiedNeighbors(hex Hex) []Hex {
	var result []Hex
	for _, n := range Neighbors(hex) {
		if top, ok := b.TopmostOccupied(n); ok {
			result = append(result, top)
		}
	}
	return result
}

// NextUnoccupiedInDirection walks from hex in the given offset direction and
// returns the first empty hex. Used for grasshopper jumps.
func (b Board) NextUnoccupiedInDirection(hex Hex, direction Hex) Hex {
	var current = hex
	for b.IsOccupied(current) {
		current = current.Add(direction)
	}
	return current
}

// SortedHexes returns every occupied hex in deterministic (H,R,Q) order.
func (b Board) SortedHexes() []Hex {
	var hexes = maps.Keys(b)
	slices.SortFunc(hexes, hexCompare)
	return hexes
}

// TopLevelHexes returns the top hex of every stack, in deterministic order.
func (b Board) TopLevelHexes() []Hex {
	var result []Hex
	for _, hex := range b.SortedHexes() {
		if b.StackHeight(hex)-1 == hex.H {
			result = append(result, hex)
		}
	}
	return result
}

func (b Board) Dimensions() RowColDimensions {
	return dimensions(maps.Keys(b))
}

func (b Board) String() string {
	return formatBoard(b)
}
