package hive

// Hex is an axial hex-grid coordinate plus a stacking height. Q and R are the
// axial axes, H is the height of the tile within a stack (0 = on the table).
type Hex struct {
	Q, R, H int
}

// S returns the third cube coordinate; Q+R+S == 0 holds for every hex.
func (h Hex) S() int {
	return -h.Q - h.R
}

// BaseLevel returns the same column at height zero.
func (h Hex) BaseLevel() Hex {
	return Hex{Q: h.Q, R: h.R}
}

func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R, H: h.H + o.H}
}

func (h Hex) Sub(o Hex) Hex {
	return Hex{Q: h.Q - o.Q, R: h.R - o.R, H: h.H - o.H}
}

const (
	DirUpLeft = iota
	DirUpRight
	DirRight
	DirDownRight
	DirDownLeft
	DirLeft
	DirCount
)

// hexDirections lists the six neighbor offsets in circular order. Slide
// legality depends on walking this ring in order, so it must stay a circle.
var hexDirections = [DirCount]Hex{
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
}

func DirectionVector(dir int) Hex {
	return hexDirections[dir]
}

func Neighbor(h Hex, dir int) Hex {
	return h.Add(hexDirections[dir])
}

// Neighbors returns the six same-level neighbors in ring order.
func Neighbors(h Hex) [DirCount]Hex {
	var result [DirCount]Hex
	for dir := 0; dir < DirCount; dir++ {
		result[dir] = h.Add(hexDirections[dir])
	}
	return result
}

// FlatDistance is the straight-line hex distance ignoring height.
func FlatDistance(a, b Hex) int {
	var vec = a.Sub(b)
	return (absInt(vec.Q) + absInt(vec.R) + absInt(vec.S())) / 2
}

func IsAdjacent(a, b Hex) bool {
	return FlatDistance(a, b) == 1
}

// RotatedBy rotates the hex clockwise around the origin by steps of 60
// degrees. Height is untouched.
func (h Hex) RotatedBy(sixths int) Hex {
	var n = ((sixths % 6) + 6) % 6
	var multiplier = 1
	if n%2 == 1 {
		multiplier = -1
	}
	switch n % 3 {
	case 1:
		return Hex{Q: h.R * multiplier, R: h.S() * multiplier, H: h.H}
	case 2:
		return Hex{Q: h.S() * multiplier, R: h.Q * multiplier, H: h.H}
	default:
		return Hex{Q: h.Q * multiplier, R: h.R * multiplier, H: h.H}
	}
}

// RowCol is the odd-r offset form of a hex, used for rendering and for the
// text map format where rows are staggered.
type RowCol struct {
	Row, Col, Height int
}

func (rc RowCol) ToHex() Hex {
	var parity = rc.Row & 1
	return Hex{
		Q: rc.Col - (rc.Row-parity)/2,
		R: rc.Row,
		H: rc.Height,
	}
}

func RowColFromHex(h Hex) RowCol {
	var parity = h.R & 1
	return RowCol{
		Col:    h.Q + (h.R-parity)/2,
		Row:    h.R,
		Height: h.H,
	}
}

type RowColDimensions struct {
	RowMin, RowMax       int
	ColMin, ColMax       int
	HeightMin, HeightMax int
}

func (d RowColDimensions) Width() int {
	return d.ColMax - d.ColMin + 1
}

func (d RowColDimensions) Height() int {
	return d.RowMax - d.RowMin + 1
}

func dimensions(hexes []Hex) RowColDimensions {
	var dims RowColDimensions
	for _, hex := range hexes {
		var rc = RowColFromHex(hex)
		dims.RowMin = minInt(dims.RowMin, rc.Row)
		dims.RowMax = maxInt(dims.RowMax, rc.Row)
		dims.ColMin = minInt(dims.ColMin, rc.Col)
		dims.ColMax = maxInt(dims.ColMax, rc.Col)
		dims.HeightMin = minInt(dims.HeightMin, rc.Height)
		dims.HeightMax = maxInt(dims.HeightMax, rc.Height)
	}
	return dims
}

// hexLess orders hexes by (H, R, Q). Board iteration in sorted order keeps
// turn generation deterministic across runs.
func hexLess(a, b Hex) bool {
	if a.H != b.H {
		return a.H < b.H
	}
	if a.R != b.R {
		return a.R < b.R
	}
	return a.Q < b.Q
}

func hexCompare(a, b Hex) int {
	if hexLess(a, b) {
		return -1
	}
	if a == b {
		return 0
	}
	return 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func maxInt(l, r int) int {
	if l > r {
		return l
	}
	return r
}
