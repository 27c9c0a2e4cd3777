package hive

import (
	"slices"

	"golang.org/x/exp/maps"
)

// MaxTurns bounds the number of legal turns in any reachable position, with
// headroom. Callers preallocate generation buffers of this size.
const MaxTurns = 512

// GenerateTurns appends every legal turn to buf and returns the result. The
// output is duplicate-free and in a deterministic order: board iteration is
// sorted and per-bug destination sets are sorted before emission. If the side
// to move has no placement and no move, the single Skip turn is returned.
func (p *Position) GenerateTurns(buf []OrderedTurn) []OrderedTurn {
	var gen = turnGenerator{pos: p, ml: buf[:0]}
	gen.genPlacements()
	gen.genMoves()
	if len(gen.ml) == 0 {
		gen.emit(Turn{Kind: TurnSkip})
	}
	return gen.ml
}

type turnGenerator struct {
	pos      *Position
	ml       []OrderedTurn
	art      map[Hex]bool
	artReady bool
}

func (g *turnGenerator) emit(t Turn) {
	g.ml = append(g.ml, OrderedTurn{Turn: t})
}

// articulation lazily computes the hive's articulation points; most
// generations touch them several times, none more than once per board.
func (g *turnGenerator) articulation() map[Hex]bool {
	if !g.artReady {
		g.art = articulationPoints(g.pos.Board)
		g.artReady = true
	}
	return g.art
}

func (g *turnGenerator) frozen(hex Hex) bool {
	return g.pos.HasFrozen && g.pos.Frozen == hex
}

func (g *turnGenerator) genPlacements() {
	var p = g.pos
	var reserve = p.reserve(p.WhiteMove)
	var total = 0
	for _, count := range reserve {
		total += int(count)
	}
	if total == 0 {
		return
	}

	// Opening placements ignore the adjacency rule: the first bug goes on
	// an arbitrary fixed hex, the second anywhere around it. Queens may
	// not open.
	if len(p.Board) == 0 {
		for bug := Bug(0); bug < BugCount; bug++ {
			if bug != Queen && reserve[bug] > 0 {
				g.emit(Turn{Kind: TurnPlace, Bug: bug})
			}
		}
		return
	}
	if len(p.Board) == 1 {
		var only Hex
		for hex := range p.Board {
			only = hex
		}
		for bug := Bug(0); bug < BugCount; bug++ {
			if bug == Queen || reserve[bug] == 0 {
				continue
			}
			for _, n := range Neighbors(only) {
				g.emit(Turn{Kind: TurnPlace, Bug: bug, To: n})
			}
		}
		return
	}

	// A queen still in reserve after three placements must be placed now.
	var mustQueen = p.placedCount(p.WhiteMove) >= 3 && reserve[Queen] > 0

	var checked = make(map[Hex]bool)
	var spots []Hex
	for _, hex := range p.Board.SortedHexes() {
		if p.Board[hex].White != p.WhiteMove {
			continue
		}
		for _, n := range p.Board.UnoccupiedNeighbors(hex.BaseLevel()) {
			if checked[n] {
				continue
			}
			checked[n] = true
			if !g.adjacentToColor(n, !p.WhiteMove) {
				spots = append(spots, n)
			}
		}
	}

	for _, spot := range spots {
		if mustQueen {
			g.emit(Turn{Kind: TurnPlace, Bug: Queen, To: spot})
			continue
		}
		for bug := Bug(0); bug < BugCount; bug++ {
			if reserve[bug] > 0 {
				g.emit(Turn{Kind: TurnPlace, Bug: bug, To: spot})
			}
		}
	}
}

// adjacentToColor checks the tops of neighboring stacks: a white tile buried
// under a black beetle counts as black for placement purposes.
func (g *turnGenerator) adjacentToColor(hex Hex, white bool) bool {
	for _, top := range g.pos.Board.TopmostOccupiedNeighbors(hex) {
		if g.pos.Board[top].White == white {
			return true
		}
	}
	return false
}

func (g *turnGenerator) genMoves() {
	var p = g.pos
	// No moves until the queen is placed.
	if p.QueenInReserve(p.WhiteMove) {
		return
	}
	for _, hex := range p.Board.TopLevelHexes() {
		var tile = p.Board[hex]
		if tile.White != p.WhiteMove {
			continue
		}
		g.movesForBug(tile.Bug, hex, g.emit)
	}
}

// movesForBug emits the moves of a bug kind standing at from. The mosquito
// calls back into it with each mimicked kind.
func (g *turnGenerator) movesForBug(bug Bug, from Hex, emit func(Turn)) {
	switch bug {
	case Queen:
		g.queenMoves(from, emit)
	case Beetle:
		g.beetleMoves(from, emit)
	case Grasshopper:
		g.grasshopperMoves(from, emit)
	case Ant:
		g.antMoves(from, emit)
	case Spider:
		g.spiderMoves(from, emit)
	case Ladybug:
		g.ladybugMoves(from, emit)
	case Mosquito:
		g.mosquitoMoves(from, emit)
	case Pillbug:
		g.pillbugMoves(from, emit)
	}
}

func (g *turnGenerator) queenMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	for _, to := range g.allowedSlides(from, from) {
		if g.breaksHive(from, to) {
			continue
		}
		emit(Turn{Kind: TurnMove, From: from, To: to})
	}
}

func (g *turnGenerator) beetleMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	for _, n := range Neighbors(from.BaseLevel()) {
		var toHeight = g.pos.Board.StackHeight(n)
		// Climbing checks the gate at the higher of the two levels:
		// going up we can be blocked from above, going down at our own
		// level.
		var checkHeight = maxInt(from.H, toHeight)
		if !g.slideIsAllowed(
			Hex{Q: from.Q, R: from.R, H: checkHeight},
			Hex{Q: n.Q, R: n.R, H: checkHeight},
		) {
			continue
		}
		var to = Hex{Q: n.Q, R: n.R, H: toHeight}
		if g.breaksHive(from, to) {
			continue
		}
		emit(Turn{Kind: TurnMove, From: from, To: to})
	}
}

func (g *turnGenerator) grasshopperMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	// A grasshopper never lands adjacent to anything its own removal did
	// not already touch, so one removal check covers every jump.
	if g.removalBreaksHive(from) {
		return
	}
	for _, n := range g.pos.Board.OccupiedNeighbors(from) {
		var direction = n.Sub(from)
		var to = g.pos.Board.NextUnoccupiedInDirection(from, direction)
		emit(Turn{Kind: TurnMove, From: from, To: to})
	}
}

func (g *turnGenerator) antMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	var reachable = make(map[Hex]bool)
	var frontier = []Hex{from}
	var firstStep = true
	for len(frontier) > 0 {
		var current = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, dest := range g.allowedSlides(current, from) {
			if reachable[dest] || dest == from {
				continue
			}
			// Past the first step the ant's own tile still sits at
			// from, so hive contact must be checked without it.
			if firstStep && g.breaksHive(current, dest) ||
				!firstStep && g.separatesFromHive(current, dest, from) {
				continue
			}
			reachable[dest] = true
			frontier = append(frontier, dest)
		}
		firstStep = false
	}
	g.emitDestinations(from, reachable, emit)
}

func (g *turnGenerator) spiderMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	var paths = [][]Hex{{from}}
	for step := 1; step <= 3; step++ {
		var firstStep = step == 1
		var next [][]Hex
		for _, path := range paths {
			var current = path[len(path)-1]
			for _, dest := range g.allowedSlides(current, from) {
				if slices.Contains(path, dest) {
					continue
				}
				if firstStep && g.breaksHive(current, dest) ||
					!firstStep && g.separatesFromHive(current, dest, from) {
					continue
				}
				next = append(next, append(slices.Clone(path), dest))
			}
		}
		paths = next
	}

	var dests = make(map[Hex]bool)
	for _, path := range paths {
		dests[path[len(path)-1]] = true
	}
	g.emitDestinations(from, dests, emit)
}

func (g *turnGenerator) ladybugMoves(from Hex, emit func(Turn)) {
	if g.frozen(from) {
		return
	}
	// Exactly three steps: two on top of the hive, then down to an empty
	// hex. Paths that cannot take all three die out.
	var paths = [][]Hex{{from}}
	for step := 1; step <= 3; step++ {
		var next [][]Hex
		for _, path := range paths {
			var current = path[len(path)-1]
			if step == 3 {
				for _, dest := range g.pos.Board.UnoccupiedNeighbors(current.BaseLevel()) {
					if !g.slideIsAllowed(current, Hex{Q: dest.Q, R: dest.R, H: current.H}) {
						continue
					}
					next = append(next, append(slices.Clone(path), dest))
				}
				continue
			}
			for _, top := range g.pos.Board.TopmostOccupiedNeighbors(current) {
				var dest = Hex{Q: top.Q, R: top.R, H: top.H + 1}
				if dest.BaseLevel() == from {
					continue
				}
				if !g.slideIsAllowed(Hex{Q: current.Q, R: current.R, H: dest.H}, dest) {
					continue
				}
				if step == 1 && g.breaksHive(from, dest) {
					continue
				}
				next = append(next, append(slices.Clone(path), dest))
			}
		}
		paths = next
	}

	var dests = make(map[Hex]bool)
	for _, path := range paths {
		dests[path[len(path)-1]] = true
	}
	g.emitDestinations(from, dests, emit)
}

func (g *turnGenerator) mosquitoMoves(from Hex, emit func(Turn)) {
	var immobilized = g.frozen(from)

	// A mosquito moves as any adjacent bug kind, never as another
	// mosquito. Frozen it can still mimic a neighboring pillbug's throw.
	var kinds [BugCount]bool
	for _, top := range g.pos.Board.TopmostOccupiedNeighbors(from) {
		var bug = g.pos.Board[top].Bug
		if bug == Mosquito {
			continue
		}
		if immobilized && bug != Pillbug {
			continue
		}
		kinds[bug] = true
	}

	// Mimicked kinds can reach the same destination, so dedupe across
	// them before emitting.
	var set = make(map[Turn]bool)
	for bug := Bug(0); bug < BugCount; bug++ {
		if !kinds[bug] {
			continue
		}
		g.movesForBug(bug, from, func(t Turn) {
			set[t] = true
		})
	}
	var turns = maps.Keys(set)
	slices.SortFunc(turns, turnCompare)
	for _, t := range turns {
		emit(t)
	}
}

func (g *turnGenerator) pillbugMoves(from Hex, emit func(Turn)) {
	// Direct movement is a queen's. The throw works even while frozen:
	// only the frozen check on the direct part applies.
	g.queenMoves(from, emit)

	var p = g.pos
	var abovePillbug = Hex{Q: from.Q, R: from.R, H: 1}
	var lastMoved, hasLastMoved = Hex{}, false
	if p.LastTurn.Kind == TurnMove {
		lastMoved, hasLastMoved = p.LastTurn.To, true
	}

	var freeSpaces = p.Board.UnoccupiedNeighbors(from)
	for _, n := range p.Board.TopmostOccupiedNeighbors(from) {
		// Stacked pieces cannot be thrown, nor can the piece the
		// opponent just moved.
		if n.H != 0 {
			continue
		}
		if hasLastMoved && n == lastMoved {
			continue
		}
		// The lift up onto the pillbug must be an open slide and must
		// not split the hive; the drop back down is the only other
		// gate.
		if !g.slideIsAllowed(Hex{Q: n.Q, R: n.R, H: 1}, abovePillbug) {
			continue
		}
		if g.breaksHive(n, abovePillbug) {
			continue
		}
		for _, free := range freeSpaces {
			if !g.slideIsAllowed(abovePillbug, Hex{Q: free.Q, R: free.R, H: 1}) {
				continue
			}
			emit(Turn{Kind: TurnMove, From: n, To: free, Freezes: true})
		}
	}
}

func (g *turnGenerator) emitDestinations(from Hex, dests map[Hex]bool, emit func(Turn)) {
	var sorted = maps.Keys(dests)
	slices.SortFunc(sorted, hexCompare)
	for _, to := range sorted {
		emit(Turn{Kind: TurnMove, From: from, To: to})
	}
}

// slideIsAllowed applies the freedom-to-move rule for a single-step slide
// between same-level hexes: the two hexes flanking the step must not both be
// occupied, or the piece cannot physically squeeze through.
func (g *turnGenerator) slideIsAllowed(from, to Hex) bool {
	var mov = to.Sub(from)
	var ccw = from.Add(Hex{Q: -mov.S(), R: -mov.Q})
	var cw = from.Add(Hex{Q: -mov.R, R: -mov.S()})
	return !g.pos.Board.IsOccupied(cw) || !g.pos.Board.IsOccupied(ccw)
}

// allowedSlides returns the hexes a piece at hex can slide to in one step,
// walking the neighbor ring and collecting the empty hexes at the edges of
// each empty run. ignore is treated as empty: multi-step sliders pass their
// own origin, which stays occupied during generation.
func (g *turnGenerator) allowedSlides(hex, ignore Hex) []Hex {
	var ns = Neighbors(hex)
	var occupied = func(h Hex) bool {
		return h != ignore && g.pos.Board.IsOccupied(h)
	}

	var result []Hex
	var emptySeen = 0
	var previousAdded = false
	for i, n := range ns {
		if occupied(n) {
			emptySeen = 0
			continue
		}
		if emptySeen > 0 {
			result = append(result, n)
			if !previousAdded {
				result = append(result, ns[i-1])
			}
			previousAdded = true
		} else {
			previousAdded = false
		}
		emptySeen++
	}

	// The linear scan misses the wrap between the last and first
	// neighbor. The ignore hex counts as occupied here: a slider's own
	// origin can still pin the wrap pair.
	var b = g.pos.Board
	if !b.IsOccupied(ns[0]) && !b.IsOccupied(ns[DirCount-1]) {
		if !previousAdded {
			result = append(result, ns[DirCount-1])
		}
		if b.IsOccupied(ns[1]) {
			result = append(result, ns[0])
		}
	}
	return result
}

func turnCompare(a, b Turn) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	if a.Bug != b.Bug {
		return int(a.Bug) - int(b.Bug)
	}
	if c := hexCompare(a.From, b.From); c != 0 {
		return c
	}
	if c := hexCompare(a.To, b.To); c != 0 {
		return c
	}
	switch {
	case a.Freezes == b.Freezes:
		return 0
	case b.Freezes:
		return -1
	default:
		return 1
	}
}
