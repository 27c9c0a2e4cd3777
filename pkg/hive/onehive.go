package hive

import "slices"

// The hive must stay a single connected group at all times. Only pieces
// resting on the table can disconnect it, so connectivity questions reduce to
// the graph of base-level hexes with ring adjacency as edges.

type articulationState struct {
	board   Board
	visited map[Hex]bool
	depth   map[Hex]int
	low     map[Hex]int
	points  map[Hex]bool
}

// articulationPoints returns the base-level hexes whose removal would split
// the hive, via a depth-first lowpoint search.
func articulationPoints(b Board) map[Hex]bool {
	var points = make(map[Hex]bool)
	var base []Hex
	for hex := range b {
		if hex.H == 0 {
			base = append(base, hex)
		}
	}
	if len(base) == 0 {
		return points
	}
	slices.SortFunc(base, hexCompare)

	var s = articulationState{
		board:   b,
		visited: make(map[Hex]bool, len(base)),
		depth:   make(map[Hex]int, len(base)),
		low:     make(map[Hex]int, len(base)),
		points:  points,
	}
	var start = base[0]
	s.visited[start] = true
	s.depth[start] = 0
	s.low[start] = 0

	var rootChildren = 0
	for _, child := range b.OccupiedNeighbors(start) {
		if !s.visited[child] {
			rootChildren++
			s.search(child, start, 1)
		}
	}
	// The root is an articulation point iff the search had to restart
	// from it more than once.
	if rootChildren >= 2 {
		points[start] = true
	}
	return points
}

func (s *articulationState) search(current, parent Hex, depth int) {
	s.visited[current] = true
	s.depth[current] = depth
	s.low[current] = depth

	for _, child := range s.board.OccupiedNeighbors(current) {
		if !s.visited[child] {
			s.search(child, current, depth+1)
			s.low[current] = minInt(s.low[current], s.low[child])
			if s.low[child] >= s.depth[current] {
				s.points[current] = true
			}
		} else if child != parent {
			s.low[current] = minInt(s.low[current], s.depth[child])
		}
	}
}

// breaksHive reports whether the first step of a move from from to to would
// break the one-hive rule. The hive must stay whole at every instant, so an
// articulation point may not move at all: the hive is split the moment the
// piece lifts, even if the destination would join the halves back up. A
// ground step must also keep the mover touching the hive throughout, which
// for one step means an occupied neighbor of from flanks the destination.
// Pieces above the table never disconnect anything: the rest of their column
// stays put, and climbing onto a stack is contact by itself.
func (g *turnGenerator) breaksHive(from, to Hex) bool {
	if from.H != 0 {
		return false
	}
	if g.articulation()[from] {
		return true
	}
	if to.H != 0 {
		return false
	}
	return g.separatesFromHive(from, to, from)
}

// removalBreaksHive is breaksHive for pieces whose destination can never
// reconnect anything, such as a grasshopper jump considered before choosing
// a landing spot.
func (g *turnGenerator) removalBreaksHive(from Hex) bool {
	return from.H == 0 && g.articulation()[from]
}

// separatesFromHive reports whether sliding from current to to would detach
// the slider from every hive piece, treating origin as absent. Multi-step
// sliders use it on each intermediate step, where their own origin tile is
// still on the board and must not count as contact.
func (g *turnGenerator) separatesFromHive(current, to, origin Hex) bool {
	for _, n := range g.pos.Board.OccupiedNeighbors(current) {
		if n != origin && IsAdjacent(n, to) {
			return false
		}
	}
	return true
}
