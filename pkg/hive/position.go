package hive

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTurn reports a turn that is not legal in the position it
	// was applied to. It is a rejection, not a crash: externally supplied
	// turns (console input, replays) go through this check.
	ErrIllegalTurn = errors.New("illegal turn")
	// ErrMalformedPosition reports a position that violates a structural
	// invariant and cannot be played on.
	ErrMalformedPosition = errors.New("malformed position")
)

// Outcome is the rules-based result of a position. Undecided is reserved for
// the self-play driver's budget exhaustion and never produced by Outcome().
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWhiteWin
	OutcomeBlackWin
	OutcomeDraw
	OutcomeUndecided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWin:
		return "white wins"
	case OutcomeBlackWin:
		return "black wins"
	case OutcomeDraw:
		return "draw"
	case OutcomeUndecided:
		return "undecided"
	default:
		return "none"
	}
}

// Position is a full game snapshot: the board, both reserves, the side to
// move, the pillbug freeze marker, and a structural hash maintained
// incrementally. Values are cheap snapshots by convention: MakeTurn writes a
// fresh clone into child and never mutates the receiver.
type Position struct {
	Board     Board
	Reserves  [2][BugCount]int8
	WhiteMove bool
	Frozen    Hex
	HasFrozen bool
	LastTurn  Turn
	Ply       int
	Key       uint64
}

const (
	sideWhite = 0
	sideBlack = 1
)

func sideIndex(white bool) int {
	if white {
		return sideWhite
	}
	return sideBlack
}

// NewPosition returns the canonical initial position: empty board, full
// reserves, white to move.
func NewPosition() Position {
	var p = Position{Board: make(Board), WhiteMove: true}
	p.Reserves[sideWhite] = initialReserve
	p.Reserves[sideBlack] = initialReserve
	p.Key = HashBoard(p.Board, p.WhiteMove)
	return p
}

// NewPositionFromBoard builds a position mid-game, deducting the placed
// tiles from each side's reserve. Used by fixtures and the console.
func NewPositionFromBoard(board Board, whiteMove bool) (Position, error) {
	var reserves [2][BugCount]int8
	reserves[sideWhite] = initialReserve
	reserves[sideBlack] = initialReserve
	for _, tile := range board {
		var r = &reserves[sideIndex(tile.White)][tile.Bug]
		if *r == 0 {
			return Position{}, fmt.Errorf("%w: too many %s %s tiles",
				ErrMalformedPosition, colorName(tile.White), tile.Bug)
		}
		*r--
	}
	return NewPositionWithReserves(board, whiteMove, reserves[sideWhite], reserves[sideBlack])
}

// NewPositionWithReserves builds a position with explicit reserves. Empty
// reserves are how move-only fixtures suppress placements.
func NewPositionWithReserves(board Board, whiteMove bool,
	white, black [BugCount]int8) (Position, error) {

	var p = Position{
		Board:     board,
		WhiteMove: whiteMove,
	}
	p.Reserves[sideWhite] = white
	p.Reserves[sideBlack] = black
	p.Key = HashBoard(board, whiteMove)
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// Validate checks structural invariants: gapless stacks, consistent hash,
// non-negative reserves.
func (p *Position) Validate() error {
	for hex := range p.Board {
		if hex.H < 0 {
			return fmt.Errorf("%w: tile below the table at %v", ErrMalformedPosition, hex)
		}
		if hex.H > 0 && !p.Board.IsOccupied(Hex{Q: hex.Q, R: hex.R, H: hex.H - 1}) {
			return fmt.Errorf("%w: floating tile at %v", ErrMalformedPosition, hex)
		}
	}
	for side := range p.Reserves {
		for bug, count := range p.Reserves[side] {
			if count < 0 || count > initialReserve[bug] {
				return fmt.Errorf("%w: bad reserve count for %s", ErrMalformedPosition, Bug(bug))
			}
		}
	}
	if p.Key != HashBoard(p.Board, p.WhiteMove) {
		return fmt.Errorf("%w: stale hash", ErrMalformedPosition)
	}
	return nil
}

func (p *Position) reserve(white bool) *[BugCount]int8 {
	return &p.Reserves[sideIndex(white)]
}

// QueenInReserve reports whether the side has not yet placed its queen.
func (p *Position) QueenInReserve(white bool) bool {
	return p.Reserves[sideIndex(white)][Queen] > 0
}

func (p *Position) placedCount(white bool) int {
	var placed = reserveSize
	for _, count := range p.Reserves[sideIndex(white)] {
		placed -= int(count)
	}
	return placed
}

// MakeTurn applies a generated turn, writing the successor into child and
// leaving the receiver untouched. It validates cheap structural facts only
// (occupancy, reserve counts); full rule legality belongs to GenerateTurns
// and ApplyTurn. Returns false when the turn is structurally impossible.
func (p *Position) MakeTurn(t Turn, child *Position) bool {
	switch t.Kind {
	case TurnPlace:
		if t.To.H != 0 || p.Board.IsOccupied(t.To) {
			return false
		}
		if p.Reserves[sideIndex(p.WhiteMove)][t.Bug] == 0 {
			return false
		}
		var tile = Tile{Bug: t.Bug, White: p.WhiteMove}
		*child = *p
		child.Board = p.Board.Clone()
		child.Board[t.To] = tile
		child.Reserves[sideIndex(p.WhiteMove)][t.Bug]--
		child.Key = p.Key ^ zobristKey(t.To, tile) ^ zobristBlackToMove
		child.HasFrozen = false
	case TurnMove:
		var tile, ok = p.Board.TileAt(t.From)
		if !ok || p.Board.IsOccupied(t.To) {
			return false
		}
		if tile.White != p.WhiteMove && !t.Freezes {
			// only a pillbug throw may move the opponent's piece
			return false
		}
		*child = *p
		child.Board = p.Board.Clone()
		delete(child.Board, t.From)
		child.Board[t.To] = tile
		child.Key = p.Key ^ zobristKey(t.From, tile) ^ zobristKey(t.To, tile) ^ zobristBlackToMove
		child.HasFrozen = t.Freezes
		if t.Freezes {
			child.Frozen = t.To
		}
	case TurnSkip:
		*child = *p
		child.Key = p.Key ^ zobristBlackToMove
		child.HasFrozen = false
	default:
		return false
	}
	child.WhiteMove = !p.WhiteMove
	child.LastTurn = t
	child.Ply = p.Ply + 1
	return true
}

// ApplyTurn is the checked apply used for externally chosen turns: the turn
// must be in the legal set for the position. Search and self-play use
// MakeTurn on turns they generated themselves.
func (p *Position) ApplyTurn(t Turn) (Position, error) {
	var buf [MaxTurns]OrderedTurn
	var found = false
	for _, ot := range p.GenerateTurns(buf[:0]) {
		if ot.Turn == t {
			found = true
			break
		}
	}
	if !found {
		return Position{}, fmt.Errorf("%w: %v", ErrIllegalTurn, t)
	}
	var child Position
	if !p.MakeTurn(t, &child) {
		return Position{}, fmt.Errorf("%w: %v", ErrIllegalTurn, t)
	}
	return child, nil
}

// Outcome reports the rules result: a side loses when its queen's six
// same-level neighbors are all occupied; both surrounded at once is a draw.
func (p *Position) Outcome() Outcome {
	var whiteLost, blackLost bool
	for hex, tile := range p.Board {
		if tile.Bug != Queen {
			continue
		}
		if len(p.Board.OccupiedNeighbors(hex)) == DirCount {
			if tile.White {
				whiteLost = true
			} else {
				blackLost = true
			}
		}
	}
	switch {
	case whiteLost && blackLost:
		return OutcomeDraw
	case whiteLost:
		return OutcomeBlackWin
	case blackLost:
		return OutcomeWhiteWin
	default:
		return OutcomeNone
	}
}

func (p *Position) String() string {
	return p.Board.String()
}
