package hive

import "fmt"

// Bug is one of the closed set of piece kinds, base game plus the
// Ladybug/Mosquito/Pillbug expansions.
type Bug int

const (
	Ant Bug = iota
	Beetle
	Grasshopper
	Queen
	Spider
	Ladybug
	Mosquito
	Pillbug
	BugCount
)

var bugLetters = [BugCount]byte{
	Ant:         'A',
	Beetle:      'B',
	Grasshopper: 'G',
	Queen:       'Q',
	Spider:      'S',
	Ladybug:     'L',
	Mosquito:    'M',
	Pillbug:     'P',
}

func (b Bug) String() string {
	if b < 0 || b >= BugCount {
		return "?"
	}
	return string(bugLetters[b])
}

// ParseBug accepts the single upper-case letter form.
func ParseBug(s string) (Bug, error) {
	if len(s) == 1 {
		for b := Bug(0); b < BugCount; b++ {
			if s[0] == bugLetters[b] {
				return b, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid bug character: %q", s)
}

// Tile is a colored bug. The zero Tile is the white ant; use ok flags from
// board lookups rather than a sentinel tile.
type Tile struct {
	Bug   Bug
	White bool
}

// String renders white tiles upper-case and black tiles lower-case, the same
// single-letter form the map format uses.
func (t Tile) String() string {
	var ch = bugLetters[t.Bug]
	if !t.White {
		ch += 'a' - 'A'
	}
	return string(ch)
}

func parseTile(s string) (Tile, error) {
	if len(s) != 1 {
		return Tile{}, fmt.Errorf("invalid tile: %q", s)
	}
	var ch = s[0]
	var white = ch < 'a'
	if !white {
		ch -= 'a' - 'A'
	}
	var bug, err = ParseBug(string(ch))
	if err != nil {
		return Tile{}, err
	}
	return Tile{Bug: bug, White: white}, nil
}

func colorName(white bool) string {
	if white {
		return "white"
	}
	return "black"
}

// initialReserve is each side's pool of unplaced bugs at the start of a game.
var initialReserve = [BugCount]int8{
	Queen:       1,
	Ant:         3,
	Beetle:      2,
	Grasshopper: 3,
	Spider:      2,
	Ladybug:     1,
	Mosquito:    1,
	Pillbug:     1,
}

const reserveSize = 14
