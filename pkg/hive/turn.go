package hive

import (
	"fmt"
	"strings"
)

// TurnKind tags the closed set of turn variants.
type TurnKind uint8

const (
	// TurnNone is the zero value, used the way chess engines use an empty
	// move: "no turn here yet".
	TurnNone TurnKind = iota
	// TurnPlace puts a reserve bug on an empty hex.
	TurnPlace
	// TurnMove slides, jumps, or climbs a board piece from From to To.
	TurnMove
	// TurnSkip passes; it is only legal (and then mandatory) when a side
	// has no placement or move.
	TurnSkip
)

// Turn is one ply. Placements use Bug and To; moves use From and To and set
// Freezes when a pillbug throw immobilizes the thrown piece for a turn. The
// struct is comparable and carries everything needed to reverse it against
// the position it was applied to.
type Turn struct {
	Kind    TurnKind
	Bug     Bug
	From    Hex
	To      Hex
	Freezes bool
}

var TurnEmpty = Turn{}

// OrderedTurn pairs a turn with a sort key for move ordering, mirroring the
// generate-into-buffer API of the engine package.
type OrderedTurn struct {
	Turn Turn
	Key  int32
}

func (t Turn) String() string {
	switch t.Kind {
	case TurnPlace:
		return fmt.Sprintf("%s%s", t.Bug, formatHexCoord(t.To))
	case TurnMove:
		return fmt.Sprintf("%s-%s", formatHexCoord(t.From), formatHexCoord(t.To))
	case TurnSkip:
		return "skip"
	default:
		return "none"
	}
}

func formatHexCoord(h Hex) string {
	if h.H != 0 {
		return fmt.Sprintf("(%d,%d,%d)", h.Q, h.R, h.H)
	}
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// ParseTurn reads the String form: "Q(0,0)" places a queen, "(0,0)-(1,0)"
// moves, "skip" passes. The Freezes flag is not part of the notation; callers
// resolve it against the legal turn set.
func ParseTurn(s string) (Turn, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "skip") {
		return Turn{Kind: TurnSkip}, nil
	}
	if len(s) == 0 {
		return TurnEmpty, fmt.Errorf("empty turn")
	}
	if s[0] != '(' {
		var bug, err = ParseBug(strings.ToUpper(s[0:1]))
		if err != nil {
			return TurnEmpty, err
		}
		var to, rest, perr = parseHexCoord(s[1:])
		if perr != nil || rest != "" {
			return TurnEmpty, fmt.Errorf("invalid placement %q", s)
		}
		return Turn{Kind: TurnPlace, Bug: bug, To: to}, nil
	}
	var from, rest, err = parseHexCoord(s)
	if err != nil {
		return TurnEmpty, fmt.Errorf("invalid move %q", s)
	}
	rest = strings.TrimPrefix(rest, "-")
	var to, tail, terr = parseHexCoord(rest)
	if terr != nil || tail != "" {
		return TurnEmpty, fmt.Errorf("invalid move %q", s)
	}
	return Turn{Kind: TurnMove, From: from, To: to}, nil
}

func parseHexCoord(s string) (Hex, string, error) {
	if len(s) == 0 || s[0] != '(' {
		return Hex{}, s, fmt.Errorf("expected '('")
	}
	var end = strings.IndexByte(s, ')')
	if end < 0 {
		return Hex{}, s, fmt.Errorf("expected ')'")
	}
	var parts = strings.Split(s[1:end], ",")
	if len(parts) != 2 && len(parts) != 3 {
		return Hex{}, s, fmt.Errorf("expected 2 or 3 coordinates")
	}
	var vals [3]int
	for i, part := range parts {
		var _, err = fmt.Sscanf(strings.TrimSpace(part), "%d", &vals[i])
		if err != nil {
			return Hex{}, s, err
		}
	}
	return Hex{Q: vals[0], R: vals[1], H: vals[2]}, s[end+1:], nil
}
