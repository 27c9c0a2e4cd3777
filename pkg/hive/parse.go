package hive

import (
	"fmt"
	"strconv"
	"strings"
)

// The text map format mirrors the board as staggered rows of single-character
// cells, "." for empty. Stacked boards repeat the grid once per "Layer N"
// heading. Example:
//
//	Layer 0
//	 .  a  .
//	  m  Q  r
//	 .  .  .
//	Layer 1
//	 .  B  .
//	  .  b  .
//	 .  .  .

// ParseHexMap parses the text map format into raw cell tokens keyed by hex.
func ParseHexMap(s string) (map[Hex]string, error) {
	var result = make(map[Hex]string)

	// Rows indented more than the row below start at row 1, so that the
	// same board reads the same whether its first row is staggered or not.
	var startingRow = 0
	var contentLines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" || strings.Contains(line, "Layer") {
			continue
		}
		contentLines = append(contentLines, line)
		if len(contentLines) == 2 {
			break
		}
	}
	if len(contentLines) == 2 &&
		leadingSpace(contentLines[0]) > leadingSpace(contentLines[1]) {
		startingRow = 1
	}

	var height = 0
	var row = startingRow
	for _, line := range strings.Split(s, "\n") {
		var tokens = strings.Fields(line)
		var rowHasCells = false
		for i := 0; i < len(tokens); i++ {
			var token = tokens[i]
			switch {
			case token == "Layer":
				if i+1 >= len(tokens) {
					return nil, fmt.Errorf("layer heading without a number")
				}
				var h, err = strconv.Atoi(tokens[i+1])
				if err != nil {
					return nil, fmt.Errorf("invalid layer number: %w", err)
				}
				height = h
				row = startingRow
				i++
			case token == ".":
				rowHasCells = true
			case len(token) == 1:
				rowHasCells = true
				var hex = RowCol{Row: row, Col: i, Height: height}.ToHex()
				result[hex] = token
			default:
				return nil, fmt.Errorf("cell must be a single character, got %q", token)
			}
		}
		if rowHasCells {
			row++
		}
	}
	return result, nil
}

// FormatHexMap renders raw cell tokens in the text map format.
func FormatHexMap(cells map[Hex]string) string {
	if len(cells) == 0 {
		return "<empty>"
	}

	var hexes = make([]Hex, 0, len(cells))
	for hex := range cells {
		hexes = append(hexes, hex)
	}
	var dims = dimensions(hexes)

	var sb strings.Builder
	for height := dims.HeightMin; height <= dims.HeightMax; height++ {
		if dims.HeightMax != 0 {
			fmt.Fprintf(&sb, "\nLayer %d\n", height)
		}
		for row := dims.RowMin; row <= dims.RowMax; row++ {
			// Stagger odd rows. Binary and instead of mod so negative
			// rows land on the same parity.
			if row&1 == 1 {
				sb.WriteByte(' ')
			}
			for col := dims.ColMin; col <= dims.ColMax; col++ {
				var token = "."
				if t, ok := cells[RowCol{Row: row, Col: col, Height: height}.ToHex()]; ok {
					token = t
				}
				sb.WriteString(" " + token + " ")
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard parses the text map format into a Board, rejecting cells that
// are not valid tiles.
func ParseBoard(s string) (Board, error) {
	var cells, err = ParseHexMap(s)
	if err != nil {
		return nil, err
	}
	var board = make(Board, len(cells))
	for hex, token := range cells {
		var tile, err = parseTile(token)
		if err != nil {
			return nil, err
		}
		board[hex] = tile
	}
	return board, nil
}

func formatBoard(b Board) string {
	var cells = make(map[Hex]string, len(b))
	for hex, tile := range b {
		cells[hex] = tile.String()
	}
	return FormatHexMap(cells)
}

func leadingSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
