package hive

import (
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

type hexCell struct {
	hex   Hex
	token string
}

// CanonicalizeHexMap maps a hex map to a canonical representative of its
// rotation/translation equivalence class: among the six rotations, shifted so
// the minimum Q and R are zero, pick the lexicographically smallest cell list.
// Heights are untouched.
func CanonicalizeHexMap(cells map[Hex]string) map[Hex]string {
	if len(cells) == 0 {
		return map[Hex]string{}
	}

	var hexes = maps.Keys(cells)
	slices.SortFunc(hexes, hexCompare)

	var best []hexCell
	for rotation := 1; rotation <= 6; rotation++ {
		var rotated = make([]hexCell, 0, len(hexes))
		for _, hex := range hexes {
			rotated = append(rotated, hexCell{hex: hex.RotatedBy(rotation), token: cells[hex]})
		}
		canonicalizeTranslation(rotated)
		slices.SortFunc(rotated, cellCompare)
		if best == nil || cellsCompare(rotated, best) < 0 {
			best = rotated
		}
	}

	var result = make(map[Hex]string, len(best))
	for _, cell := range best {
		result[cell.hex] = cell.token
	}
	return result
}

func canonicalizeTranslation(cells []hexCell) {
	var minQ, minR = cells[0].hex.Q, cells[0].hex.R
	for _, cell := range cells[1:] {
		minQ = minInt(minQ, cell.hex.Q)
		minR = minInt(minR, cell.hex.R)
	}
	for i := range cells {
		cells[i].hex.Q -= minQ
		cells[i].hex.R -= minR
		// H intentionally untouched
	}
}

func cellCompare(a, b hexCell) int {
	if c := hexCompare(a.hex, b.hex); c != 0 {
		return c
	}
	return strings.Compare(a.token, b.token)
}

func cellsCompare(a, b []hexCell) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cellCompare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
