package hive

import "golang.org/x/exp/rand"

// Zobrist keys are drawn from a fixed-seed generator so that position hashes,
// and therefore traces and transposition lookups, are identical across runs
// and processes.
const zobristSeed = 0x6368697665 // "chive"

const (
	zobristAxisSize   = 42
	zobristHeightSize = 6
	tileIndexCount    = int(BugCount) * 2
)

var (
	zobristTable       [tileIndexCount][zobristHeightSize][zobristAxisSize][zobristAxisSize]uint64
	zobristBlackToMove uint64
)

func init() {
	var rnd = rand.New(rand.NewSource(zobristSeed))
	for tile := 0; tile < tileIndexCount; tile++ {
		for h := 0; h < zobristHeightSize; h++ {
			for q := 0; q < zobristAxisSize; q++ {
				for r := 0; r < zobristAxisSize; r++ {
					zobristTable[tile][h][q][r] = rnd.Uint64()
				}
			}
		}
	}
	zobristBlackToMove = rnd.Uint64()
}

func tileIndex(t Tile) int {
	if t.White {
		return int(t.Bug)
	}
	return int(t.Bug) + int(BugCount)
}

// Coordinates wrap into the table so the hash stays a total function of board
// content; games never come close to the 42-hex span in practice.
func zobristAxisIndex(v int) int {
	return ((v % zobristAxisSize) + zobristAxisSize) % zobristAxisSize
}

func zobristKey(hex Hex, tile Tile) uint64 {
	return zobristTable[tileIndex(tile)][hex.H%zobristHeightSize][zobristAxisIndex(hex.Q)][zobristAxisIndex(hex.R)]
}

// HashBoard computes the structural hash of a board plus side to move from
// scratch. MakeTurn maintains the same value incrementally.
func HashBoard(b Board, whiteMove bool) uint64 {
	var hash uint64
	if !whiteMove {
		hash ^= zobristBlackToMove
	}
	for hex, tile := range b {
		hash ^= zobristKey(hex, tile)
	}
	return hash
}
