package engine

import (
	"github.com/sburba/chive/pkg/hive"
)

const (
	stackSize     = 64
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

// Mate scores are stored relative to the node, not the root, so a cached
// "win in N" stays correct when the same position is reached at a different
// height.
func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}
	if v <= valueLoss {
		return v - height
	}
	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}
	if v <= valueLoss {
		return v + height
	}
	return v
}

func newScore(v int) hive.Score {
	if v >= valueWin {
		return hive.Score{Mate: (valueMate - v + 1) / 2}
	}
	if v <= valueLoss {
		return hive.Score{Mate: (-valueMate - v) / 2}
	}
	return hive.Score{Value: v}
}
