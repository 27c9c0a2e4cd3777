package engine

import (
	"github.com/sburba/chive/pkg/hive"
)

// turnIterator yields the generated turns with the hash-table turn and the
// two killers pulled to the front, then the rest in generation order. Only
// the order changes; every generated turn is yielded exactly once.
type turnIterator struct {
	ml      []hive.OrderedTurn
	front   [3]int
	fronts  int
	stage   int
	current int
}

func newTurnIterator(ml []hive.OrderedTurn, ttIndex int, killer1, killer2 hive.Turn) turnIterator {
	var it = turnIterator{ml: ml}
	if ttIndex >= 0 && ttIndex < len(ml) {
		it.pushFront(ttIndex)
	}
	it.pushFrontTurn(killer1)
	it.pushFrontTurn(killer2)
	return it
}

func (it *turnIterator) pushFront(index int) {
	for i := 0; i < it.fronts; i++ {
		if it.front[i] == index {
			return
		}
	}
	it.front[it.fronts] = index
	it.fronts++
}

func (it *turnIterator) pushFrontTurn(turn hive.Turn) {
	if turn == hive.TurnEmpty {
		return
	}
	for i := range it.ml {
		if it.ml[i].Turn == turn {
			it.pushFront(i)
			return
		}
	}
}

// Next returns the next turn and its index in generation order, or a
// negative index when exhausted.
func (it *turnIterator) Next() (hive.Turn, int) {
	if it.stage < it.fronts {
		var index = it.front[it.stage]
		it.stage++
		return it.ml[index].Turn, index
	}
	for it.current < len(it.ml) {
		var index = it.current
		it.current++
		if it.isFront(index) {
			continue
		}
		return it.ml[index].Turn, index
	}
	return hive.TurnEmpty, -1
}

func (it *turnIterator) isFront(index int) bool {
	for i := 0; i < it.fronts; i++ {
		if it.front[i] == index {
			return true
		}
	}
	return false
}
