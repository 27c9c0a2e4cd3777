package engine

import (
	"github.com/sburba/chive/pkg/hive"
)

// The search is plain fail-soft negamax with alpha-beta. Heuristics that
// would change the value of a fixed-depth search (null move, reductions,
// futility margins) are deliberately absent: the transposition table and
// killer ordering only reshape the visit order, so a depth-d result always
// equals unpruned minimax at depth d. Root turns are tried strictly in
// generation order, which makes equal-score ties resolve to the
// first-generated turn.

func searchRoot(t *thread, ml []hive.OrderedTurn, depth int) int {
	const height = 0
	var p = &t.stack[height].position
	var child = &t.stack[height+1].position
	t.stack[height].pv.clear()

	var alpha = -valueInfinity
	var best = -valueInfinity
	for i := range ml {
		if !t.makeTurn(p, ml[i].Turn, child) {
			continue
		}
		var score = -t.alphaBeta(-valueInfinity, -alpha, depth-1, height+1)
		if score > best {
			best = score
			t.assignPV(height, ml[i].Turn)
		}
		if score > alpha {
			alpha = score
		}
	}
	return best
}

func (t *thread) alphaBeta(alpha, beta, depth, height int) int {
	t.clearPV(height)
	var position = &t.stack[height].position

	// Terminal positions resolve by rule before any search logic runs,
	// even at depth zero.
	switch position.Outcome() {
	case hive.OutcomeDraw:
		return valueDraw
	case hive.OutcomeWhiteWin:
		if position.WhiteMove {
			return winIn(height)
		}
		return lossIn(height)
	case hive.OutcomeBlackWin:
		if position.WhiteMove {
			return lossIn(height)
		}
		return winIn(height)
	}

	if height >= maxHeight {
		return t.evaluator.Evaluate(position)
	}
	if t.isRepeat(height) {
		return valueDraw
	}
	if depth <= 0 {
		return t.evaluator.Evaluate(position)
	}

	// mate distance pruning
	if winIn(height+1) <= alpha {
		return alpha
	}
	if lossIn(height+2) >= beta {
		return beta
	}

	var ttDepth, ttValue, ttBound, ttIndex, ttHit = t.engine.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		// Shallower entries must not shortcut a deeper request.
		if ttDepth >= depth {
			if ttBound == boundExact ||
				ttBound == boundLower && ttValue >= beta ||
				ttBound == boundUpper && ttValue <= alpha {
				return ttValue
			}
		}
	}

	var ml = position.GenerateTurns(t.stack[height].turnList[:0])
	var mi = newTurnIterator(ml, ttIndex,
		t.stack[height].killer1, t.stack[height].killer2)
	if height+2 <= maxHeight {
		t.stack[height+2].killer1 = hive.TurnEmpty
		t.stack[height+2].killer2 = hive.TurnEmpty
	}
	var child = &t.stack[height+1].position

	var best = -valueInfinity
	var bestIndex = -1
	var bestTurn = hive.TurnEmpty
	var oldAlpha = alpha

	for {
		var turn, index = mi.Next()
		if index < 0 {
			break
		}
		if !t.makeTurn(position, turn, child) {
			continue
		}
		var score = -t.alphaBeta(-beta, -alpha, depth-1, height+1)
		if score > best {
			best = score
			bestIndex = index
			bestTurn = turn
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, turn)
			if alpha >= beta {
				break
			}
		}
	}

	if best > oldAlpha && bestTurn != hive.TurnEmpty {
		t.updateKiller(bestTurn, height)
	}

	ttBound = 0
	if best > oldAlpha {
		ttBound |= boundLower
	}
	if best < beta {
		ttBound |= boundUpper
	}
	t.engine.transTable.Update(position.Key, depth, valueToTT(best, height), ttBound, bestIndex)

	return best
}

// isRepeat treats any recurrence of the position key, within the search
// stack or against the game history, as a draw by repetition.
func (t *thread) isRepeat(height int) bool {
	var p = &t.stack[height].position
	if p.LastTurn == hive.TurnEmpty {
		return false
	}
	for i := height - 1; i >= 0; i-- {
		if t.stack[i].position.Key == p.Key {
			return true
		}
	}
	return t.engine.historyKeys[p.Key] >= 2
}

func (t *thread) makeTurn(p *hive.Position, turn hive.Turn, child *hive.Position) bool {
	if !p.MakeTurn(turn, child) {
		return false
	}
	t.incNodes()
	return true
}

func (t *thread) incNodes() {
	t.nodes++
	if t.nodes&255 == 0 {
		// fixed-nodes limits are only exact in single threaded mode
		if t.engine.Threads == 1 {
			t.engine.timeManager.OnNodesChanged(int(t.engine.mainLine.nodes + t.nodes))
		}
		if t.engine.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

func (t *thread) updateKiller(turn hive.Turn, height int) {
	if t.stack[height].killer1 != turn {
		t.stack[height].killer2 = t.stack[height].killer1
		t.stack[height].killer1 = turn
	}
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, turn hive.Turn) {
	if height+1 <= maxHeight {
		t.stack[height].pv.assign(turn, &t.stack[height+1].pv)
	}
}

func (e *Engine) genRootTurns() []hive.OrderedTurn {
	var t = &e.threads[0]
	const height = 0
	var p = &t.stack[height].position
	return p.GenerateTurns(t.stack[height].turnList[:0])
}
