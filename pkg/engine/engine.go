package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/sburba/chive/pkg/hive"
)

// Engine searches Hive positions with iterative deepening, a shared
// transposition table, and optional lazy-SMP helper threads. Hash is the
// table size in megabytes. A fixed-depth single-threaded search is fully
// deterministic; helper threads trade that for speed.
type Engine struct {
	Hash             int
	Threads          int
	ProgressMinNodes int
	evalBuilder      func() Evaluator
	timeManager      *timeManager
	transTable       *transTable
	historyKeys      map[uint64]int
	threads          []thread
	progress         func(hive.SearchInfo)
	mainLine         mainLine
	start            time.Time
}

// Evaluator scores a position from the side to move's perspective. The engine
// builds one instance per search thread, so implementations may keep scratch
// state without locking.
type Evaluator interface {
	Evaluate(p *hive.Position) int
}

type thread struct {
	engine    *Engine
	evaluator Evaluator
	nodes     int64
	stack     [stackSize]struct {
		position hive.Position
		turnList [hive.MaxTurns]hive.OrderedTurn
		pv       pv
		killer1  hive.Turn
		killer2  hive.Turn
	}
}

type pv struct {
	items [stackSize]hive.Turn
	size  int
}

type mainLine struct {
	moves []hive.Turn
	score int
	depth int
	nodes int64
}

func NewEngine(evalBuilder func() Evaluator) *Engine {
	return &Engine{
		Hash:             16,
		Threads:          1,
		ProgressMinNodes: 200000,
		evalBuilder:      evalBuilder,
	}
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
	if len(e.threads) != e.Threads {
		e.threads = make([]thread, e.Threads)
		for i := range e.threads {
			var t = &e.threads[i]
			t.engine = e
			t.evaluator = e.evalBuilder()
		}
	}
}

// Clear drops accumulated transposition state, as before an unrelated game.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
}

// Search picks the best turn for the last position in params.Positions. The
// preceding positions feed repetition detection. It blocks until a limit
// trips or ctx is cancelled and always returns the best line of the deepest
// fully completed iteration.
func (e *Engine) Search(ctx context.Context, params hive.SearchParams) hive.SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = &params.Positions[len(params.Positions)-1]
	e.timeManager = newTimeManager(ctx, e.start, params.Limits, p)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(params.Positions)
	for i := range e.threads {
		var t = &e.threads[i]
		t.nodes = 0
		t.stack[0].position = *p
	}
	e.progress = params.Progress
	e.mainLine = mainLine{}
	lazySmp(e)
	return e.currentSearchResult()
}

func getHistoryKeys(positions []hive.Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := range positions {
		result[positions[i].Key]++
	}
	return result
}

func (e *Engine) currentSearchResult() hive.SearchInfo {
	return hive.SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newScore(e.mainLine.score),
		Nodes:    e.mainLine.nodes,
		Time:     time.Since(e.start).Milliseconds(),
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m hive.Turn, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []hive.Turn {
	var result = make([]hive.Turn, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
