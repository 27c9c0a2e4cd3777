package engine

import (
	"errors"
	"sync"

	"github.com/sburba/chive/pkg/hive"
)

var errSearchTimeout = errors.New("search timeout")

type searchTask struct {
	depth int
}

// lazySmp runs iterative deepening on Threads workers sharing the
// transposition table. With one thread the depths run strictly in order and
// the search is deterministic; with more, workers race on neighbouring
// depths and diverge only in timing, not in per-depth values.
func lazySmp(e *Engine) {
	var ml = e.genRootTurns()
	if len(ml) == 0 {
		return
	}
	e.mainLine = mainLine{
		depth: 0,
		score: 0,
		moves: []hive.Turn{ml[0].Turn},
	}
	if len(ml) == 1 && !e.timeManager.limits.Infinite && e.timeManager.limits.Depth == 0 {
		return
	}

	var tasks = make(chan searchTask)
	var taskResults = make(chan mainLine)
	var wg = &sync.WaitGroup{}
	for i := range e.threads {
		wg.Add(1)
		go func(t *thread) {
			defer wg.Done()
			for task := range tasks {
				var line, ok = t.searchDepth(ml, task.depth)
				if ok {
					taskResults <- line
				}
			}
		}(&e.threads[i])
	}

	iterativeDeepening(e, tasks, taskResults)
	close(tasks)
	go func() {
		wg.Wait()
		close(taskResults)
	}()
	for line := range taskResults {
		e.onTaskResult(line)
	}
}

func iterativeDeepening(e *Engine, tasks chan<- searchTask, taskResults <-chan mainLine) {
	var depth = 1
	var searchCountByDepth [stackSize]int
	for depth <= maxHeight && !e.timeManager.IsDone() {
		// a helper thread may already have finished this depth
		if searchCountByDepth[depth] > 0 && searchCountByDepth[depth] >= e.Threads/2 {
			depth++
			continue
		}
		select {
		case tasks <- searchTask{depth: depth}:
			searchCountByDepth[depth]++
			depth++
		case line, ok := <-taskResults:
			if !ok {
				return
			}
			e.onTaskResult(line)
		}
	}
}

func (e *Engine) onTaskResult(line mainLine) {
	e.mainLine.nodes += line.nodes
	if line.depth > e.mainLine.depth {
		e.mainLine.depth = line.depth
		e.mainLine.score = line.score
		e.mainLine.moves = line.moves
		e.timeManager.OnIterationComplete(e.mainLine)
		if e.progress != nil && e.mainLine.nodes >= int64(e.ProgressMinNodes) {
			e.progress(e.currentSearchResult())
		}
	}
}

func (t *thread) searchDepth(ml []hive.OrderedTurn, depth int) (line mainLine, ok bool) {
	defer func() {
		line.nodes = t.nodes
		t.nodes = 0
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				ok = false
				return
			}
			panic(r)
		}
	}()
	for h := 0; h <= 2 && h <= maxHeight; h++ {
		t.stack[h].killer1 = hive.TurnEmpty
		t.stack[h].killer2 = hive.TurnEmpty
	}
	var score = searchRoot(t, ml, depth)
	return mainLine{
		depth: depth,
		score: score,
		moves: t.stack[0].pv.toSlice(),
	}, true
}
