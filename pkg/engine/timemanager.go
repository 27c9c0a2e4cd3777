package engine

import (
	"context"
	"time"

	"github.com/sburba/chive/pkg/hive"
)

const (
	moveOverhead  = 20 * time.Millisecond
	movesToGo     = 30
	minThinkTime  = 5 * time.Millisecond
	mateStopDepth = 5
)

type timeManager struct {
	start  time.Time
	limits hive.LimitsType
	side   bool
	ctx    context.Context
	cancel context.CancelFunc
}

func newTimeManager(ctx context.Context, start time.Time,
	limits hive.LimitsType, p *hive.Position) *timeManager {
	var tm = &timeManager{
		start:  start,
		limits: limits,
		side:   p.WhiteMove,
	}
	var budget time.Duration
	if limits.MoveTime > 0 {
		budget = time.Duration(limits.MoveTime) * time.Millisecond
	} else if main := tm.mainTime(); main > 0 {
		budget = time.Duration(main) * time.Millisecond / movesToGo
		budget -= moveOverhead
		if budget < minThinkTime {
			budget = minThinkTime
		}
	}
	if budget > 0 {
		tm.ctx, tm.cancel = context.WithDeadline(ctx, start.Add(budget))
	} else {
		tm.ctx, tm.cancel = context.WithCancel(ctx)
	}
	return tm
}

func (tm *timeManager) mainTime() int {
	if tm.side {
		return tm.limits.WhiteTime
	}
	return tm.limits.BlackTime
}

func (tm *timeManager) IsDone() bool {
	return tm.ctx.Err() != nil
}

func (tm *timeManager) OnNodesChanged(nodes int) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *timeManager) OnIterationComplete(line mainLine) {
	if tm.limits.Infinite {
		return
	}
	if tm.limits.Depth > 0 && line.depth >= tm.limits.Depth {
		tm.cancel()
		return
	}
	// a proven forced result cannot change with more depth
	if line.score >= winIn(line.depth-mateStopDepth) ||
		line.score <= lossIn(line.depth-mateStopDepth) {
		tm.cancel()
	}
}

func (tm *timeManager) Close() {
	tm.cancel()
}
