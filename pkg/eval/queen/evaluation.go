package eval

import (
	"github.com/sburba/chive/pkg/hive"
)

// EvaluationService scores a position by queen safety and mobility. The
// dominant term is how many of each queen's six neighbours are occupied,
// since six occupied neighbours is the loss condition; mobility breaks ties
// toward positions with more legal turns. Scores stay far below the
// forced-win range, so search never confuses a good position with a proven
// one.
type EvaluationService struct {
	buf [hive.MaxTurns]hive.OrderedTurn
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

const (
	queenRingWeight = 100
	mobilityWeight  = 1
	unplacedRing    = 1
)

func (e *EvaluationService) Evaluate(p *hive.Position) int {
	var eval = queenRingWeight * (queenPressure(p, !p.WhiteMove) - queenPressure(p, p.WhiteMove))
	eval += mobilityWeight * len(p.GenerateTurns(e.buf[:0]))
	return eval
}

// queenPressure counts occupied hexes around the given side's queen. An
// unplaced queen reads as slight pressure: delaying the queen is not free.
func queenPressure(p *hive.Position, white bool) int {
	for hex, tile := range p.Board {
		if tile.Bug != hive.Queen || tile.White != white || hex.H != 0 {
			continue
		}
		return len(p.Board.OccupiedNeighbors(hex))
	}
	return unplacedRing
}
