package selfplay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/sburba/chive/pkg/hive"
)

// Searcher is the engine surface the driver needs. The driver stays
// authoritative: every turn an engine proposes is re-validated against the
// driver's own position before it is played.
type Searcher interface {
	Search(ctx context.Context, params hive.SearchParams) hive.SearchInfo
	Clear()
}

// TimeControl fixes the per-turn search budget. Exactly one field should be
// set; FixedNodes gives reproducible games, FixedTime realistic ones.
type TimeControl struct {
	FixedDepth int
	FixedNodes int
	FixedTime  time.Duration
}

func (tc TimeControl) limits() (hive.LimitsType, error) {
	switch {
	case tc.FixedDepth != 0:
		return hive.LimitsType{Depth: tc.FixedDepth}, nil
	case tc.FixedNodes != 0:
		return hive.LimitsType{Nodes: tc.FixedNodes}, nil
	case tc.FixedTime != 0:
		return hive.LimitsType{MoveTime: int(tc.FixedTime / time.Millisecond)}, nil
	}
	return hive.LimitsType{}, fmt.Errorf("no time control")
}

type gameInfo struct {
	gameNumber   int
	whiteIsFirst bool
	seed         uint64
	openingPlies int
}

// Ply is one recorded turn with the position hashes on either side, enough
// to audit a replay without re-running the engines.
type Ply struct {
	Turn      hive.Turn
	BeforeKey uint64
	AfterKey  uint64
}

// GameTrace records one finished game: the ply sequence from the empty
// board, the result, and why the game ended.
type GameTrace struct {
	GameNumber   int
	FirstIsWhite bool
	Plies        []Ply
	Outcome      hive.Outcome
	Comment      string
	FinalBoard   string
}

func (t GameTrace) Turns() []hive.Turn {
	var turns = make([]hive.Turn, len(t.Plies))
	for i := range t.Plies {
		turns[i] = t.Plies[i].Turn
	}
	return turns
}

func playGame(
	ctx context.Context,
	engineFirst, engineSecond Searcher,
	tc TimeControl,
	maxPly int,
	info gameInfo,
	logger zerolog.Logger,
) (GameTrace, error) {

	logger.Info().Int("game", info.gameNumber).Msg("game started")

	engineFirst.Clear()
	engineSecond.Clear()

	var limits, err = tc.limits()
	if err != nil {
		return GameTrace{}, err
	}

	var trace = GameTrace{GameNumber: info.gameNumber, FirstIsWhite: info.whiteIsFirst}
	// Every position the game visits is counted here, the seeded opening
	// plies included, so a repetition that spans the opening is still seen
	// on its third visit.
	var positions = []hive.Position{hive.NewPosition()}
	var keys = map[uint64]int{positions[0].Key: 1}

	var finish = func(outcome hive.Outcome, comment string) GameTrace {
		trace.Outcome = outcome
		trace.Comment = comment
		trace.FinalBoard = positions[len(positions)-1].Board.String()
		logger.Info().
			Int("game", info.gameNumber).
			Stringer("outcome", outcome).
			Str("comment", comment).
			Int("plies", len(trace.Plies)).
			Msg("game finished")
		return trace
	}

	var record = func(cur *hive.Position, turn hive.Turn) error {
		child, err := cur.ApplyTurn(turn)
		if err != nil {
			return fmt.Errorf("game %v ply %v: %w", info.gameNumber, len(trace.Plies), err)
		}
		trace.Plies = append(trace.Plies, Ply{
			Turn:      turn,
			BeforeKey: cur.Key,
			AfterKey:  child.Key,
		})
		positions = append(positions, child)
		keys[child.Key]++
		return nil
	}

	// A few seeded random plies diversify the openings; fixed seeds keep
	// the match reproducible.
	var rng = rand.New(rand.NewSource(info.seed))
	for i := 0; i < info.openingPlies; i++ {
		var cur = &positions[len(positions)-1]
		var ml = cur.GenerateTurns(nil)
		if err := record(cur, ml[rng.Intn(len(ml))].Turn); err != nil {
			return GameTrace{}, err
		}
	}

	for {
		var cur = &positions[len(positions)-1]

		if outcome := cur.Outcome(); outcome != hive.OutcomeNone {
			return finish(outcome, "queen surrounded"), nil
		}
		if keys[cur.Key] >= 3 {
			return finish(hive.OutcomeDraw, "threefold repetition"), nil
		}
		if len(trace.Plies) >= maxPly {
			return finish(hive.OutcomeUndecided, "ply budget exhausted"), nil
		}
		if err := ctx.Err(); err != nil {
			return GameTrace{}, err
		}

		var eng Searcher
		if cur.WhiteMove == info.whiteIsFirst {
			eng = engineFirst
		} else {
			eng = engineSecond
		}
		var searchResult = eng.Search(ctx, hive.SearchParams{
			Positions: positions,
			Limits:    limits,
		})
		if len(searchResult.MainLine) == 0 {
			return GameTrace{}, fmt.Errorf("game %v: engine returned no turn", info.gameNumber)
		}
		if err := record(cur, searchResult.MainLine[0]); err != nil {
			return GameTrace{}, err
		}
	}
}
