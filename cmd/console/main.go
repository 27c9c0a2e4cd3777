package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sburba/chive/internal/selfplay"
	"github.com/sburba/chive/pkg/engine"
	eval "github.com/sburba/chive/pkg/eval/queen"
	"github.com/sburba/chive/pkg/hive"
)

// A line-based front end for playing against the engine. Human turns go
// through the same legality path the self-play driver uses, so anything the
// console accepts is a turn the rules allow.

type console struct {
	engine    *engine.Engine
	moveTime  time.Duration
	positions []hive.Position
	plies     []selfplay.Ply
	logger    zerolog.Logger
}

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var moveTime time.Duration
	var threads, hash int
	flag.DurationVar(&moveTime, "movetime", time.Second, "engine time budget per turn")
	flag.IntVar(&threads, "threads", 1, "search threads")
	flag.IntVar(&hash, "hash", 64, "transposition table size in MB")
	flag.Parse()

	var eng = engine.NewEngine(func() engine.Evaluator {
		return eval.NewEvaluationService()
	})
	eng.Hash = hash
	eng.Threads = threads
	eng.Prepare()

	var c = &console{
		engine:    eng,
		moveTime:  moveTime,
		positions: []hive.Position{hive.NewPosition()},
		logger:    logger,
	}
	c.run()
}

func (c *console) run() {
	fmt.Println("commands: show, turns, play <turn>, go, save <path>, quit")
	var scanner = bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var name, arg, _ = strings.Cut(line, " ")
		var err error
		switch name {
		case "show":
			c.show()
		case "turns":
			c.listTurns()
		case "play":
			if err = c.play(arg); err == nil {
				c.show()
			}
		case "go":
			if err = c.engineTurn(); err == nil {
				c.show()
			}
		case "save":
			err = c.save(arg)
		case "quit":
			return
		default:
			err = fmt.Errorf("unknown command %q", name)
		}
		if err != nil {
			fmt.Println(err)
		}
	}
}

func (c *console) current() *hive.Position {
	return &c.positions[len(c.positions)-1]
}

func (c *console) show() {
	var cur = c.current()
	fmt.Println(cur.Board.String())
	if outcome := cur.Outcome(); outcome != hive.OutcomeNone {
		fmt.Printf("game over: %v\n", outcome)
		return
	}
	if cur.WhiteMove {
		fmt.Println("white to move")
	} else {
		fmt.Println("black to move")
	}
}

func (c *console) listTurns() {
	for _, ot := range c.current().GenerateTurns(nil) {
		fmt.Println(ot.Turn)
	}
}

func (c *console) play(arg string) error {
	var turn, err = hive.ParseTurn(arg)
	if err != nil {
		return err
	}
	return c.apply(c.resolve(turn))
}

// resolve fills in what the text notation omits by matching the parsed turn
// against the legal set. A pillbug throw reads the same as an ordinary move
// but carries a freeze marker, so without this step typing back a throw
// listed by "turns" would be rejected.
func (c *console) resolve(turn hive.Turn) hive.Turn {
	var fallback = hive.TurnEmpty
	for _, ot := range c.current().GenerateTurns(nil) {
		var legal = ot.Turn
		if legal == turn {
			return legal
		}
		if fallback == hive.TurnEmpty &&
			legal.Kind == turn.Kind && legal.Bug == turn.Bug &&
			legal.From == turn.From && legal.To == turn.To {
			fallback = legal
		}
	}
	if fallback != hive.TurnEmpty {
		return fallback
	}
	return turn
}

func (c *console) engineTurn() error {
	var cur = c.current()
	if outcome := cur.Outcome(); outcome != hive.OutcomeNone {
		return fmt.Errorf("game over: %v", outcome)
	}
	var si = c.engine.Search(context.Background(), hive.SearchParams{
		Positions: c.positions,
		Limits:    hive.LimitsType{MoveTime: int(c.moveTime / time.Millisecond)},
	})
	if len(si.MainLine) == 0 {
		return fmt.Errorf("engine returned no turn")
	}
	c.logger.Info().
		Int("depth", si.Depth).
		Int64("nodes", si.Nodes).
		Interface("score", si.Score).
		Msg("search finished")
	fmt.Printf("engine plays %v\n", si.MainLine[0])
	return c.apply(si.MainLine[0])
}

func (c *console) apply(turn hive.Turn) error {
	var cur = c.current()
	child, err := cur.ApplyTurn(turn)
	if err != nil {
		return err
	}
	c.plies = append(c.plies, selfplay.Ply{
		Turn:      turn,
		BeforeKey: cur.Key,
		AfterKey:  child.Key,
	})
	c.positions = append(c.positions, child)
	return nil
}

func (c *console) save(path string) error {
	if path == "" {
		return fmt.Errorf("save needs a path")
	}
	var f, err = os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var cur = c.current()
	return selfplay.NewTraceWriter(f).Write(selfplay.GameTrace{
		GameNumber:   1,
		FirstIsWhite: true,
		Plies:        c.plies,
		Outcome:      cur.Outcome(),
		Comment:      "console game",
		FinalBoard:   cur.Board.String(),
	})
}
