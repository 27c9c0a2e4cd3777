package hive

// LimitsType bounds a search. Zero fields mean unlimited; the engine stops on
// whichever limit trips first.
type LimitsType struct {
	Infinite  bool
	WhiteTime int
	BlackTime int
	MoveTime  int
	Depth     int
	Nodes     int
}

// SearchParams carries the game history (last element is the position to
// search) plus limits and an optional per-iteration progress callback.
type SearchParams struct {
	Positions []Position
	Limits    LimitsType
	Progress  func(si SearchInfo)
}

// SearchInfo reports one completed iteration: principal variation, score,
// and counters. Time is in milliseconds.
type SearchInfo struct {
	Score    Score
	Depth    int
	Nodes    int64
	Time     int64
	MainLine []Turn
}

// Score is either a plain evaluation in evaluator units or a forced win
// distance. Mate > 0 means the side to move wins in that many turns of its
// own, Mate < 0 that it loses.
type Score struct {
	Value int
	Mate  int
}
