package engine

// Events describes what changed between two consecutive states. The engine
// never calls out; hosts compute Events after each operation to drive sound,
// score display and high-score bookkeeping.
type Events struct {
	Started    bool // NotStarted -> Running
	Ate        bool // food eaten this tick
	ScoreDelta int
	Died       bool // Running -> Over
}

// Any reports whether at least one event fired.
func (ev Events) Any() bool {
	return ev.Started || ev.Ate || ev.Died
}

// Diff compares prev with next, which must be the result of one operation
// applied to prev.
func Diff(prev, next GameState) Events {
	ev := Events{
		Started:    !prev.GameStarted && next.GameStarted,
		ScoreDelta: next.Score - prev.Score,
		Died:       !prev.GameOver && next.GameOver,
	}
	ev.Ate = ev.ScoreDelta > 0
	return ev
}
