package game

import "time"

// Screen identifies which part of the game the player is looking at.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenAbout
	ScreenGame
	ScreenGameOver
)

// String returns the lowercase name used in state views and logs.
func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenAbout:
		return "about"
	case ScreenGame:
		return "game"
	case ScreenGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Timing constants for the round countdown. All comparisons work on
// wall-clock timestamps delivered through events, never on time.Now().
const (
	// BaseRoundTime is the countdown budget for round zero.
	BaseRoundTime = 2500 * time.Millisecond
	// RoundTimeDecay is how much the budget shrinks per completed round.
	RoundTimeDecay = time.Millisecond
	// MinRoundTime is the floor the budget never shrinks below.
	MinRoundTime = 500 * time.Millisecond
	// FuzzTolerance absorbs tick-delivery jitter before a round is
	// considered expired.
	FuzzTolerance = 500 * time.Millisecond
	// TickInterval is how often the tick source should deliver TimerTick
	// events while a game is running.
	TickInterval = 50 * time.Millisecond
)

// State is the complete game model. It is a value: Transition returns a
// new State rather than mutating the old one.
type State struct {
	Screen         Screen
	Rounds         int
	GameStart      time.Time
	GameEnd        time.Time
	TimerStart     time.Time
	TimerLatest    time.Time
	CurrentInteger int
	KeyboardHint   bool
}

// NewState returns the initial model: home screen, zero rounds, all
// timestamps unset.
func NewState() State {
	return State{
		Screen:         ScreenHome,
		CurrentInteger: 1,
	}
}

// TimeLimit returns the countdown budget for a round, given how many
// rounds have been completed. The budget shrinks by RoundTimeDecay per
// round but never drops below MinRoundTime.
func TimeLimit(rounds int) time.Duration {
	limit := BaseRoundTime - time.Duration(rounds)*RoundTimeDecay
	if limit < MinRoundTime {
		return MinRoundTime
	}
	return limit
}

// PercentElapsed reports how much of the current round's budget has been
// consumed, for the countdown display. Returns 0 before the first round's
// timer has started.
func PercentElapsed(s State) float64 {
	if s.TimerStart.IsZero() || s.TimerLatest.Before(s.TimerStart) {
		return 0
	}
	elapsed := s.TimerLatest.Sub(s.TimerStart)
	return 100 * float64(elapsed) / float64(TimeLimit(s.Rounds))
}
