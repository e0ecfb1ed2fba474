package game

import "time"

// Event is the closed set of inputs the state machine folds over. External
// intents (navigation, answers, key presses) and resolved requests (clock
// readings, random integers) arrive through the same funnel so the driver
// can process everything strictly in order.
type Event interface {
	isEvent()
}

// NavigateHome switches to the home screen.
type NavigateHome struct{}

// NavigateAbout switches to the about screen.
type NavigateAbout struct{}

// EnterGame starts a fresh game from the home or game-over screen.
type EnterGame struct{}

// GameStarted resolves the clock request issued by EnterGame.
type GameStarted struct{ Now time.Time }

// Answer is the player's judgment on the current integer.
type Answer struct{ IsPrime bool }

// TimerTick is a periodic reading from the tick source while a game runs.
type TimerTick struct{ Now time.Time }

// RoundStarted resolves the random-integer request that opens a round.
type RoundStarted struct{ N int }

// TimerStarted resolves the clock request that opens a round's countdown.
type TimerStarted struct{ Now time.Time }

// GameEnded resolves the clock request issued when the game is lost.
type GameEnded struct{ Now time.Time }

// KeyPressed is a raw keyboard shortcut from the input collaborator.
type KeyPressed struct{ Key string }

func (NavigateHome) isEvent()  {}
func (NavigateAbout) isEvent() {}
func (EnterGame) isEvent()     {}
func (GameStarted) isEvent()   {}
func (Answer) isEvent()        {}
func (TimerTick) isEvent()     {}
func (RoundStarted) isEvent()  {}
func (TimerStarted) isEvent()  {}
func (GameEnded) isEvent()     {}
func (KeyPressed) isEvent()    {}

// Tag correlates a request with the event that resolves it.
type Tag int

const (
	TagGameStarted Tag = iota
	TagRoundStarted
	TagTimerStarted
	TagGameEnded
)

// Request is an effect the controller asks its driver to perform. The
// result comes back as the event named by the tag; the controller never
// blocks waiting for it.
type Request interface {
	isRequest()
}

// RequestCurrentTime asks the driver for the current wall-clock time.
type RequestCurrentTime struct{ Tag Tag }

// RequestRandomInt asks the driver for a uniform random integer in
// [Min, Max] inclusive.
type RequestRandomInt struct {
	Min, Max int
	Tag      Tag
}

func (RequestCurrentTime) isRequest() {}
func (RequestRandomInt) isRequest()   {}
