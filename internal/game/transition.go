package game

// Keyboard shortcuts recognized during a game.
const (
	KeyAnswerPrime    = "s"
	KeyAnswerNotPrime = "d"
)

// Transition folds one event into the state and returns the next state
// plus any requests the driver must resolve. It is pure and total: every
// event has a defined outcome from every state, and unexpected input
// degrades to a no-op rather than an error.
func Transition(s State, ev Event) (State, []Request) {
	switch e := ev.(type) {
	case NavigateHome:
		s.Screen = ScreenHome
		return s, nil

	case NavigateAbout:
		s.Screen = ScreenAbout
		return s, nil

	case EnterGame:
		s.Screen = ScreenGame
		s.Rounds = 0
		return s, []Request{RequestCurrentTime{Tag: TagGameStarted}}

	case GameStarted:
		s.GameStart = e.Now
		return s, newRoundRequests(s.Rounds)

	case Answer:
		return answer(s, e.IsPrime)

	case TimerTick:
		s.TimerLatest = e.Now
		if e.Now.Sub(s.TimerStart) > TimeLimit(s.Rounds)+FuzzTolerance {
			return gameOver(s)
		}
		return s, nil

	case RoundStarted:
		s.CurrentInteger = e.N
		return s, nil

	case TimerStarted:
		s.TimerStart = e.Now
		s.TimerLatest = e.Now
		return s, nil

	case GameEnded:
		s.GameEnd = e.Now
		return s, nil

	case KeyPressed:
		switch e.Key {
		case KeyAnswerPrime:
			return answer(s, true)
		case KeyAnswerNotPrime:
			return answer(s, false)
		default:
			s.KeyboardHint = true
			return s, nil
		}

	default:
		return s, nil
	}
}

// answer evaluates the player's judgment. A correct answer completes the
// round and opens the next one with a range one wider; a wrong answer ends
// the game exactly like a timer expiry.
func answer(s State, guess bool) (State, []Request) {
	if guess != IsPrime(s.CurrentInteger) {
		return gameOver(s)
	}
	s.Rounds++
	return s, newRoundRequests(s.Rounds)
}

// gameOver moves to the game-over screen and asks the driver to stamp the
// end time.
func gameOver(s State) (State, []Request) {
	s.Screen = ScreenGameOver
	return s, []Request{RequestCurrentTime{Tag: TagGameEnded}}
}

// newRoundRequests opens a round: draw the next integer from [1, rounds+1]
// and restart the countdown.
func newRoundRequests(rounds int) []Request {
	return []Request{
		RequestRandomInt{Min: 1, Max: rounds + 1, Tag: TagRoundStarted},
		RequestCurrentTime{Tag: TagTimerStarted},
	}
}
