package game

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// inGameState returns a state mid-game: the given round count and integer,
// countdown started at testEpoch.
func inGameState(rounds, integer int) State {
	s := NewState()
	s.Screen = ScreenGame
	s.Rounds = rounds
	s.GameStart = testEpoch
	s.TimerStart = testEpoch
	s.TimerLatest = testEpoch
	s.CurrentInteger = integer
	return s
}

func TestNavigateEvents(t *testing.T) {
	tests := []struct {
		from Screen
		ev   Event
		want Screen
	}{
		{ScreenHome, NavigateAbout{}, ScreenAbout},
		{ScreenAbout, NavigateHome{}, ScreenHome},
		{ScreenGameOver, NavigateHome{}, ScreenHome},
		{ScreenGame, NavigateAbout{}, ScreenAbout},
	}
	for _, tt := range tests {
		s := NewState()
		s.Screen = tt.from
		next, reqs := Transition(s, tt.ev)
		if next.Screen != tt.want {
			t.Errorf("from %v via %T: screen = %v, want %v", tt.from, tt.ev, next.Screen, tt.want)
		}
		if len(reqs) != 0 {
			t.Errorf("navigation emitted %d requests, want 0", len(reqs))
		}
	}
}

func TestEnterGameResetsRounds(t *testing.T) {
	s := NewState()
	s.Screen = ScreenGameOver
	s.Rounds = 7

	next, reqs := Transition(s, EnterGame{})
	if next.Screen != ScreenGame {
		t.Errorf("screen = %v, want %v", next.Screen, ScreenGame)
	}
	if next.Rounds != 0 {
		t.Errorf("rounds = %d, want 0", next.Rounds)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	ct, ok := reqs[0].(RequestCurrentTime)
	if !ok || ct.Tag != TagGameStarted {
		t.Errorf("expected RequestCurrentTime(TagGameStarted), got %#v", reqs[0])
	}
}

func TestGameStartedOpensFirstRound(t *testing.T) {
	s := NewState()
	s.Screen = ScreenGame

	next, reqs := Transition(s, GameStarted{Now: testEpoch})
	if !next.GameStart.Equal(testEpoch) {
		t.Errorf("gameStart = %v, want %v", next.GameStart, testEpoch)
	}
	assertNewRoundRequests(t, reqs, 1, 1)
}

func TestCorrectAnswerStartsNextRound(t *testing.T) {
	tests := []struct {
		integer int
		guess   bool
	}{
		{1, false},
		{2, true},
		{4, false},
		{17, true},
	}
	for _, tt := range tests {
		s := inGameState(3, tt.integer)
		next, reqs := Transition(s, Answer{IsPrime: tt.guess})
		if next.Screen != ScreenGame {
			t.Errorf("integer %d: screen = %v, want %v", tt.integer, next.Screen, ScreenGame)
		}
		if next.Rounds != 4 {
			t.Errorf("integer %d: rounds = %d, want 4", tt.integer, next.Rounds)
		}
		assertNewRoundRequests(t, reqs, 1, 5)
	}
}

func TestWrongAnswerEndsGame(t *testing.T) {
	s := inGameState(3, 4)

	next, reqs := Transition(s, Answer{IsPrime: true})
	if next.Screen != ScreenGameOver {
		t.Errorf("screen = %v, want %v", next.Screen, ScreenGameOver)
	}
	if next.Rounds != 3 {
		t.Errorf("rounds = %d, want unchanged 3", next.Rounds)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	ct, ok := reqs[0].(RequestCurrentTime)
	if !ok || ct.Tag != TagGameEnded {
		t.Errorf("expected RequestCurrentTime(TagGameEnded), got %#v", reqs[0])
	}
}

func TestTimerTickWithinBudget(t *testing.T) {
	s := inGameState(0, 1)
	now := testEpoch.Add(TimeLimit(0) + FuzzTolerance)

	next, reqs := Transition(s, TimerTick{Now: now})
	if next.Screen != ScreenGame {
		t.Errorf("screen = %v, want %v (tick exactly at budget+fuzz)", next.Screen, ScreenGame)
	}
	if !next.TimerLatest.Equal(now) {
		t.Errorf("timerLatest = %v, want %v", next.TimerLatest, now)
	}
	if len(reqs) != 0 {
		t.Errorf("in-budget tick emitted %d requests, want 0", len(reqs))
	}
}

func TestTimerTickExpiry(t *testing.T) {
	s := inGameState(0, 1)
	now := testEpoch.Add(TimeLimit(0) + FuzzTolerance + time.Millisecond)

	next, reqs := Transition(s, TimerTick{Now: now})
	if next.Screen != ScreenGameOver {
		t.Errorf("screen = %v, want %v", next.Screen, ScreenGameOver)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if ct, ok := reqs[0].(RequestCurrentTime); !ok || ct.Tag != TagGameEnded {
		t.Errorf("expected RequestCurrentTime(TagGameEnded), got %#v", reqs[0])
	}
}

func TestRoundAndTimerResponses(t *testing.T) {
	s := inGameState(0, 1)

	next, _ := Transition(s, RoundStarted{N: 2})
	if next.CurrentInteger != 2 {
		t.Errorf("currentInteger = %d, want 2", next.CurrentInteger)
	}

	later := testEpoch.Add(time.Second)
	next, _ = Transition(next, TimerStarted{Now: later})
	if !next.TimerStart.Equal(later) || !next.TimerLatest.Equal(later) {
		t.Errorf("timer not reset: start=%v latest=%v, want both %v", next.TimerStart, next.TimerLatest, later)
	}

	next, _ = Transition(next, GameEnded{Now: later})
	if !next.GameEnd.Equal(later) {
		t.Errorf("gameEnd = %v, want %v", next.GameEnd, later)
	}
}

func TestKeyPressedMapping(t *testing.T) {
	// "s" and "d" must behave exactly like the corresponding Answer.
	s := inGameState(0, 1) // 1 is not prime

	viaKey, _ := Transition(s, KeyPressed{Key: "d"})
	viaAnswer, _ := Transition(s, Answer{IsPrime: false})
	if viaKey != viaAnswer {
		t.Errorf("KeyPressed(d) state %+v != Answer(false) state %+v", viaKey, viaAnswer)
	}

	s2 := inGameState(0, 2) // 2 is prime
	viaKey, _ = Transition(s2, KeyPressed{Key: "s"})
	viaAnswer, _ = Transition(s2, Answer{IsPrime: true})
	if viaKey != viaAnswer {
		t.Errorf("KeyPressed(s) state %+v != Answer(true) state %+v", viaKey, viaAnswer)
	}
}

func TestKeyPressedUnknownSetsHint(t *testing.T) {
	s := inGameState(2, 3)
	next, reqs := Transition(s, KeyPressed{Key: "q"})
	if !next.KeyboardHint {
		t.Error("keyboardHint not set for unknown key")
	}
	next.KeyboardHint = false
	if next != s {
		t.Errorf("unknown key changed state beyond hint: %+v vs %+v", next, s)
	}
	if len(reqs) != 0 {
		t.Errorf("unknown key emitted %d requests, want 0", len(reqs))
	}
}

func TestTimeLimit(t *testing.T) {
	tests := []struct {
		rounds int
		want   time.Duration
	}{
		{0, 2500 * time.Millisecond},
		{1, 2499 * time.Millisecond},
		{100, 2400 * time.Millisecond},
		{2000, 500 * time.Millisecond},
		{2400, 500 * time.Millisecond},
		{10000, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := TimeLimit(tt.rounds); got != tt.want {
			t.Errorf("TimeLimit(%d) = %v, want %v", tt.rounds, got, tt.want)
		}
	}
}

func TestPercentElapsed(t *testing.T) {
	if got := PercentElapsed(NewState()); got != 0 {
		t.Errorf("PercentElapsed on fresh state = %v, want 0", got)
	}

	s := inGameState(0, 1)
	s.TimerLatest = s.TimerStart.Add(1250 * time.Millisecond)
	if got := PercentElapsed(s); got != 50 {
		t.Errorf("PercentElapsed = %v, want 50", got)
	}
}

// TestFirstRoundFlow walks the full async chain for the opening round:
// EnterGame, the clock and random responses, then a correct answer.
func TestFirstRoundFlow(t *testing.T) {
	s := NewState()

	s, reqs := Transition(s, EnterGame{})
	s = resolve(t, s, reqs, testEpoch, 1)

	if s.CurrentInteger != 1 {
		t.Fatalf("first round integer = %d, want 1", s.CurrentInteger)
	}

	// 1 is not prime.
	s, reqs = Transition(s, Answer{IsPrime: false})
	if s.Rounds != 1 {
		t.Errorf("rounds = %d, want 1", s.Rounds)
	}
	assertNewRoundRequests(t, reqs, 1, 2)

	s = resolve(t, s, reqs, testEpoch.Add(time.Second), 2)
	if s.CurrentInteger != 2 || !s.TimerStart.Equal(testEpoch.Add(time.Second)) {
		t.Errorf("second round not set up: %+v", s)
	}
}

// resolve plays the driver: answers each request with the given clock
// reading or random draw and folds the response back in.
func resolve(t *testing.T, s State, reqs []Request, now time.Time, draw int) State {
	t.Helper()
	for len(reqs) > 0 {
		var next []Request
		for _, req := range reqs {
			var resp Event
			switch r := req.(type) {
			case RequestCurrentTime:
				switch r.Tag {
				case TagGameStarted:
					resp = GameStarted{Now: now}
				case TagTimerStarted:
					resp = TimerStarted{Now: now}
				case TagGameEnded:
					resp = GameEnded{Now: now}
				default:
					t.Fatalf("unexpected time tag %v", r.Tag)
				}
			case RequestRandomInt:
				if draw < r.Min || draw > r.Max {
					t.Fatalf("draw %d outside requested range [%d, %d]", draw, r.Min, r.Max)
				}
				resp = RoundStarted{N: draw}
			}
			var emitted []Request
			s, emitted = Transition(s, resp)
			next = append(next, emitted...)
		}
		reqs = next
	}
	return s
}

func assertNewRoundRequests(t *testing.T, reqs []Request, wantMin, wantMax int) {
	t.Helper()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 new-round requests, got %d", len(reqs))
	}
	ri, ok := reqs[0].(RequestRandomInt)
	if !ok {
		t.Fatalf("first request is %#v, want RequestRandomInt", reqs[0])
	}
	if ri.Min != wantMin || ri.Max != wantMax || ri.Tag != TagRoundStarted {
		t.Errorf("random range [%d, %d] tag %v, want [%d, %d] tag %v",
			ri.Min, ri.Max, ri.Tag, wantMin, wantMax, TagRoundStarted)
	}
	ct, ok := reqs[1].(RequestCurrentTime)
	if !ok || ct.Tag != TagTimerStarted {
		t.Errorf("second request is %#v, want RequestCurrentTime(TagTimerStarted)", reqs[1])
	}
}
