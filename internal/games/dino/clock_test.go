package dino

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/dinodao/internal/config"
)

const testSessionID = "0123456789abcdef0123456789abcdef"

func newTestClock() (*Clock, *ManualPump, *Recorder) {
	pump := NewManualPump(0)
	rec := &Recorder{Now: pump.Now}
	return New(pump, rec, config.DefaultRules()), pump, rec
}

// clearObstacle spawns an obstacle at start and ticks just past its window.
// Returns the time of the expiring tick.
func clearObstacle(c *Clock, start Timestamp) Timestamp {
	c.Tick(start)
	s := c.Snapshot()
	end := start + Timestamp(float64(s.Width)*s.Speed) + 1
	c.Tick(end)
	return end
}

func assertKinds(t *testing.T, rec *Recorder, want ...EventKind) {
	t.Helper()
	got := rec.Kinds()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected events %v, got %v", want, got)
	}
}

func TestStartRejectsInvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		width     uint32
		wantErr   error
	}{
		{"empty id", "", 100, ErrInvalidSessionID},
		{"short id", testSessionID[:31], 100, ErrInvalidSessionID},
		{"long id", testSessionID + "x", 100, ErrInvalidSessionID},
		{"narrow width", testSessionID, 99, ErrInvalidWidth},
		{"zero width", testSessionID, 0, ErrInvalidWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, rec := newTestClock()

			// Give the prior session some progress to preserve
			if !c.Start(testSessionID, 100) {
				t.Fatal("Start() with valid arguments failed")
			}
			clearObstacle(c, 0)
			before := c.Snapshot()
			rec.Reset()

			if c.Start(tt.sessionID, tt.width) {
				t.Fatal("Start() should reject invalid arguments")
			}
			if err := c.Validate(tt.sessionID, tt.width); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}

			after := c.Snapshot()
			if after != before {
				t.Errorf("Rejected Start changed state: before %+v, after %+v", before, after)
			}
			assertKinds(t, rec)
		})
	}
}

func TestSessionContractIgnoresRuleOverrides(t *testing.T) {
	rules := config.DefaultRules()
	rules.SessionIDLength = 8
	rules.MinWidth = 1
	rules.InitialSpeed = 9
	rules.ScoreStep = 7

	pump := NewManualPump(0)
	c := New(pump, nil, rules)

	if c.Start(testSessionID[:8], 100) {
		t.Error("Start() accepted an 8-character id")
	}
	if c.Start(testSessionID, 1) {
		t.Error("Start() accepted width 1")
	}
	if !c.Start(testSessionID, 100) {
		t.Fatal("Start() with valid arguments failed")
	}
	if s := c.Snapshot(); s.Speed != 5.0 {
		t.Errorf("Expected speed 5.0, got %v", s.Speed)
	}

	clearObstacle(c, 0)
	if s := c.Snapshot(); s.Score != 10 {
		t.Errorf("Expected score 10, got %d", s.Score)
	}
}

func TestStartInitialState(t *testing.T) {
	c, pump, rec := newTestClock()

	if !c.Start(testSessionID, 100) {
		t.Fatal("Start() failed")
	}

	s := c.Snapshot()
	if !s.Active {
		t.Error("Session should be active after Start")
	}
	if s.SessionID != testSessionID {
		t.Errorf("Expected session id %q, got %q", testSessionID, s.SessionID)
	}
	if s.Score != 0 {
		t.Errorf("Expected score 0, got %d", s.Score)
	}
	if s.Speed != 5.0 {
		t.Errorf("Expected speed 5.0, got %v", s.Speed)
	}
	if s.HasTrigger || s.Jumping {
		t.Error("No obstacle or jump should be pending after Start")
	}
	if !pump.Pending() {
		t.Error("Start should schedule the first frame")
	}
	assertKinds(t, rec)
}

func TestFirstTickSpawnsObstacleOnly(t *testing.T) {
	// Zero is a legitimate timestamp, not "no obstacle"
	for _, t0 := range []Timestamp{0, 1234.5} {
		c, _, rec := newTestClock()
		c.Start(testSessionID, 100)

		c.Tick(t0)

		assertKinds(t, rec, EventTrigger)
		if !rec.Events[0].Present {
			t.Error("First tick should report the obstacle as present")
		}
		s := c.Snapshot()
		if !s.HasTrigger || s.TriggerStartedAt != t0 {
			t.Errorf("Expected obstacle started at %v, got %+v", t0, s)
		}

		// A second tick right after must not respawn
		rec.Reset()
		c.Tick(t0 + 1)
		assertKinds(t, rec)
	}
}

func TestObstacleExpiryScores(t *testing.T) {
	c, _, rec := newTestClock()
	c.Start(testSessionID, 100)

	c.Tick(0)
	rec.Reset()

	// Trigger window is 100 * 5.0 = 500
	c.Tick(500)
	assertKinds(t, rec)

	c.Tick(501)
	assertKinds(t, rec, EventTrigger, EventScoreChange)
	if rec.Events[0].Present {
		t.Error("Expiry should report the obstacle as gone")
	}
	if rec.Events[1].Score != 10 {
		t.Errorf("Expected score 10, got %d", rec.Events[1].Score)
	}

	s := c.Snapshot()
	if s.HasTrigger {
		t.Error("Obstacle should be cleared after expiry")
	}
	if s.Speed != 5.0 {
		t.Errorf("Speed should not change at score 10, got %v", s.Speed)
	}
}

func TestSpeedChangesEveryFiftyPoints(t *testing.T) {
	c, _, rec := newTestClock()
	c.Start(testSessionID, 100)

	now := Timestamp(0)
	for i := 0; i < 4; i++ {
		now = clearObstacle(c, now) + 1
	}
	rec.Reset()

	clearObstacle(c, now)
	assertKinds(t, rec, EventTrigger, EventTrigger, EventScoreChange, EventSpeedChange)

	last := rec.Events[len(rec.Events)-1]
	if last.Speed != 4.5 {
		t.Errorf("Expected speed 4.5 at score 50, got %v", last.Speed)
	}
	if s := c.Snapshot(); s.Score != 50 || s.Speed != 4.5 {
		t.Errorf("Expected score 50 speed 4.5, got score %d speed %v", s.Score, s.Speed)
	}
}

func TestSpeedFloor(t *testing.T) {
	c, _, rec := newTestClock()
	c.Start(testSessionID, 100)

	now := Timestamp(0)
	for i := 0; i < 60; i++ {
		now = clearObstacle(c, now) + 1
	}

	var speedChanges, scoreChanges int
	var lastScore uint32
	lastSpeed := 5.0
	for _, e := range rec.Events {
		switch e.Kind {
		case EventSpeedChange:
			speedChanges++
			if e.Speed >= lastSpeed {
				t.Errorf("Speed must decrease, went from %v to %v", lastSpeed, e.Speed)
			}
			lastSpeed = e.Speed
		case EventScoreChange:
			scoreChanges++
			if e.Score != lastScore+10 {
				t.Errorf("Score must advance by 10, went from %d to %d", lastScore, e.Score)
			}
			lastScore = e.Score
		}
	}

	// 5.0 -> 1.0 in steps of 0.5
	if speedChanges != 8 {
		t.Errorf("Expected 8 speed changes, got %d", speedChanges)
	}
	if scoreChanges != 60 {
		t.Errorf("Expected 60 score changes, got %d", scoreChanges)
	}
	if s := c.Snapshot(); s.Speed != 1.0 || s.Score != 600 {
		t.Errorf("Expected speed 1.0 score 600, got speed %v score %d", s.Speed, s.Score)
	}
}

func TestPunishBandEndsSession(t *testing.T) {
	c, pump, rec := newTestClock()
	c.Start(testSessionID, 200) // Trigger window 1000

	c.Tick(1000)
	c.Tick(1300) // 30%
	rec.Reset()

	c.Tick(1600) // 60%
	assertKinds(t, rec, EventGameEnd)
	if rec.Events[0].SessionID != testSessionID {
		t.Errorf("Expected game end for %q, got %q", testSessionID, rec.Events[0].SessionID)
	}

	s := c.Snapshot()
	if s.Active {
		t.Error("Session should be inactive after game end")
	}
	if s.HasTrigger || s.Jumping {
		t.Errorf("Ended session should hold no obstacle or jump, got %+v", s)
	}

	// Nothing happens until the next Start
	rec.Reset()
	c.Tick(1610)
	c.Tick(5000)
	c.RecordJumpInput()
	pump.Set(9000)
	pump.Step()
	assertKinds(t, rec)
	if s := c.Snapshot(); s.Score != 0 {
		t.Errorf("Score should stay 0 after game end, got %d", s.Score)
	}
}

func TestPunishBandEdges(t *testing.T) {
	tests := []struct {
		name    string
		at      Timestamp // Offset into a 1000ms obstacle window
		wantEnd bool
	}{
		{"before band", 574, false},
		{"band start", 576, true},
		{"band middle", 600, true},
		{"band end", 624, true},
		{"after band", 626, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, rec := newTestClock()
			c.Start(testSessionID, 200)
			c.Tick(0)
			rec.Reset()

			c.Tick(tt.at)

			ended := len(rec.Events) == 1 && rec.Events[0].Kind == EventGameEnd
			if ended != tt.wantEnd {
				t.Errorf("Tick at %v%%: game end = %v, want %v", tt.at/10, ended, tt.wantEnd)
			}
			if c.Snapshot().Active == tt.wantEnd {
				t.Errorf("Active should be %v", !tt.wantEnd)
			}
		})
	}
}

func TestJumpSuppressesPunishBand(t *testing.T) {
	c, pump, rec := newTestClock()
	c.Start(testSessionID, 500) // Jump window 500, trigger window 2500

	c.Tick(0)
	pump.Set(1000)
	c.RecordJumpInput()

	c.Tick(1500) // 60%, jump still within its window
	assertKinds(t, rec, EventTrigger, EventJump)
	if !c.Snapshot().Active {
		t.Error("An active jump should clear the punish band")
	}
}

func TestJumpWindowExpiry(t *testing.T) {
	c, pump, rec := newTestClock()
	c.Start(testSessionID, 100) // Jump window 100

	c.Tick(0)
	pump.Set(10)
	c.RecordJumpInput()
	rec.Reset()

	c.Tick(110) // Exactly the window: still jumping
	assertKinds(t, rec)

	c.Tick(111)
	assertKinds(t, rec, EventJump)
	if rec.Events[0].Present {
		t.Error("Expiry should report the jump as ended")
	}
	if c.Snapshot().Jumping {
		t.Error("Jump should be cleared after its window")
	}
}

func TestJumpAndObstacleExpireInSameTick(t *testing.T) {
	c, pump, rec := newTestClock()
	c.Start(testSessionID, 100)

	c.Tick(0)
	pump.Set(10)
	c.RecordJumpInput()
	rec.Reset()

	c.Tick(501)
	assertKinds(t, rec, EventJump, EventTrigger, EventScoreChange)
}

func TestJumpIgnoredWhileInactive(t *testing.T) {
	c, _, rec := newTestClock()

	c.RecordJumpInput()

	assertKinds(t, rec)
	if c.Snapshot().Jumping {
		t.Error("Jump should not start without a session")
	}
}

func TestJumpDebounce(t *testing.T) {
	c, pump, rec := newTestClock()
	c.Start(testSessionID, 100)

	pump.Set(5)
	c.RecordJumpInput()
	pump.Set(6)
	c.RecordJumpInput()

	assertKinds(t, rec, EventJump)
	if s := c.Snapshot(); s.JumpStartedAt != 5 {
		t.Errorf("Expected jump started at 5, got %v", s.JumpStartedAt)
	}
}

func TestTicksWithoutEventsKeepScoreAndSpeed(t *testing.T) {
	c, _, _ := newTestClock()
	c.Start(testSessionID, 100)

	for _, now := range []Timestamp{0, 50, 100, 200, 250} {
		c.Tick(now)
	}

	s := c.Snapshot()
	if s.Score != 0 || s.Speed != 5.0 {
		t.Errorf("Expected score 0 speed 5.0, got score %d speed %v", s.Score, s.Speed)
	}
	if !s.Active {
		t.Error("Session should still be active")
	}
}

func TestRestartResetsSession(t *testing.T) {
	c, pump, _ := newTestClock()
	c.Start(testSessionID, 100)

	now := Timestamp(0)
	for i := 0; i < 5; i++ {
		now = clearObstacle(c, now) + 1
	}
	c.Tick(now)
	pump.Set(now)
	c.RecordJumpInput()

	other := "ffffffffffffffffffffffffffffffff"
	if !c.Start(other, 300) {
		t.Fatal("Start() failed")
	}

	s := c.Snapshot()
	want := Session{Active: true, SessionID: other, Width: 300, Speed: 5.0}
	if s != want {
		t.Errorf("Expected fresh session %+v, got %+v", want, s)
	}
}

func TestFrameLoop(t *testing.T) {
	c, pump, rec := newTestClock()

	// Inactive ticks keep the loop alive
	c.Tick(0)
	if !pump.Pending() {
		t.Fatal("Tick should always schedule the next frame")
	}
	pump.Step()
	assertKinds(t, rec)

	c.Start(testSessionID, 100)
	pump.Advance(16)
	assertKinds(t, rec, EventTrigger)
	if s := c.Snapshot(); s.TriggerStartedAt != 16 {
		t.Errorf("Frame should tick at pump time 16, got %v", s.TriggerStartedAt)
	}

	// Drive frames until the unjumped obstacle reaches the punish band
	for i := 0; i < 100 && c.Snapshot().Active; i++ {
		pump.Advance(16)
	}
	if c.Snapshot().Active {
		t.Fatal("Session should end when never jumping")
	}
	if !pump.Pending() {
		t.Error("Loop should keep running after game end")
	}
}

func TestProgress(t *testing.T) {
	c, _, _ := newTestClock()
	if p := c.Progress(100); p != 0 {
		t.Errorf("Progress without session should be 0, got %v", p)
	}

	c.Start(testSessionID, 100)
	c.Tick(1000)
	if p := c.Progress(1250); p != 50 {
		t.Errorf("Expected progress 50, got %v", p)
	}
}

func TestNilNotifier(t *testing.T) {
	pump := NewManualPump(0)
	c := New(pump, nil, config.DefaultRules())
	c.Start(testSessionID, 100)
	c.Tick(0)
	c.RecordJumpInput()
	c.Tick(600)

	if s := c.Snapshot(); s.Score != 10 {
		t.Errorf("Expected score 10, got %d", s.Score)
	}
}

func TestNotifiersFanOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	pump := NewManualPump(0)
	c := New(pump, Notifiers{a, b}, config.DefaultRules())

	c.Start(testSessionID, 100)
	c.Tick(0)
	c.Tick(501)

	want := []EventKind{EventTrigger, EventTrigger, EventScoreChange}
	if !reflect.DeepEqual(a.Kinds(), want) || !reflect.DeepEqual(b.Kinds(), want) {
		t.Errorf("Both notifiers should see %v, got %v and %v", want, a.Kinds(), b.Kinds())
	}
}
