package session

import (
	"errors"
	"testing"

	"github.com/xtding233/pachislo-backend/internal/game"
	"github.com/xtding233/pachislo-backend/internal/pachislo"
	"github.com/xtding233/pachislo-backend/internal/slot"
)

// stubResolver hands out a fixed profile, optionally tweaked by overrides.
type stubResolver struct {
	err error
}

func (s *stubResolver) Resolve(machine string, o game.Overrides) (pachislo.Config, slot.Config, error) {
	if s.err != nil {
		return pachislo.Config{}, slot.Config{}, s.err
	}
	cfg := pachislo.Config{
		Balls: pachislo.BallsConfig{InitBalls: 100, IncrementalBalls: 15, IncrementalRush: 50},
		Probability: pachislo.Probability{
			Normal:         pachislo.SlotProbability{Win: 0.1, FakeWin: 0.05, FakeLose: 0.02},
			Rush:           pachislo.SlotProbability{Win: 0.8, FakeWin: 0.1, FakeLose: 0.05},
			RushContinue:   pachislo.SlotProbability{Win: 0.7, FakeWin: 0.1, FakeLose: 0.05},
			RushContinueFn: pachislo.ConstantCurve(0.5),
		},
	}
	if o.InitBalls != nil {
		cfg.Balls.InitBalls = *o.InitBalls
	}
	if o.NormalWin != nil {
		cfg.Probability.Normal.Win = *o.NormalWin
	}
	return cfg, slot.DefaultConfig(), nil
}

func seeded(v uint64) *uint64 { return &v }

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&stubResolver{}, nil)
}

func TestManagerCreateAndGet(t *testing.T) {
	m := newTestManager(t)
	code, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q, want 6 chars", code)
	}
	if sess.State() != pachislo.Uninitialized() {
		t.Fatalf("fresh session state = %v", sess.State())
	}

	got, err := m.Get(code)
	if err != nil || got != sess {
		t.Fatalf("Get(%q) = %v, %v", code, got, err)
	}
	if _, err := m.Get("NOPE42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown code: got %v, want ErrNotFound", err)
	}
}

func TestManagerCreatePropagatesResolveError(t *testing.T) {
	m := NewManager(&stubResolver{err: errors.New("boom")}, nil)
	if _, _, err := m.Create(CreateParams{}); err == nil {
		t.Fatalf("resolver failure must propagate")
	}
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(t)
	code, _, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Remove(code); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removed session still reachable")
	}
	if err := m.Remove(code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double remove: got %v, want ErrNotFound", err)
	}
}

func TestStepHappyPath(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	res := sess.Step([]string{"StartGame", "LaunchBall"})
	if res.Flow != "Continue" {
		t.Fatalf("flow = %q", res.Flow)
	}
	if len(res.Issues) != 0 {
		t.Fatalf("issues = %v", res.Issues)
	}
	if res.State != pachislo.Normal(99) {
		t.Fatalf("state = %v, want Normal{99}", res.State)
	}
	// StartGame and LaunchBall each moved state
	var transitions int
	for _, ev := range res.Events {
		if ev.Type == EventTransition {
			transitions++
		}
	}
	if transitions != 2 {
		t.Fatalf("want 2 transition events, got %d (%v)", transitions, res.Events)
	}
}

func TestStepReportsBadTokensAndContinues(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	res := sess.Step([]string{"StartGame", "Teleport", "LaunchBall"})
	if len(res.Issues) != 1 {
		t.Fatalf("issues = %v", res.Issues)
	}
	if res.Issues[0].Index != 1 || res.Issues[0].Token != "Teleport" {
		t.Fatalf("issue = %+v", res.Issues[0])
	}
	// the bad token was skipped, the rest of the batch applied
	if res.State != pachislo.Normal(99) {
		t.Fatalf("state = %v, want Normal{99}", res.State)
	}
}

func TestStepReportsCommandErrors(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	res := sess.Step([]string{"LaunchBall"})
	if len(res.Issues) != 1 || res.Issues[0].Error == "" {
		t.Fatalf("issues = %v", res.Issues)
	}
	if res.State != pachislo.Uninitialized() {
		t.Fatalf("state moved on rejected command: %v", res.State)
	}
}

func TestStepBreaksAfterFinish(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	res := sess.Step([]string{"StartGame", "Finish"})
	if res.Flow != "Break" {
		t.Fatalf("flow = %q, want Break", res.Flow)
	}
	if !sess.Finished() {
		t.Fatalf("session must be finished")
	}

	var finishes int
	for _, ev := range res.Events {
		if ev.Type == EventFinish {
			finishes++
		}
	}
	if finishes != 1 {
		t.Fatalf("want 1 finish event, got %d", finishes)
	}

	// every later step is rejected but still reports Break
	res = sess.Step([]string{"StartGame"})
	if res.Flow != "Break" || len(res.Issues) != 1 {
		t.Fatalf("post-finish step: %+v", res)
	}
}

func TestStepEventsAreDrainedPerStep(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	first := sess.Step([]string{"StartGame"})
	second := sess.Step([]string{"LaunchBall"})
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("events not scoped per step: %d then %d", len(first.Events), len(second.Events))
	}
	if second.Events[0].Transition == nil || second.Events[0].Transition.After != pachislo.Normal(99) {
		t.Fatalf("second step event = %+v", second.Events[0])
	}
}

func TestLotteryEventsCarryReels(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}
	sess.Step([]string{"StartGame"})

	// enough lotteries that at least one fires regardless of outcome
	res := sess.Step([]string{"CauseLottery"})
	var sawLottery bool
	for _, ev := range res.Events {
		if ev.Type == EventLotteryNormal {
			sawLottery = true
			if ev.Result == nil {
				t.Fatalf("lottery event without result: %+v", ev)
			}
			if len(ev.Reels) != slot.DefaultReels {
				t.Fatalf("reels = %v, want %d symbols", ev.Reels, slot.DefaultReels)
			}
		}
	}
	if !sawLottery {
		t.Fatalf("no lottery event in %v", res.Events)
	}
}

func TestSubscribeReplaysInitialTransition(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	ch := sess.Subscribe()
	defer sess.Unsubscribe(ch)

	ev := <-ch
	if ev.Type != EventTransition || ev.Transition == nil {
		t.Fatalf("first event = %+v", ev)
	}
	if ev.Transition.Before != nil || ev.Transition.After != pachislo.Uninitialized() {
		t.Fatalf("initial transition = %+v", ev.Transition)
	}
}

func TestSubscribeReceivesStepEvents(t *testing.T) {
	m := newTestManager(t)
	_, sess, err := m.Create(CreateParams{Seed: seeded(1)})
	if err != nil {
		t.Fatal(err)
	}

	ch := sess.Subscribe()
	<-ch // initial transition

	sess.Step([]string{"StartGame"})
	ev := <-ch
	if ev.Type != EventTransition || ev.Transition.After != pachislo.Normal(100) {
		t.Fatalf("got %+v, want StartGame transition", ev)
	}

	sess.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Fatalf("unsubscribed channel must be closed")
	}
	// further steps must not panic with the subscriber gone
	sess.Step([]string{"LaunchBall"})
}

func TestOverridesReachEngine(t *testing.T) {
	m := newTestManager(t)
	init := 5
	_, sess, err := m.Create(CreateParams{Seed: seeded(1), Overrides: game.Overrides{InitBalls: &init}})
	if err != nil {
		t.Fatal(err)
	}
	res := sess.Step([]string{"StartGame"})
	if res.State != pachislo.Normal(5) {
		t.Fatalf("state = %v, want Normal{5}", res.State)
	}
}
