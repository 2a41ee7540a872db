package pachislo

import (
	"errors"
	"fmt"
)

var (
	ErrNoSession     = errors.New("no active session")
	ErrSessionActive = errors.New("session already active")
	ErrNoBalls       = errors.New("no balls left to launch")
	ErrSessionEnded  = errors.New("session ended")
)

// ControlFlow tells the driving loop whether to keep stepping.
type ControlFlow int

const (
	Continue ControlFlow = iota
	Break
)

func (f ControlFlow) String() string {
	if f == Break {
		return "Break"
	}
	return "Continue"
}

// CommandError reports one failed command inside a step batch.
type CommandError struct {
	Index   int
	Command Command
	Err     error
}

func (e CommandError) Error() string {
	return fmt.Sprintf("command %d (%s): %v", e.Index, e.Command, e.Err)
}

func (e CommandError) Unwrap() error { return e.Err }

// Engine owns one GameState and one Config for its lifetime. It is
// single-threaded by design: one writer, no concurrent readers during a
// step, no internal locking.
type Engine struct {
	cfg      Config
	rng      RandomSource
	sink     EventSink
	reels    ReelProducer
	state    GameState
	finished bool
}

// NewEngine validates cfg and builds an engine in the Uninitialized state,
// emitting the initial Transition (before: none). A nil rng falls back to
// the crypto-backed default; a nil sink discards events; a nil reels
// producer emits lottery events without symbols.
func NewEngine(cfg Config, rng RandomSource, sink EventSink, reels ReelProducer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	if sink == nil {
		sink = NopSink{}
	}
	e := &Engine{cfg: cfg, rng: rng, sink: sink, reels: reels, state: Uninitialized()}
	e.sink.Transition(Transition{Before: nil, After: e.state})
	return e, nil
}

// State returns the current state snapshot.
func (e *Engine) State() GameState { return e.state }

// Finished reports whether the terminal Finish command has been applied.
func (e *Engine) Finished() bool { return e.finished }

func (e *Engine) transition(next GameState) {
	prev := e.state
	e.state = next
	e.sink.Transition(Transition{Before: &prev, After: next})
}

func (e *Engine) produce(result LotteryResult) []int {
	if e.reels == nil {
		return nil
	}
	return e.reels.Produce(result)
}

// Apply executes a single command against the current state. Invalid
// operations leave the state untouched and are reported as recoverable
// errors; only Finish flips the engine terminal.
func (e *Engine) Apply(cmd Command) (ControlFlow, error) {
	if e.finished {
		return Break, ErrSessionEnded
	}

	switch cmd {
	case CmdStartGame:
		return e.startGame()
	case CmdLaunchBall:
		return e.launchBall()
	case CmdCauseLottery:
		return e.causeLottery()
	case CmdFinishGame:
		return e.finishGame()
	case CmdFinish:
		// Terminal regardless of state: report the session as it stands,
		// then stop accepting commands.
		e.finished = true
		e.sink.FinishGame(e.state)
		return Break, nil
	default:
		return Continue, fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd))
	}
}

func (e *Engine) startGame() (ControlFlow, error) {
	if e.state.Mode != ModeUninitialized {
		return Continue, ErrSessionActive
	}
	e.transition(Normal(e.cfg.Balls.InitBalls))
	return Continue, nil
}

func (e *Engine) launchBall() (ControlFlow, error) {
	switch e.state.Mode {
	case ModeUninitialized:
		return Continue, ErrNoSession
	case ModeNormal:
		if e.state.Balls == 0 {
			return Continue, ErrNoBalls
		}
		e.transition(Normal(e.state.Balls - 1))
	case ModeRush:
		if e.state.Balls == 0 {
			return Continue, ErrNoBalls
		}
		e.transition(Rush(e.state.Balls-1, e.state.RushBalls, e.state.N))
	}
	return Continue, nil
}

func (e *Engine) causeLottery() (ControlFlow, error) {
	switch e.state.Mode {
	case ModeUninitialized:
		return Continue, ErrNoSession

	case ModeNormal:
		result := Resolve(e.cfg.Probability.Normal, e.rng.Float64())
		e.sink.LotteryNormal(result, e.produce(result))
		if result.IsWin() {
			// A Normal win pays out and promotes straight into Rush.
			balls := e.state.Balls + e.cfg.Balls.IncrementalBalls
			e.transition(Rush(balls, e.cfg.Balls.IncrementalRush, 0))
		}

	case ModeRush:
		var result LotteryResult
		if e.state.N > 0 {
			p := e.cfg.Probability
			result = ResolveContinue(p.RushContinue, p.RushContinueFn, e.state.N, e.rng.Float64())
			e.sink.LotteryRushContinue(result, e.produce(result))
		} else {
			result = Resolve(e.cfg.Probability.Rush, e.rng.Float64())
			e.sink.LotteryRush(result, e.produce(result))
		}
		if result.IsWin() {
			e.transition(Rush(e.state.Balls, e.state.RushBalls+e.cfg.Balls.IncrementalRush, e.state.N+1))
		} else {
			// Rush ends: the pre-lottery ball count carries back to Normal,
			// accumulated rush balls are only realized through FinishGame.
			e.transition(Normal(e.state.Balls))
		}
	}
	return Continue, nil
}

func (e *Engine) finishGame() (ControlFlow, error) {
	switch e.state.Mode {
	case ModeUninitialized:
		return Continue, ErrNoSession
	case ModeNormal:
		e.sink.FinishGame(e.state)
	case ModeRush:
		// Cash-out policy: rush balls fold into the regular count.
		e.sink.FinishGame(Normal(e.state.Balls + e.state.RushBalls))
	}
	e.transition(Uninitialized())
	return Continue, nil
}

// Step applies an ordered command batch. Failed commands are surfaced with
// their batch index while mutations committed by earlier commands stand;
// there is no batch-level rollback. The returned flow is Break once the
// engine has reached the terminal state.
func (e *Engine) Step(cmds []Command) (ControlFlow, []CommandError) {
	var errs []CommandError
	for i, cmd := range cmds {
		if _, err := e.Apply(cmd); err != nil {
			errs = append(errs, CommandError{Index: i, Command: cmd, Err: err})
		}
	}
	if e.finished {
		return Break, errs
	}
	return Continue, errs
}
