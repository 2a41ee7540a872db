package pachislo

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidProb = errors.New("invalid probability; must be 0..1")
var ErrProbSum = errors.New("win + fake_win + fake_lose must not exceed 1")

// SlotProbability is one outcome distribution. The remainder
// 1 - (Win + FakeWin + FakeLose) is the implicit plain-lose mass.
type SlotProbability struct {
	Win      float64
	FakeWin  float64
	FakeLose float64
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Validate checks every component is in [0,1] and the total stays within 1.
func (p SlotProbability) Validate() error {
	for _, v := range []float64{p.Win, p.FakeWin, p.FakeLose} {
		if err := validateProb(v); err != nil {
			return err
		}
	}
	if p.Win+p.FakeWin+p.FakeLose > 1 {
		return ErrProbSum
	}
	return nil
}

// ContinueFunc maps the consecutive rush-win counter n (n >= 0) to the
// probability of the rush surviving the next lottery. Implementations are
// expected to stay in [0,1]; the engine clamps the output before use so an
// externally supplied function cannot break the partition.
type ContinueFunc func(n int) float64

// ConstantCurve continues with the same probability at every depth.
func ConstantCurve(v float64) ContinueFunc {
	return func(int) float64 { return v }
}

// LinearDecayCurve starts at start and loses rate per consecutive win,
// never dropping below floor.
func LinearDecayCurve(start, rate, floor float64) ContinueFunc {
	return func(n int) float64 {
		p := start - rate*float64(n)
		if p < floor {
			p = floor
		}
		return p
	}
}

// HarmonicCurve decays as start / (1 + rate*n). Slower than linear decay,
// keeps long rushes possible without ever reaching zero.
func HarmonicCurve(start, rate float64) ContinueFunc {
	return func(n int) float64 {
		return start / (1 + rate*float64(n))
	}
}

func clamp01(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// BallsConfig is the immutable ball economy of one machine.
type BallsConfig struct {
	InitBalls        int // seeds a new Normal session
	IncrementalBalls int // granted per Normal win
	IncrementalRush  int // granted per Rush win, and the Rush seed
}

func (b BallsConfig) Validate() error {
	if b.InitBalls <= 0 {
		return errors.New("init_balls must be > 0")
	}
	if b.IncrementalBalls < 0 || b.IncrementalRush < 0 {
		return errors.New("incremental ball grants must be >= 0")
	}
	return nil
}

// Probability bundles the three fixed distributions plus the rush
// continuation strategy.
type Probability struct {
	Normal       SlotProbability
	Rush         SlotProbability
	RushContinue SlotProbability
	// RushContinueFn replaces RushContinue.Win once n > 0.
	RushContinueFn ContinueFunc
}

func (p Probability) Validate() error {
	if err := p.Normal.Validate(); err != nil {
		return fmt.Errorf("normal: %w", err)
	}
	if err := p.Rush.Validate(); err != nil {
		return fmt.Errorf("rush: %w", err)
	}
	if err := p.RushContinue.Validate(); err != nil {
		return fmt.Errorf("rush_continue: %w", err)
	}
	if p.RushContinueFn == nil {
		return errors.New("rush_continue_fn is required")
	}
	return nil
}

// Config is validated once at engine construction and read-only after.
type Config struct {
	Balls       BallsConfig
	Probability Probability
}

func (c Config) Validate() error {
	if err := c.Balls.Validate(); err != nil {
		return fmt.Errorf("balls: %w", err)
	}
	if err := c.Probability.Validate(); err != nil {
		return fmt.Errorf("probability: %w", err)
	}
	return nil
}
