// resolve.go
package game

import (
	"github.com/xtding233/pachislo-backend/internal/pachislo"
	"github.com/xtding233/pachislo-backend/internal/slot"
)

// Overrides carries per-request tweaks (query parameters) applied on top of
// the merged profile, e.g. a custom bankroll for one session.
type Overrides struct {
	InitBalls *int
	NormalWin *float64
	RushWin   *float64
}

// Resolver turns a machine name plus overrides into validated engine and
// slot configs.
type Resolver interface {
	Resolve(machine string, o Overrides) (pachislo.Config, slot.Config, error)
}

type resolver struct {
	loader *Loader
}

func NewResolver(loader *Loader) Resolver {
	return &resolver{loader: loader}
}

func (r *resolver) Resolve(machine string, o Overrides) (pachislo.Config, slot.Config, error) {
	raw, err := r.loader.LoadMerged(machine)
	if err != nil {
		return pachislo.Config{}, slot.Config{}, err
	}
	raw = applyOverrides(raw, o)
	if err := ValidateRaw(raw); err != nil {
		return pachislo.Config{}, slot.Config{}, err
	}
	return normalize(raw)
}

func applyOverrides(raw RawConfig, o Overrides) RawConfig {
	if o.InitBalls != nil && raw.Balls != nil {
		b := *raw.Balls
		b.Init = o.InitBalls
		raw.Balls = &b
	}
	if raw.Probability != nil {
		if o.NormalWin != nil && raw.Probability.Normal != nil {
			p := *raw.Probability.Normal
			p.Win = o.NormalWin
			n := *raw.Probability
			n.Normal = &p
			raw.Probability = &n
		}
		if o.RushWin != nil && raw.Probability.Rush != nil {
			p := *raw.Probability.Rush
			p.Win = o.RushWin
			n := *raw.Probability
			n.Rush = &p
			raw.Probability = &n
		}
	}
	return raw
}

// normalize converts a validated RawConfig into the core config types.
func normalize(raw RawConfig) (pachislo.Config, slot.Config, error) {
	cfg := pachislo.Config{
		Balls: pachislo.BallsConfig{
			InitBalls:        *raw.Balls.Init,
			IncrementalBalls: intOr(raw.Balls.PerWin, 0),
			IncrementalRush:  intOr(raw.Balls.PerRushWin, 0),
		},
		Probability: pachislo.Probability{
			Normal:         toSlotProb(raw.Probability.Normal),
			Rush:           toSlotProb(raw.Probability.Rush),
			RushContinue:   toContinueProb(raw.Probability.RushContinue),
			RushContinueFn: compileCurve(raw.Probability.RushContinue.Curve),
		},
	}

	slotCfg := slot.DefaultConfig()
	if raw.Slot != nil {
		if raw.Slot.Reels != nil {
			slotCfg.Reels = *raw.Slot.Reels
		}
		if raw.Slot.Symbols != nil {
			slotCfg.SymbolCount = *raw.Slot.Symbols
		}
		if len(raw.Slot.Weights) > 0 {
			slotCfg.Weights = append([]int(nil), raw.Slot.Weights...)
		}
	}

	if err := cfg.Validate(); err != nil {
		return pachislo.Config{}, slot.Config{}, err
	}
	return cfg, slotCfg, nil
}

func toSlotProb(p *SlotProbCfg) pachislo.SlotProbability {
	return pachislo.SlotProbability{Win: *p.Win, FakeWin: *p.FakeWin, FakeLose: *p.FakeLose}
}

func toContinueProb(p *RushContinueCfg) pachislo.SlotProbability {
	return pachislo.SlotProbability{Win: *p.Win, FakeWin: *p.FakeWin, FakeLose: *p.FakeLose}
}

// compileCurve maps the declarative curve config onto a core strategy.
func compileCurve(c *CurveCfg) pachislo.ContinueFunc {
	switch c.Mode {
	case "linear_decay":
		return pachislo.LinearDecayCurve(*c.Start, *c.Rate, *c.Floor)
	case "harmonic":
		return pachislo.HarmonicCurve(*c.Start, *c.Rate)
	default:
		return pachislo.ConstantCurve(*c.Value)
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
