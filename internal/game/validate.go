package game

import (
	"fmt"
	"strings"
)

// ValidateRaw checks semantic constraints of a merged RawConfig. All
// violations are collected so one pass reports everything wrong with a
// profile.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Balls == nil {
		errs = append(errs, "balls section is required")
	} else {
		if cfg.Balls.Init == nil || *cfg.Balls.Init <= 0 {
			errs = append(errs, "balls.init must be >= 1")
		}
		if cfg.Balls.PerWin != nil && *cfg.Balls.PerWin < 0 {
			errs = append(errs, "balls.per_win must be >= 0")
		}
		if cfg.Balls.PerRushWin != nil && *cfg.Balls.PerRushWin < 0 {
			errs = append(errs, "balls.per_rush_win must be >= 0")
		}
	}

	if cfg.Probability == nil {
		errs = append(errs, "probability section is required")
	} else {
		errs = append(errs, validateSlotProb("probability.normal", cfg.Probability.Normal)...)
		errs = append(errs, validateSlotProb("probability.rush", cfg.Probability.Rush)...)
		rc := cfg.Probability.RushContinue
		if rc == nil {
			errs = append(errs, "probability.rush_continue is required")
		} else {
			errs = append(errs, validateSlotProb("probability.rush_continue", &SlotProbCfg{
				Win: rc.Win, FakeWin: rc.FakeWin, FakeLose: rc.FakeLose,
			})...)
			errs = append(errs, validateCurve(rc.Curve)...)
		}
	}

	if cfg.Slot != nil {
		if cfg.Slot.Reels != nil && *cfg.Slot.Reels < 1 {
			errs = append(errs, "slot.reels must be >= 1")
		}
		if cfg.Slot.Symbols != nil && *cfg.Slot.Symbols < 2 {
			errs = append(errs, "slot.symbols must be >= 2")
		}
		if len(cfg.Slot.Weights) > 0 {
			if cfg.Slot.Symbols != nil && len(cfg.Slot.Weights) != *cfg.Slot.Symbols {
				errs = append(errs, "slot.weights length must equal slot.symbols")
			}
			for i, w := range cfg.Slot.Weights {
				if w <= 0 {
					errs = append(errs, fmt.Sprintf("slot.weights[%d] must be > 0", i))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSlotProb(prefix string, p *SlotProbCfg) []string {
	if p == nil {
		return []string{prefix + " is required"}
	}
	var errs []string
	sum := 0.0
	check := func(name string, v *float64) {
		if v == nil {
			errs = append(errs, fmt.Sprintf("%s.%s is required", prefix, name))
			return
		}
		if *v < 0 || *v > 1 {
			errs = append(errs, fmt.Sprintf("%s.%s must be in [0,1]", prefix, name))
			return
		}
		sum += *v
	}
	check("win", p.Win)
	check("fake_win", p.FakeWin)
	check("fake_lose", p.FakeLose)
	if len(errs) == 0 && sum > 1 {
		errs = append(errs, fmt.Sprintf("%s: win + fake_win + fake_lose must not exceed 1", prefix))
	}
	return errs
}

func validateCurve(c *CurveCfg) []string {
	if c == nil {
		return []string{"probability.rush_continue.curve is required"}
	}
	var errs []string
	inUnit := func(name string, v *float64, required bool) {
		if v == nil {
			if required {
				errs = append(errs, fmt.Sprintf("curve.%s is required for mode=%s", name, c.Mode))
			}
			return
		}
		if *v < 0 || *v > 1 {
			errs = append(errs, fmt.Sprintf("curve.%s must be in [0,1]", name))
		}
	}
	switch c.Mode {
	case "constant":
		inUnit("value", c.Value, true)
	case "linear_decay":
		inUnit("start", c.Start, true)
		inUnit("floor", c.Floor, true)
		if c.Rate == nil {
			errs = append(errs, "curve.rate is required for mode=linear_decay")
		} else if *c.Rate < 0 {
			errs = append(errs, "curve.rate must be >= 0")
		}
		if c.Start != nil && c.Floor != nil && *c.Floor > *c.Start {
			errs = append(errs, "curve.floor must not exceed curve.start")
		}
	case "harmonic":
		inUnit("start", c.Start, true)
		if c.Rate == nil {
			errs = append(errs, "curve.rate is required for mode=harmonic")
		} else if *c.Rate < 0 {
			errs = append(errs, "curve.rate must be >= 0")
		}
	default:
		errs = append(errs, "curve.mode must be one of: constant, linear_decay, harmonic")
	}
	return errs
}
