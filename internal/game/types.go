// types.go
package game

// RawConfig is one machine profile as loaded from YAML, before merging and
// normalization. Pointer fields distinguish "unset" from zero so profiles
// can override the default file selectively.
type RawConfig struct {
	Version     string          `yaml:"version"`
	Balls       *BallsCfg       `yaml:"balls,omitempty"`
	Probability *ProbabilityCfg `yaml:"probability,omitempty"`
	Slot        *SlotCfg        `yaml:"slot,omitempty"`
	Notes       string          `yaml:"notes,omitempty"`
}

type BallsCfg struct {
	Init       *int `yaml:"init"`
	PerWin     *int `yaml:"per_win"`
	PerRushWin *int `yaml:"per_rush_win"`
}

type SlotProbCfg struct {
	Win      *float64 `yaml:"win"`
	FakeWin  *float64 `yaml:"fake_win"`
	FakeLose *float64 `yaml:"fake_lose"`
}

type ProbabilityCfg struct {
	Normal       *SlotProbCfg     `yaml:"normal,omitempty"`
	Rush         *SlotProbCfg     `yaml:"rush,omitempty"`
	RushContinue *RushContinueCfg `yaml:"rush_continue,omitempty"`
}

// RushContinueCfg carries the rush_continue distribution plus the
// continuation curve that replaces its win share at depth n > 0.
type RushContinueCfg struct {
	Win      *float64  `yaml:"win"`
	FakeWin  *float64  `yaml:"fake_win"`
	FakeLose *float64  `yaml:"fake_lose"`
	Curve    *CurveCfg `yaml:"curve,omitempty"`
}

type CurveCfg struct {
	Mode  string   `yaml:"mode"` // "constant" | "linear_decay" | "harmonic"
	Value *float64 `yaml:"value,omitempty"` // constant
	Start *float64 `yaml:"start,omitempty"` // linear_decay, harmonic
	Rate  *float64 `yaml:"rate,omitempty"`  // linear_decay, harmonic
	Floor *float64 `yaml:"floor,omitempty"` // linear_decay
}

type SlotCfg struct {
	Reels   *int  `yaml:"reels"`
	Symbols *int  `yaml:"symbols"`
	Weights []int `yaml:"weights,omitempty"`
}
