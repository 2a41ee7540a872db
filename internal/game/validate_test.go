package game

import (
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func validRaw() RawConfig {
	return RawConfig{
		Balls: &BallsCfg{Init: ip(100), PerWin: ip(15), PerRushWin: ip(50)},
		Probability: &ProbabilityCfg{
			Normal: &SlotProbCfg{Win: fp(0.1), FakeWin: fp(0.05), FakeLose: fp(0.02)},
			Rush:   &SlotProbCfg{Win: fp(0.8), FakeWin: fp(0.1), FakeLose: fp(0.05)},
			RushContinue: &RushContinueCfg{
				Win: fp(0.7), FakeWin: fp(0.1), FakeLose: fp(0.05),
				Curve: &CurveCfg{Mode: "constant", Value: fp(0.5)},
			},
		},
		Slot: &SlotCfg{Reels: ip(3), Symbols: ip(7)},
	}
}

func TestValidateRawAcceptsComplete(t *testing.T) {
	if err := ValidateRaw(validRaw()); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestValidateRawCollectsAllViolations(t *testing.T) {
	cfg := validRaw()
	cfg.Balls.Init = ip(0)
	cfg.Probability.Normal.Win = fp(1.5)
	cfg.Probability.Rush = nil
	cfg.Slot.Reels = ip(0)

	err := ValidateRaw(cfg)
	if err == nil {
		t.Fatalf("broken profile accepted")
	}
	msg := err.Error()
	for _, want := range []string{
		"balls.init must be >= 1",
		"probability.normal.win must be in [0,1]",
		"probability.rush is required",
		"slot.reels must be >= 1",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestValidateRawRequiresSections(t *testing.T) {
	err := ValidateRaw(RawConfig{})
	if err == nil {
		t.Fatalf("empty profile accepted")
	}
	for _, want := range []string{"balls section is required", "probability section is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestValidateRawProbabilitySum(t *testing.T) {
	cfg := validRaw()
	cfg.Probability.Normal = &SlotProbCfg{Win: fp(0.6), FakeWin: fp(0.3), FakeLose: fp(0.2)}
	err := ValidateRaw(cfg)
	if err == nil || !strings.Contains(err.Error(), "must not exceed 1") {
		t.Fatalf("sum violation not reported: %v", err)
	}
}

func TestValidateRawCurveModes(t *testing.T) {
	cases := []struct {
		name  string
		curve *CurveCfg
		want  string
	}{
		{"missing curve", nil, "curve is required"},
		{"unknown mode", &CurveCfg{Mode: "exponential"}, "curve.mode must be one of"},
		{"constant without value", &CurveCfg{Mode: "constant"}, "curve.value is required"},
		{
			"linear missing floor",
			&CurveCfg{Mode: "linear_decay", Start: fp(0.8), Rate: fp(0.1)},
			"curve.floor is required",
		},
		{
			"floor above start",
			&CurveCfg{Mode: "linear_decay", Start: fp(0.3), Rate: fp(0.1), Floor: fp(0.5)},
			"curve.floor must not exceed curve.start",
		},
		{
			"harmonic negative rate",
			&CurveCfg{Mode: "harmonic", Start: fp(0.8), Rate: fp(-1)},
			"curve.rate must be >= 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validRaw()
			cfg.Probability.RushContinue.Curve = tc.curve
			err := ValidateRaw(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestValidateRawWeights(t *testing.T) {
	cfg := validRaw()
	cfg.Slot.Weights = []int{1, 2, 3}
	err := ValidateRaw(cfg)
	if err == nil || !strings.Contains(err.Error(), "weights length must equal") {
		t.Fatalf("weight mismatch not reported: %v", err)
	}

	cfg = validRaw()
	cfg.Slot.Weights = []int{1, 1, 1, 1, 1, 0, 1}
	err = ValidateRaw(cfg)
	if err == nil || !strings.Contains(err.Error(), "slot.weights[5] must be > 0") {
		t.Fatalf("zero weight not reported: %v", err)
	}
}
