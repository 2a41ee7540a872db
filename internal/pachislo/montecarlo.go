package pachislo

import (
	"fmt"
	"math"
	"sort"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Lotteries until the session first enters Rush.
	GoalFirstRush TrialGoal = "first_rush"
	// Consecutive wins of the first Rush (0 if Rush is never reached).
	GoalRushLength TrialGoal = "rush_length"
	// Folded ball count (balls + rush balls) after the launch budget runs out.
	GoalFinalBalls TrialGoal = "final_balls"
)

// SimParams describes one simulation run. Each trial plays a full session
// with the naive policy: launch a ball, cause a lottery, repeat until balls
// or the budget run out.
type SimParams struct {
	Config Config
	// MaxLaunches caps a single trial; trials that never reach the goal
	// within the cap record the cap (first_rush) or zero (rush_length).
	MaxLaunches int
	// Seed makes the whole run reproducible; trial i uses Seed+i.
	Seed uint64
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Raw samples if the caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: cp,
	}
}

// simulateOne plays one session and returns the goal metric.
func simulateOne(p SimParams, goal TrialGoal, seed uint64) (int, error) {
	eng, err := NewEngine(p.Config, NewSeededRNG(seed), NopSink{}, nil)
	if err != nil {
		return 0, err
	}
	if _, err := eng.Apply(CmdStartGame); err != nil {
		return 0, err
	}

	lotteries := 0
	rushLen := 0
	sawRush := false

	for launches := 0; launches < p.MaxLaunches; launches++ {
		if eng.State().Balls == 0 {
			break
		}
		if _, err := eng.Apply(CmdLaunchBall); err != nil {
			return 0, err
		}
		before := eng.State()
		if _, err := eng.Apply(CmdCauseLottery); err != nil {
			return 0, err
		}
		after := eng.State()
		lotteries++

		if before.Mode == ModeNormal && after.Mode == ModeRush {
			if goal == GoalFirstRush {
				return lotteries, nil
			}
			sawRush = true
		}
		if sawRush && rushLen < after.N {
			rushLen = after.N
		}
		if sawRush && after.Mode == ModeNormal && goal == GoalRushLength {
			return rushLen, nil
		}
	}

	switch goal {
	case GoalFirstRush:
		return lotteries, nil
	case GoalRushLength:
		return rushLen, nil
	case GoalFinalBalls:
		s := eng.State()
		return s.Balls + s.RushBalls, nil
	default:
		return 0, fmt.Errorf("unknown trial goal %q", goal)
	}
}

// RunMonteCarlo repeats trials and returns summary stats. goal determines
// what metric is recorded per trial.
func RunMonteCarlo(p SimParams, goal TrialGoal, trials int) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	if p.MaxLaunches <= 0 {
		p.MaxLaunches = 10000
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := simulateOne(p, goal, p.Seed+uint64(i))
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
