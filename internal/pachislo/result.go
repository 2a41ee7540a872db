package pachislo

import "fmt"

// LotteryResult is the outcome of a single lottery draw. The fake variants
// only pick the animation category; ball accounting keys off IsWin alone.
type LotteryResult int

const (
	// Standard winning result
	ResultWin LotteryResult = iota
	// A win that first plays out like a loss (surprise reveal)
	ResultFakeWin
	// Standard losing result
	ResultLose
	// A loss that first plays out like a win (near miss)
	ResultFakeLose
)

func (r LotteryResult) IsWin() bool {
	return r == ResultWin || r == ResultFakeWin
}

func (r LotteryResult) String() string {
	switch r {
	case ResultWin:
		return "Win"
	case ResultFakeWin:
		return "FakeWin"
	case ResultLose:
		return "Lose"
	case ResultFakeLose:
		return "FakeLose"
	default:
		return fmt.Sprintf("LotteryResult(%d)", int(r))
	}
}

// MarshalJSON keeps the tagged-union wire shape: {"Win":"Default"},
// {"Win":"FakeWin"}, {"Lose":"Default"}, {"Lose":"FakeLose"}.
func (r LotteryResult) MarshalJSON() ([]byte, error) {
	switch r {
	case ResultWin:
		return []byte(`{"Win":"Default"}`), nil
	case ResultFakeWin:
		return []byte(`{"Win":"FakeWin"}`), nil
	case ResultLose:
		return []byte(`{"Lose":"Default"}`), nil
	case ResultFakeLose:
		return []byte(`{"Lose":"FakeLose"}`), nil
	default:
		return nil, fmt.Errorf("unknown lottery result %d", int(r))
	}
}
