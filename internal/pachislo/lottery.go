package pachislo

// Resolve maps a uniform draw r in [0,1) onto the four outcome categories.
// The unit interval is partitioned into contiguous half-open slices in fixed
// order (win, fake_win, fake_lose, remainder lose) so every draw lands in
// exactly one category, with no gaps or overlaps.
//
// The resolver is stateless; callers inject the randomness.
func Resolve(p SlotProbability, r float64) LotteryResult {
	switch {
	case r < p.Win:
		return ResultWin
	case r < p.Win+p.FakeWin:
		return ResultFakeWin
	case r < p.Win+p.FakeWin+p.FakeLose:
		return ResultFakeLose
	default:
		return ResultLose
	}
}

// ResolveContinue is the rush-continuation variant: the win slice is
// fn(n) clamped to [0,1], while the fake_win/fake_lose slices are reused
// from the rush_continue distribution.
func ResolveContinue(p SlotProbability, fn ContinueFunc, n int, r float64) LotteryResult {
	p.Win = clamp01(fn(n))
	return Resolve(p, r)
}
