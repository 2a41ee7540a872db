package pachislo

// EventSink receives everything the engine emits. One state change produces
// exactly one Transition call; lottery commands additionally hit their
// mode-specific channel with the result and the reel symbols selected for
// display. Implementations must not call back into the engine.
type EventSink interface {
	Transition(t Transition)
	FinishGame(state GameState)
	LotteryNormal(result LotteryResult, reels []int)
	LotteryRush(result LotteryResult, reels []int)
	LotteryRushContinue(result LotteryResult, reels []int)
}

// NopSink discards all events. Useful for Monte Carlo runs and tests that
// only care about state.
type NopSink struct{}

func (NopSink) Transition(Transition)                    {}
func (NopSink) FinishGame(GameState)                     {}
func (NopSink) LotteryNormal(LotteryResult, []int)       {}
func (NopSink) LotteryRush(LotteryResult, []int)         {}
func (NopSink) LotteryRushContinue(LotteryResult, []int) {}

// ReelProducer turns a lottery outcome into displayable reel symbols.
// Symbol selection is presentation-only and never feeds back into ball
// accounting.
type ReelProducer interface {
	Produce(result LotteryResult) []int
}
