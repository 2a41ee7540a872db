package session

import "github.com/xtding233/pachislo-backend/internal/pachislo"

// Event is the serializable form of one engine emission, shared by step
// responses and the websocket stream.
type Event struct {
	Type       string                  `json:"type"` // transition | finish | lottery_normal | lottery_rush | lottery_rush_continue
	Transition *pachislo.Transition    `json:"transition,omitempty"`
	State      *pachislo.GameState     `json:"state,omitempty"`
	Result     *pachislo.LotteryResult `json:"result,omitempty"`
	Reels      []int                   `json:"reels,omitempty"`
}

const (
	EventTransition          = "transition"
	EventFinish              = "finish"
	EventLotteryNormal       = "lottery_normal"
	EventLotteryRush         = "lottery_rush"
	EventLotteryRushContinue = "lottery_rush_continue"
)

// recorder implements pachislo.EventSink. It buffers the events of the
// in-flight step and forwards each one to the owning session's subscribers.
// The engine is single-threaded and the session serializes steps, so the
// recorder needs no locking of its own.
type recorder struct {
	events  []Event
	forward func(Event)
}

func (r *recorder) emit(ev Event) {
	r.events = append(r.events, ev)
	if r.forward != nil {
		r.forward(ev)
	}
}

func (r *recorder) drain() []Event {
	evs := r.events
	r.events = nil
	return evs
}

func (r *recorder) Transition(t pachislo.Transition) {
	r.emit(Event{Type: EventTransition, Transition: &t})
}

func (r *recorder) FinishGame(state pachislo.GameState) {
	r.emit(Event{Type: EventFinish, State: &state})
}

func (r *recorder) LotteryNormal(result pachislo.LotteryResult, reels []int) {
	r.emit(Event{Type: EventLotteryNormal, Result: &result, Reels: reels})
}

func (r *recorder) LotteryRush(result pachislo.LotteryResult, reels []int) {
	r.emit(Event{Type: EventLotteryRush, Result: &result, Reels: reels})
}

func (r *recorder) LotteryRushContinue(result pachislo.LotteryResult, reels []int) {
	r.emit(Event{Type: EventLotteryRushContinue, Result: &result, Reels: reels})
}
