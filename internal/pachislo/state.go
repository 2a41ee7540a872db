package pachislo

import (
	"encoding/json"
	"fmt"
)

// Mode discriminates the GameState tagged union.
type Mode int

const (
	ModeUninitialized Mode = iota
	ModeNormal
	ModeRush
)

// GameState is the single mutable entity of a session. Exactly one variant
// is active: Uninitialized carries nothing, Normal carries Balls, Rush
// carries Balls, RushBalls and the consecutive-win counter N.
type GameState struct {
	Mode      Mode
	Balls     int
	RushBalls int
	N         int
}

func Uninitialized() GameState { return GameState{Mode: ModeUninitialized} }

func Normal(balls int) GameState {
	return GameState{Mode: ModeNormal, Balls: balls}
}

func Rush(balls, rushBalls, n int) GameState {
	return GameState{Mode: ModeRush, Balls: balls, RushBalls: rushBalls, N: n}
}

func (s GameState) String() string {
	switch s.Mode {
	case ModeUninitialized:
		return "Uninitialized"
	case ModeNormal:
		return fmt.Sprintf("Normal{balls: %d}", s.Balls)
	case ModeRush:
		return fmt.Sprintf("Rush{balls: %d, rush_balls: %d, n: %d}", s.Balls, s.RushBalls, s.N)
	default:
		return fmt.Sprintf("Mode(%d)", int(s.Mode))
	}
}

type normalBody struct {
	Balls int `json:"balls"`
}

type rushBody struct {
	Balls     int `json:"balls"`
	RushBalls int `json:"rush_balls"`
	N         int `json:"n"`
}

// MarshalJSON emits the stable cross-boundary encoding:
// "Uninitialized", {"Normal":{"balls":N}} or
// {"Rush":{"balls":N,"rush_balls":M,"n":K}}.
func (s GameState) MarshalJSON() ([]byte, error) {
	switch s.Mode {
	case ModeUninitialized:
		return json.Marshal("Uninitialized")
	case ModeNormal:
		return json.Marshal(map[string]normalBody{"Normal": {Balls: s.Balls}})
	case ModeRush:
		return json.Marshal(map[string]rushBody{"Rush": {Balls: s.Balls, RushBalls: s.RushBalls, N: s.N}})
	default:
		return nil, fmt.Errorf("unknown game state mode %d", int(s.Mode))
	}
}

func (s *GameState) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Uninitialized" {
			return fmt.Errorf("unknown game state %q", tag)
		}
		*s = Uninitialized()
		return nil
	}

	var body struct {
		Normal *normalBody `json:"Normal"`
		Rush   *rushBody   `json:"Rush"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	switch {
	case body.Normal != nil:
		*s = Normal(body.Normal.Balls)
	case body.Rush != nil:
		*s = Rush(body.Rush.Balls, body.Rush.RushBalls, body.Rush.N)
	default:
		return fmt.Errorf("unknown game state encoding")
	}
	return nil
}

// Transition records one state change. Before is nil only for the
// construction-time transition into Uninitialized.
type Transition struct {
	Before *GameState `json:"before"`
	After  GameState  `json:"after"`
}
