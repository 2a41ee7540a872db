// Package slot renders lottery outcomes as reel symbols. The rendering is
// presentation-only: it never feeds back into ball accounting.
package slot

import (
	"errors"
	"fmt"

	"github.com/xtding233/pachislo-backend/internal/pachislo"
)

const (
	DefaultReels   = 3
	DefaultSymbols = 7
)

// Config describes one machine face: how many reels spin and which weighted
// symbol alphabet (1..SymbolCount) they draw from.
type Config struct {
	Reels       int
	SymbolCount int
	// Weights holds one relative integer weight per symbol. Empty means
	// uniform. Length must equal SymbolCount otherwise.
	Weights []int
}

// DefaultConfig mirrors the classic face: 3 reels over symbols 1..7, uniform.
func DefaultConfig() Config {
	return Config{Reels: DefaultReels, SymbolCount: DefaultSymbols}
}

// Producer implements pachislo.ReelProducer. It shares the engine's random
// stream so a seeded session replays its reels too.
type Producer struct {
	reels   int
	weights []int
	total   int
	rng     pachislo.RandomSource
}

func NewProducer(cfg Config, rng pachislo.RandomSource) (*Producer, error) {
	if cfg.Reels < 1 {
		return nil, errors.New("slot: need at least one reel")
	}
	if cfg.SymbolCount < 2 {
		return nil, errors.New("slot: need at least two symbols")
	}
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = make([]int, cfg.SymbolCount)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != cfg.SymbolCount {
		return nil, fmt.Errorf("slot: %d weights for %d symbols", len(weights), cfg.SymbolCount)
	}
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("slot: weight for symbol %d must be positive", i+1)
		}
		total += w
	}
	if rng == nil {
		rng = pachislo.DefaultRNG()
	}
	return &Producer{
		reels:   cfg.Reels,
		weights: append([]int(nil), weights...),
		total:   total,
		rng:     rng,
	}, nil
}

// pick draws one symbol (1-based) by walking the cumulative weights.
func (p *Producer) pick() int {
	r := p.rng.Float64() * float64(p.total)
	cumulative := 0
	for i, w := range p.weights {
		cumulative += w
		if r < float64(cumulative) {
			return i + 1
		}
	}
	return len(p.weights)
}

// next returns a symbol different from s, wrapping around the alphabet.
func (p *Producer) next(s int) int {
	return s%len(p.weights) + 1
}

// Produce renders the outcome:
//   - wins (real or fake) land an aligned line of one weighted symbol
//   - a fake lose is a near miss: every reel but the last aligned
//   - a plain lose is independent draws, nudged off accidental alignment
func (p *Producer) Produce(result pachislo.LotteryResult) []int {
	out := make([]int, p.reels)

	if result.IsWin() {
		s := p.pick()
		for i := range out {
			out[i] = s
		}
		return out
	}

	if result == pachislo.ResultFakeLose && p.reels > 1 {
		s := p.pick()
		for i := range out {
			out[i] = s
		}
		out[p.reels-1] = p.next(s)
		return out
	}

	for i := range out {
		out[i] = p.pick()
	}
	if p.reels > 1 && aligned(out) {
		out[p.reels-1] = p.next(out[p.reels-1])
	}
	return out
}

func aligned(symbols []int) bool {
	for _, s := range symbols[1:] {
		if s != symbols[0] {
			return false
		}
	}
	return true
}
