package slot

import (
	"testing"

	"github.com/xtding233/pachislo-backend/internal/pachislo"
)

func TestNewProducerValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero reels", Config{Reels: 0, SymbolCount: 7}},
		{"one symbol", Config{Reels: 3, SymbolCount: 1}},
		{"weight count mismatch", Config{Reels: 3, SymbolCount: 7, Weights: []int{1, 2}}},
		{"zero weight", Config{Reels: 3, SymbolCount: 3, Weights: []int{1, 0, 2}}},
		{"negative weight", Config{Reels: 3, SymbolCount: 3, Weights: []int{1, -1, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewProducer(tc.cfg, nil); err == nil {
				t.Fatalf("config %+v must be rejected", tc.cfg)
			}
		})
	}
}

func TestProduceWinsAlign(t *testing.T) {
	p, err := NewProducer(DefaultConfig(), pachislo.NewSeededRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, result := range []pachislo.LotteryResult{pachislo.ResultWin, pachislo.ResultFakeWin} {
		for i := 0; i < 200; i++ {
			line := p.Produce(result)
			if len(line) != DefaultReels {
				t.Fatalf("%v: %d reels, want %d", result, len(line), DefaultReels)
			}
			if !aligned(line) {
				t.Fatalf("%v must align, got %v", result, line)
			}
			if line[0] < 1 || line[0] > DefaultSymbols {
				t.Fatalf("symbol %d out of alphabet", line[0])
			}
		}
	}
}

func TestProduceFakeLoseNearMiss(t *testing.T) {
	p, err := NewProducer(DefaultConfig(), pachislo.NewSeededRNG(2))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		line := p.Produce(pachislo.ResultFakeLose)
		if aligned(line) {
			t.Fatalf("fake lose must not align, got %v", line)
		}
		if !aligned(line[:len(line)-1]) {
			t.Fatalf("fake lose must align all but the last reel, got %v", line)
		}
	}
}

func TestProduceLoseNeverAligns(t *testing.T) {
	p, err := NewProducer(DefaultConfig(), pachislo.NewSeededRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2000; i++ {
		if line := p.Produce(pachislo.ResultLose); aligned(line) {
			t.Fatalf("plain lose must not align, got %v", line)
		}
	}
}

func TestProduceSingleReel(t *testing.T) {
	p, err := NewProducer(Config{Reels: 1, SymbolCount: 5}, pachislo.NewSeededRNG(4))
	if err != nil {
		t.Fatal(err)
	}
	// with one reel there is no alignment to break
	for _, result := range []pachislo.LotteryResult{pachislo.ResultLose, pachislo.ResultFakeLose} {
		line := p.Produce(result)
		if len(line) != 1 || line[0] < 1 || line[0] > 5 {
			t.Fatalf("%v: got %v", result, line)
		}
	}
}

func TestPickFollowsWeights(t *testing.T) {
	cfg := Config{Reels: 3, SymbolCount: 3, Weights: []int{6, 3, 1}}
	p, err := NewProducer(cfg, pachislo.NewSeededRNG(5))
	if err != nil {
		t.Fatal(err)
	}

	const n = 100000
	counts := make([]int, cfg.SymbolCount+1)
	for i := 0; i < n; i++ {
		counts[p.pick()]++
	}
	for sym, want := range map[int]float64{1: 0.6, 2: 0.3, 3: 0.1} {
		freq := float64(counts[sym]) / float64(n)
		if diff := freq - want; diff > 0.01 || diff < -0.01 {
			t.Fatalf("symbol %d freq=%f not close to %f", sym, freq, want)
		}
	}
}

func TestNextWrapsAlphabet(t *testing.T) {
	p, err := NewProducer(Config{Reels: 3, SymbolCount: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.next(1) != 2 || p.next(2) != 3 || p.next(3) != 1 {
		t.Fatalf("next must walk and wrap the alphabet")
	}
}
