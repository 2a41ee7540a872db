package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for the machine profile files.
type Paths struct {
	BaseDir string // base directory, e.g. ./configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "machines", "default.yaml")
}

func (p Paths) MachinePath(machine string) string {
	return filepath.Join(p.BaseDir, "machines", machine+".yaml")
}

func (p Paths) MachinesDir() string {
	return filepath.Join(p.BaseDir, "machines")
}

// Loader reads YAML machine profiles and merges default → machine.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: machine name or "$default"
}

// NewLoader creates a profile loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// LoadMerged loads and merges default → machine. An empty machine name
// returns the default profile alone. The result is not yet validated or
// normalized.
func (l *Loader) LoadMerged(machine string) (RawConfig, error) {
	key := machine
	if key == "" {
		key = "$default"
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default profile: %w", err)
	}
	merged := defCfg
	if machine != "" {
		machineCfg, err := readYAML(l.paths.MachinePath(machine))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read machine profile %q: %w", machine, err)
		}
		merged = mergeRaw(defCfg, machineCfg)
	}

	l.mu.Lock()
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Called by the file watcher on change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return a zero
// config, no error, so machine profiles stay optional.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw deep-merges: fields set in b override a. Slices (weights)
// replace wholesale when provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	out.Balls = mergeBalls(out.Balls, b.Balls)
	out.Probability = mergeProbability(out.Probability, b.Probability)
	out.Slot = mergeSlot(out.Slot, b.Slot)

	return out
}

func mergeBalls(a, b *BallsCfg) *BallsCfg {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b.Init != nil {
		out.Init = b.Init
	}
	if b.PerWin != nil {
		out.PerWin = b.PerWin
	}
	if b.PerRushWin != nil {
		out.PerRushWin = b.PerRushWin
	}
	return &out
}

func mergeSlotProb(a, b *SlotProbCfg) *SlotProbCfg {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b.Win != nil {
		out.Win = b.Win
	}
	if b.FakeWin != nil {
		out.FakeWin = b.FakeWin
	}
	if b.FakeLose != nil {
		out.FakeLose = b.FakeLose
	}
	return &out
}

func mergeProbability(a, b *ProbabilityCfg) *ProbabilityCfg {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	out.Normal = mergeSlotProb(out.Normal, b.Normal)
	out.Rush = mergeSlotProb(out.Rush, b.Rush)
	out.RushContinue = mergeRushContinue(out.RushContinue, b.RushContinue)
	return &out
}

func mergeRushContinue(a, b *RushContinueCfg) *RushContinueCfg {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b.Win != nil {
		out.Win = b.Win
	}
	if b.FakeWin != nil {
		out.FakeWin = b.FakeWin
	}
	if b.FakeLose != nil {
		out.FakeLose = b.FakeLose
	}
	if b.Curve != nil {
		c := *b.Curve
		out.Curve = &c
	}
	return &out
}

func mergeSlot(a, b *SlotCfg) *SlotCfg {
	if b == nil {
		return a
	}
	if a == nil {
		c := *b
		return &c
	}
	out := *a
	if b.Reels != nil {
		out.Reels = b.Reels
	}
	if b.Symbols != nil {
		out.Symbols = b.Symbols
	}
	if len(b.Weights) > 0 {
		out.Weights = append([]int(nil), b.Weights...)
	}
	return &out
}
