package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"github.com/xtding233/pachislo-backend/internal/game"
	"github.com/xtding233/pachislo-backend/internal/pachislo"
	"github.com/xtding233/pachislo-backend/internal/slot"
)

var ErrNotFound = errors.New("session not found")

// Manager owns every live session, keyed by a short random code.
type Manager struct {
	resolver game.Resolver
	log      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(resolver game.Resolver, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		resolver: resolver,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// CreateParams selects the machine profile and optional determinism/tuning
// knobs for a new session.
type CreateParams struct {
	Machine   string
	Seed      *uint64 // nil: crypto randomness
	Overrides game.Overrides
}

// Create resolves the profile, builds an engine and registers the session
// under a fresh code.
func (m *Manager) Create(p CreateParams) (string, *Session, error) {
	cfg, slotCfg, err := m.resolver.Resolve(p.Machine, p.Overrides)
	if err != nil {
		return "", nil, fmt.Errorf("resolve machine %q: %w", p.Machine, err)
	}

	var rng pachislo.RandomSource
	if p.Seed != nil {
		rng = pachislo.NewSeededRNG(*p.Seed)
	} else {
		rng = pachislo.DefaultRNG()
	}

	producer, err := slot.NewProducer(slotCfg, rng)
	if err != nil {
		return "", nil, fmt.Errorf("slot producer: %w", err)
	}

	rec := &recorder{}
	engine, err := pachislo.NewEngine(cfg, rng, rec, producer)
	if err != nil {
		return "", nil, err
	}
	sess := newSession(engine, rec)

	m.mu.Lock()
	defer m.mu.Unlock()
	var code string
	for {
		c, err := generateCode()
		if err != nil {
			return "", nil, err
		}
		if _, taken := m.sessions[c]; !taken {
			code = c
			break
		}
	}
	m.sessions[code] = sess

	m.log.Info("session created",
		zap.String("code", code),
		zap.String("machine", p.Machine),
		zap.Bool("seeded", p.Seed != nil),
	)
	return code, sess, nil
}

// Get returns the session for a code.
func (m *Manager) Get(code string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[code]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Remove drops a session. Subscribers keep their channels until they
// unsubscribe; no further events will arrive.
func (m *Manager) Remove(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[code]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, code)
	m.log.Info("session removed", zap.String("code", code))
	return nil
}

func generateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}
