// Package session hosts live engines behind the HTTP and websocket
// adapters: it is the Command Source (token batches arriving per request)
// and the Event Sink (step recording plus subscriber fan-out) of the core.
package session

import (
	"sync"

	"github.com/xtding233/pachislo-backend/internal/pachislo"
)

// CommandIssue reports one rejected token or command of a step batch.
type CommandIssue struct {
	Index int    `json:"index"`
	Token string `json:"token"`
	Error string `json:"error"`
}

// StepResult is the outcome of one step: the control signal, whatever the
// engine emitted, per-command issues and the resulting state.
type StepResult struct {
	Flow   string             `json:"flow"` // "Continue" | "Break"
	State  pachislo.GameState `json:"state"`
	Events []Event            `json:"events"`
	Issues []CommandIssue     `json:"issues,omitempty"`
}

// Session serializes access to one engine. Steps run under the mutex, so
// the engine itself never sees concurrency.
type Session struct {
	mu      sync.Mutex
	engine  *pachislo.Engine
	rec     *recorder
	subs    map[chan Event]struct{}
	initial []Event
}

// New wires an engine to a fresh session. The engine must have been built
// with the sink returned by Recorder (see Manager.Create).
func newSession(engine *pachislo.Engine, rec *recorder) *Session {
	s := &Session{
		engine: engine,
		rec:    rec,
		subs:   make(map[chan Event]struct{}),
	}
	rec.forward = s.broadcast
	// the construction-time transition fired before any subscriber existed
	s.initial = rec.drain()
	return s
}

// State returns the current engine state.
func (s *Session) State() pachislo.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Finished reports whether the engine reached the terminal state.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Finished()
}

// Step parses and applies an ordered token batch. Tokens that fail to parse
// are reported and skipped without touching state; commands that fail are
// reported while earlier mutations stand. Processing always continues to
// the end of the batch.
func (s *Session) Step(tokens []string) StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var issues []CommandIssue
	for i, token := range tokens {
		cmd, err := pachislo.ParseCommand(token)
		if err != nil {
			issues = append(issues, CommandIssue{Index: i, Token: token, Error: err.Error()})
			continue
		}
		if _, err := s.engine.Apply(cmd); err != nil {
			issues = append(issues, CommandIssue{Index: i, Token: token, Error: err.Error()})
		}
	}

	flow := pachislo.Continue
	if s.engine.Finished() {
		flow = pachislo.Break
	}
	return StepResult{
		Flow:   flow.String(),
		State:  s.engine.State(),
		Events: s.rec.drain(),
		Issues: issues,
	}
}

// Subscribe registers an event channel. The initial transition backlog is
// replayed so late subscribers see the full history shape. Events are
// dropped for subscribers that fall behind rather than blocking a step.
func (s *Session) Subscribe() chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 64)
	for _, ev := range s.initial {
		ch <- ev
	}
	s.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a previously subscribed channel.
func (s *Session) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// broadcast runs inside Step, under the session mutex.
func (s *Session) broadcast(ev Event) {
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// slow consumer, drop
		}
	}
}
