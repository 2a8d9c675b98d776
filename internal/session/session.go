// Package session hosts a running match: it owns the current game.Model,
// feeds it input and clock ticks, and publishes every new snapshot.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amalg/bomber-arena/internal/game"
)

// Session is the authoritative loop around a game.Engine. It is safe for
// concurrent use: input may be dispatched from one goroutine while Run
// drives the clock from another.
type Session struct {
	engine *game.Engine
	log    logrus.FieldLogger

	mu    sync.Mutex
	model game.Model

	pubMu    sync.Mutex
	updates  chan game.Model
	onUpdate func(game.Model) // Called after each update with the new snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// OnUpdate registers a callback invoked with every new snapshot. It runs
// on the goroutine that caused the update, without the session lock held.
func OnUpdate(fn func(game.Model)) Option {
	return func(s *Session) {
		s.onUpdate = fn
	}
}

// New creates a session with a fresh match from engine.
func New(engine *game.Engine, opts ...Option) *Session {
	s := &Session{
		engine:  engine,
		updates: make(chan game.Model, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	s.model = engine.NewModel()
	return s
}

// Snapshot returns the current model. Models are never mutated once
// published, so the result may be shared freely.
func (s *Session) Snapshot() game.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Updates returns a channel carrying new snapshots. Only the latest one is
// kept: a slow reader skips intermediate frames.
func (s *Session) Updates() <-chan game.Model {
	return s.updates
}

// Dispatch applies msg and returns the resulting model.
func (s *Session) Dispatch(msg game.Msg) game.Model {
	s.mu.Lock()
	next := s.engine.Update(s.model, msg)
	s.model = next
	s.pubMu.Lock()
	s.mu.Unlock()

	s.offer(next)
	s.pubMu.Unlock()

	// No lock held here; the callback may dispatch again
	if s.onUpdate != nil {
		s.onUpdate(next)
	}
	return next
}

// Run ticks the match at the engine's frame rate until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	interval := s.engine.Config().TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.WithField("interval", interval).Debug("session running")
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Dispatch(game.TickMsg{})
		}
	}
}

// offer queues m for Updates readers. Callers hold pubMu so snapshots go
// out in the order they were produced.
func (s *Session) offer(m game.Model) {
	select {
	case s.updates <- m:
	default:
		// Drop the stale snapshot; the latest state matters most
		select {
		case <-s.updates:
		default:
		}
		s.updates <- m
	}
}
