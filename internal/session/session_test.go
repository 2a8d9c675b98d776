package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/amalg/bomber-arena/internal/game"
)

func newEngine(t *testing.T, cfg game.Config) *game.Engine {
	t.Helper()
	return game.NewEngine(cfg, rand.New(rand.NewPCG(1, 2)), nil)
}

func TestNewStartsInWarmup(t *testing.T) {
	s := New(newEngine(t, game.DefaultConfig()))
	m := s.Snapshot()
	require.Equal(t, game.StateWarmup, m.State)
	require.Len(t, m.Players, 4)
}

func TestDispatchPublishesLatest(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	s := New(newEngine(t, game.DefaultConfig()), OnUpdate(func(m game.Model) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, m.CurrentTime)
	}))

	for range 5 {
		s.Dispatch(game.TickMsg{})
	}

	mu.Lock()
	require.Equal(t, []int{1, 2, 3, 4, 5}, seen)
	mu.Unlock()

	// Only the newest snapshot is waiting
	select {
	case m := <-s.Updates():
		require.Equal(t, 5, m.CurrentTime)
	default:
		t.Fatal("no snapshot published")
	}
	select {
	case <-s.Updates():
		t.Fatal("stale snapshot left in channel")
	default:
	}
	require.Equal(t, 5, s.Snapshot().CurrentTime)
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	s := New(newEngine(t, game.DefaultConfig()))
	first := s.Snapshot()
	before := first.CurrentTime

	for range 120 {
		s.Dispatch(game.TickMsg{})
	}
	require.Equal(t, before, first.CurrentTime)
	require.Equal(t, game.StateWarmup, first.State)
	require.Equal(t, game.StatePlaying, s.Snapshot().State)
}

func TestCallbackMayDispatch(t *testing.T) {
	var s *Session
	fired := false
	s = New(newEngine(t, game.DefaultConfig()), OnUpdate(func(m game.Model) {
		if !fired {
			fired = true
			s.Dispatch(game.KeyDownMsg{Key: game.KeyEscape})
		}
	}))

	s.Dispatch(game.TickMsg{})
	require.True(t, s.Snapshot().Debug)
}

func TestRunTicksUntilCancelled(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.FPS = 200
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s := New(newEngine(t, cfg), WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return s.Snapshot().CurrentTime >= 5
	}, 2*time.Second, 5*time.Millisecond)

	// Input can arrive while the clock runs
	s.Dispatch(game.KeyDownMsg{Key: game.KeyEscape})

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.Equal(t, "session stopped", hook.LastEntry().Message)
}
