package game

import (
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Engine is the reducer that advances a match. It holds only configuration,
// the random source and a logger; all game state lives in the Model values
// passed through Update.
//
// An Engine is not safe for concurrent use because it owns its random
// source. Hosts serialise calls to Update.
type Engine struct {
	cfg Config
	rng *rand.Rand
	log logrus.FieldLogger
}

// NewEngine creates an engine. A nil logger discards all output.
func NewEngine(config Config, rng *rand.Rand, log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{cfg: config, rng: rng, log: log}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Update applies one message and returns the next Model. The argument is
// never modified.
func (e *Engine) Update(m Model, msg Msg) Model {
	switch msg := msg.(type) {
	case KeyDownMsg:
		return e.handleKeyDown(m, msg.Key)
	case KeyUpMsg:
		m.Keys = m.Keys.Without(msg.Key)
		return m
	case TickMsg:
		return e.handleTick(m)
	case RestartGameMsg:
		return e.NewModel()
	case StartNextRoundMsg:
		return e.startNextRound(m.clone())
	default:
		return m
	}
}

func (e *Engine) handleKeyDown(m Model, k Key) Model {
	if !isControlKey(k) {
		return m
	}

	over := m.State == StateRoundOver || m.State == StateMatchOver
	switch k {
	case KeyEscape, KeyR, KeyShiftR:
		if over {
			return e.advance(m)
		}
		if k == KeyEscape {
			m.Debug = !m.Debug
		}
		return m
	}
	if m.State != StatePlaying {
		return m
	}

	m = m.clone()
	m.Keys = m.Keys.With(k)
	for i, p := range m.Players {
		if p.Human && p.Alive && ControlsFor(p.ID).Bomb == k {
			m.plantBomb(i)
		}
	}
	return m
}

// advance moves past a finished round: the next round, or a new match once
// the match is over.
func (e *Engine) advance(m Model) Model {
	if m.State == StateMatchOver {
		return e.Update(m, RestartGameMsg{})
	}
	return e.Update(m, StartNextRoundMsg{})
}

// handleTick runs one frame. Outside of play only the clock and the warmup
// countdown move.
func (e *Engine) handleTick(m Model) Model {
	m = m.clone()
	m.CurrentTime++

	switch m.State {
	case StateWarmup:
		m.RoundTimer--
		if m.RoundTimer <= 0 {
			m.State = StatePlaying
			m.RoundTimer = e.cfg.Ticks(e.cfg.RoundDuration)
			e.log.WithField("round", m.RoundNumber).Debug("warmup finished")
		}
		return m
	case StatePlaying:
	default:
		return m
	}

	if m.RoundTimer <= 0 {
		e.endRound(&m, DrawLabel)
		return m
	}

	m.advanceRubble()
	e.advancePlayerTimers(&m)
	e.updateBots(&m)
	for i, p := range m.Players {
		if !p.Alive {
			continue
		}
		if p.Human {
			m.Players[i] = moveHuman(m, p)
		} else {
			m.Players[i] = moveBot(m, p)
		}
	}
	e.collectPowerups(&m)
	e.advanceBombs(&m)
	e.checkDeaths(&m)
	e.checkRoundEnd(&m)
	if m.State == StatePlaying {
		m.RoundTimer--
	}
	return m
}
