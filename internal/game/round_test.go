package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestNewModelSeatsPlayers(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestEngine(t, cfg, nil)
	m := e.NewModel()

	require.Equal(t, StateWarmup, m.State)
	require.Equal(t, 1, m.RoundNumber)
	require.Equal(t, cfg.Ticks(cfg.Warmup), m.RoundTimer)
	require.Equal(t, -1, m.RoundEndTimer)
	require.Len(t, m.Players, 4)

	spawns := SpawnPoints(cfg.GridRows, cfg.GridCols)
	for i, p := range m.Players {
		require.Equal(t, i+1, p.ID)
		require.Equal(t, spawns[i].Position(), p.Pos)
		require.True(t, p.Alive)
		require.Zero(t, p.Wins)
		require.Equal(t, 1, p.BombRange)
		require.Equal(t, 1, p.MaxBombs)
	}

	require.True(t, m.Players[0].Human)
	require.Equal(t, BotIdle, m.Players[0].BotState)
	for i, a := range cfg.BotTypes {
		bot := m.Players[i+1]
		require.True(t, bot.IsBot())
		require.Equal(t, a, bot.BotType)
		require.Equal(t, BotWander, bot.BotState)
		require.Equal(t, NoGoal, bot.BotGoal)
		want, _ := LookupArchetype(a)
		require.Equal(t, want, bot.Tuning)
	}
}

func TestPlayerCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HumanPlayers = 2
	cfg.BotTypes = []Archetype{Hostile, Careful, Greedy, Extreme}
	require.Equal(t, 4, cfg.PlayerCount())

	cfg.HumanPlayers = 0
	cfg.BotTypes = []Archetype{Extreme}
	require.Equal(t, 1, cfg.PlayerCount())
}

func TestWarmupStartsPlay(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := e.NewModel()
	warmup := m.RoundTimer

	for range warmup - 1 {
		m = e.Update(m, TickMsg{})
	}
	require.Equal(t, StateWarmup, m.State)

	m = e.Update(m, TickMsg{})
	require.Equal(t, StatePlaying, m.State)
	require.Equal(t, e.cfg.Ticks(e.cfg.RoundDuration), m.RoundTimer)
	require.Equal(t, warmup, m.CurrentTime)
}

func TestEndRound(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	players := []Player{testHuman(1, Point{1, 1}), testHuman(2, Point{1, 3}), testHuman(3, Point{3, 1})}
	players[1].Wins = 1
	players[2].Wins = 2
	m := playingModel(openGrid(5, 5), players...)

	e.endRound(&m, "P1")
	require.Equal(t, StateRoundOver, m.State)
	require.Equal(t, "P1", m.RoundWinner)
	require.Equal(t, []int{1, 1, 2}, wins(m))

	m.State = StatePlaying
	e.endRound(&m, DrawLabel)
	require.Equal(t, StateRoundOver, m.State)
	require.Equal(t, []int{1, 1, 2}, wins(m))

	m.State = StatePlaying
	e.endRound(&m, "P3")
	require.Equal(t, StateMatchOver, m.State)
	require.Equal(t, []int{1, 1, 3}, wins(m))
}

func wins(m Model) []int {
	out := make([]int, len(m.Players))
	for i, p := range m.Players {
		out[i] = p.Wins
	}
	return out
}

func TestLastSurvivorWins(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := newTestEngine(t, testConfig(), log)
	grace := e.cfg.Ticks(e.cfg.RoundEndDelay)

	winner, loser := testHuman(1, Point{1, 1}), testHuman(2, Point{3, 3})
	m := playingModel(openGrid(5, 5), winner, loser)
	m.Grid[3][3].HasExplosion = true
	m.Explosions = []Explosion{{Cells: []Point{{3, 3}}, CreatedAt: 0}}

	m = e.Update(m, TickMsg{})
	require.False(t, m.Players[1].Alive)
	require.Equal(t, StatePlaying, m.State)

	ticks := 1
	for m.State == StatePlaying && ticks < 10*grace {
		m = e.Update(m, TickMsg{})
		ticks++
	}
	require.Equal(t, StateRoundOver, m.State)
	require.Equal(t, "P1", m.RoundWinner)
	require.Equal(t, 1, m.Players[0].Wins)
	require.Zero(t, m.Players[1].Wins)
	require.GreaterOrEqual(t, ticks, grace)
	require.LessOrEqual(t, ticks, grace+1)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "round over", entry.Message)
	require.Equal(t, "P1", entry.Data["winner"])
}

func TestSinglePlayerRoundDoesNotEnd(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := playingModel(openGrid(5, 5), testHuman(1, Point{1, 1}))

	for range 100 {
		m = e.Update(m, TickMsg{})
	}
	require.Equal(t, StatePlaying, m.State)
	require.Equal(t, -1, m.RoundEndTimer)
}

func TestRoundTimerDraw(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := playingModel(openGrid(5, 5), testHuman(1, Point{1, 1}), testHuman(2, Point{3, 3}))
	m.RoundTimer = 2

	m = e.Update(m, TickMsg{})
	m = e.Update(m, TickMsg{})
	require.Equal(t, StatePlaying, m.State)
	require.Zero(t, m.RoundTimer)

	m = e.Update(m, TickMsg{})
	require.Equal(t, StateRoundOver, m.State)
	require.Equal(t, DrawLabel, m.RoundWinner)
	require.Equal(t, []int{0, 0}, wins(m))
}

func TestMatchOverAndRestart(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := newTestEngine(t, testConfig(), log)
	m := e.NewModel()
	m.State = StatePlaying
	m.Players[1].Wins = m.RoundsToWin - 1

	e.endRound(&m, m.Players[1].Label)
	require.Equal(t, StateMatchOver, m.State)
	require.Equal(t, "match over", hook.LastEntry().Message)

	next := e.Update(m, KeyDownMsg{Key: KeyR})
	require.Equal(t, StateWarmup, next.State)
	require.Equal(t, 1, next.RoundNumber)
	require.NotEqual(t, m.MatchID, next.MatchID)
	for _, p := range next.Players {
		require.Zero(t, p.Wins)
	}
}

func TestStartNextRoundKeepsWins(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := e.NewModel()
	m.State = StatePlaying
	m.Players[0].Pos = Position{Row: 3, Col: 3}
	m.Players[0].MaxBombs = 4
	m.Players[2].Alive = false
	m.Bombs = []Bomb{{Pos: Point{3, 3}, PlayerID: 1}}
	m.Players[0].ActiveBombs = 1
	e.endRound(&m, "P1")

	// Ignored until the round is over
	require.Equal(t, StatePlaying, e.Update(playingModel(m.Grid, m.Players...), StartNextRoundMsg{}).State)

	next := e.Update(m, KeyDownMsg{Key: KeyEscape})
	require.Equal(t, StateWarmup, next.State)
	require.Equal(t, 2, next.RoundNumber)
	require.Equal(t, m.MatchID, next.MatchID)
	require.Empty(t, next.Bombs)
	require.Empty(t, next.Explosions)
	require.Equal(t, 1, next.Players[0].Wins)
	require.Equal(t, next.Players[0].StartPos, next.Players[0].Pos)
	require.Equal(t, 1, next.Players[0].MaxBombs)
	require.Zero(t, next.Players[0].ActiveBombs)
	require.True(t, next.Players[2].Alive)
	require.False(t, next.Debug)

	// The finished round is left as it was
	require.Equal(t, StateRoundOver, m.State)
	require.False(t, m.Players[2].Alive)
}

func TestCheckDeathsHitbox(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := playingModel(openGrid(5, 5), testHuman(1, Point{1, 1}), testHuman(2, Point{3, 1}))
	m.Grid[1][2].HasExplosion = true
	m.Grid[3][2].HasExplosion = true
	m.Players[1].Pos = Position{Row: 3, Col: 1.3}

	e.checkDeaths(&m)
	require.True(t, m.Players[0].Alive)
	require.False(t, m.Players[1].Alive)
}

func TestStartNextRoundOnlyAfterRoundOver(t *testing.T) {
	e := newTestEngine(t, testConfig(), nil)
	m := playingModel(openGrid(7, 7), testHuman(1, Point{1, 1}), testHuman(2, Point{5, 5}))
	m.RoundNumber = 2

	got := e.Update(m, StartNextRoundMsg{})
	require.Equal(t, StatePlaying, got.State)
	require.Equal(t, 2, got.RoundNumber)

	m.State = StateRoundOver
	got = e.Update(m, StartNextRoundMsg{})
	require.Equal(t, StateWarmup, got.State)
	require.Equal(t, 3, got.RoundNumber)
}
