// Command botsim plays headless bot-only matches and reports who won.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amalg/bomber-arena/internal/config"
	"github.com/amalg/bomber-arena/internal/game"
	"github.com/amalg/bomber-arena/internal/session"
)

type tally struct {
	label   string
	kind    game.Archetype
	matches int
	rounds  int
}

func main() {
	configFile := flag.String("config", "", "YAML config file (default: built-in settings)")
	matches := flag.Int("matches", 10, "Number of matches to play")
	seed := flag.Uint64("seed", 1, "Random seed")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.HumanPlayers = 0
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(logrus.DebugLevel)
	}

	engine := game.NewEngine(cfg, rand.New(rand.NewPCG(*seed, *seed+1)), log)
	s := session.New(engine, session.WithLogger(log))

	seats := make(map[string]*tally)
	var order []*tally
	for _, p := range s.Snapshot().Players {
		t := &tally{label: p.Label, kind: p.BotType}
		seats[p.Label] = t
		order = append(order, t)
	}

	start := time.Now()
	var draws, ticks int
	for i := range *matches {
		if i > 0 {
			s.Dispatch(game.RestartGameMsg{})
		}
		m := s.Snapshot()
		for m.State != game.StateMatchOver {
			if m.State == game.StateRoundOver {
				m = s.Dispatch(game.StartNextRoundMsg{})
				continue
			}
			prev := m.State
			m = s.Dispatch(game.TickMsg{})
			ticks++
			if prev == game.StatePlaying && m.State != game.StatePlaying {
				if t, ok := seats[m.RoundWinner]; ok {
					t.rounds++
				} else {
					draws++
				}
			}
		}
		seats[m.RoundWinner].matches++
		log.WithFields(logrus.Fields{
			"match":  i + 1,
			"winner": m.RoundWinner,
			"rounds": m.RoundNumber,
		}).Info("simulated match")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEAT\tARCHETYPE\tMATCHES\tROUNDS")
	for _, t := range order {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", t.label, t.kind, t.matches, t.rounds)
	}
	fmt.Fprintf(w, "draws\t\t\t%d\n", draws)
	w.Flush()
	fmt.Printf("%d matches, %d ticks in %s\n", *matches, ticks, time.Since(start).Round(time.Millisecond))
}
