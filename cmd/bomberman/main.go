package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/amalg/bomber-arena/internal/config"
	"github.com/amalg/bomber-arena/internal/game"
	"github.com/amalg/bomber-arena/internal/session"
	"github.com/amalg/bomber-arena/internal/ui"
)

func main() {
	configFile := flag.String("config", "", "YAML config file (default: built-in settings)")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	logLevel := flag.String("log-level", "info", "Log level")
	seed := flag.Uint64("seed", 0, "Random seed (default: time based)")
	humans := flag.Int("humans", -1, "Number of human players, 0-2 (default: from config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *humans >= 0 {
		cfg.HumanPlayers = *humans
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
			os.Exit(1)
		}
	}

	// Anything written to stderr corrupts Bubbletea's rendering, so logs
	// go to a file or nowhere.
	log := logrus.New()
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(level)

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", *seed).Info("starting")

	engine := game.NewEngine(cfg, rand.New(rand.NewPCG(*seed, *seed>>1)), log)
	s := session.New(engine, session.WithLogger(log))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("session failed")
		}
	}()

	p := tea.NewProgram(ui.NewModel(s, cfg.FPS), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
