package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/audio"
	"github.com/Garsondee/vice-streets/internal/config"
	"github.com/Garsondee/vice-streets/internal/game"
	"github.com/Garsondee/vice-streets/internal/logging"
	"github.com/Garsondee/vice-streets/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "vicestreets.json", "path to the JSON settings file")
	logPath := flag.String("log", "vicestreets-tui.log", "diagnostic log file; the terminal is the playfield")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		boot := logging.New(os.Stderr, "info")
		boot.Fatal().Err(err).Msg("config")
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		boot := logging.New(os.Stderr, "info")
		boot.Fatal().Err(err).Msg("log file")
	}
	defer logFile.Close()
	log := logging.New(logFile, cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("tui exited")
		os.Exit(1)
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()

	var snd game.SoundService = audio.Silent{}
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume, logging.Component(log, "audio"))
		if err := sm.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, running silent")
		} else {
			defer sm.Close()
			snd = sm
		}
	}

	r := tui.NewRunner(scr, time.Duration(cfg.Sim.FrameMs)*time.Millisecond, logging.Component(log, "tui"))
	opts := append(cfg.SimOptions(), r.SimOptions()...)
	opts = append(opts, game.WithSound(snd), game.WithLogger(logging.Component(log, "sim")))
	r.Bind(game.New(opts...))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return r.Run(ctx)
}
