package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/audio"
	"github.com/Garsondee/vice-streets/internal/config"
	"github.com/Garsondee/vice-streets/internal/game"
	"github.com/Garsondee/vice-streets/internal/logging"
	"github.com/Garsondee/vice-streets/internal/screen"
	"github.com/Garsondee/vice-streets/internal/storage"
)

func main() {
	cfgPath := flag.String("config", "vicestreets.json", "path to the JSON settings file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		boot := logging.New(os.Stderr, "info")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logging.New(os.Stderr, cfg.Log.Level)

	snd := openSound(cfg.Audio, log)
	if sm, ok := snd.(*audio.SoundManager); ok {
		defer sm.Close()
	}

	var saves screen.Saver
	store, err := storage.Open(cfg.Storage.Path, logging.Component(log, "storage"))
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Storage.Path).Msg("saves disabled")
	} else {
		defer store.Close()
		saves = store
	}

	w, h := int(cfg.World.Width), int(cfg.World.Height)
	g := screen.New(w, h, saves, logging.Component(log, "screen"))
	opts := append(cfg.SimOptions(), g.SimOptions()...)
	opts = append(opts, game.WithSound(snd), game.WithLogger(logging.Component(log, "sim")))
	g.Bind(game.New(opts...))

	ebiten.SetTPS(int(time.Second / (time.Duration(cfg.Sim.FrameMs) * time.Millisecond)))
	ebiten.SetWindowTitle("Vice Streets")
	ebiten.SetWindowSize(int(float64(w)*cfg.Window.Scale), int(float64(h)*cfg.Window.Scale))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}

// openSound starts the speaker, falling back to silence when no audio device
// is available.
func openSound(cfg config.AudioConfig, log zerolog.Logger) game.SoundService {
	if !cfg.Enabled {
		return audio.Silent{}
	}
	sm := audio.NewSoundManager(cfg.Volume, logging.Component(log, "audio"))
	if err := sm.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, running silent")
		return audio.Silent{}
	}
	return sm
}
