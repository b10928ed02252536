package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/protofarer/aion/audio"
	"github.com/protofarer/aion/logging"
	"github.com/protofarer/aion/prefabs"
)

func main() {
	configPath := flag.String("config", prefabs.GameConfigFile, "game config, relative to the prefabs dir")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory searched for prefabs before the embedded copies")
	scenario := flag.String("scenario", "", "scenario name in prefabs/scenarios (overrides config)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	watch := flag.Bool("watch", false, "rebuild the world when prefabs change on disk")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	seed := flag.Int64("seed", 0, "random seed for scenario scatter; 0 uses config, then the clock")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	prefabs.Dir = *prefabDir
	cfg, err := prefabs.LoadGameConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scenario != "" {
		cfg.Scenario = *scenario
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var cues *cuePlayer
	if cfg.Audio.Enabled {
		bank, err := audio.NewBank(cfg.Audio.SampleRate, cfg.Audio.Volume, cfg.Audio.Cues, logger)
		if err != nil {
			logger.Warn("audio: disabled", zap.Error(err))
		}
		cues = newCuePlayer(bank, logger)
	}

	game, err := NewGame(cfg, gameOptions{
		Scenario: cfg.Scenario,
		Seed:     cfg.Seed,
		Debug:    *debug,
		Watch:    *watch,
	}, cues, logger)
	if err != nil {
		logger.Fatal("start", zap.Error(err))
	}
	defer game.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
