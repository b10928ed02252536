package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/entity"
	"github.com/protofarer/aion/ecs/render"
	"github.com/protofarer/aion/ecs/system"
	"github.com/protofarer/aion/input"
	"github.com/protofarer/aion/prefabs"
	"github.com/protofarer/aion/runstate"
	"github.com/protofarer/aion/timing"
)

type gameOptions struct {
	Scenario string
	Seed     int64
	Debug    bool
	Watch    bool
}

type Game struct {
	cfg    prefabs.GameConfig
	opts   gameOptions
	logger *zap.Logger

	world    *ecs.World
	pipeline *system.Pipeline
	clock    *timing.SimClock
	bounds   cp.BB
	dt       float64

	run      *runstate.Controller
	keys     *keyboard
	renderer *render.Renderer
	audio    *cuePlayer
	menu     *pauseMenu
	frames   *timing.FrameTimer
	watcher  *prefabs.Watcher
	reload   bool
}

func NewGame(cfg prefabs.GameConfig, opts gameOptions, cues *cuePlayer, logger *zap.Logger) (*Game, error) {
	bindings, err := bindingsFor(cfg.Keys)
	if err != nil {
		return nil, err
	}
	keys, err := newKeyboard(bindings)
	if err != nil {
		return nil, err
	}

	run := runstate.NewController(logger)
	g := &Game{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		bounds:   common.ArenaBounds(cfg.Arena.Width, cfg.Arena.Height),
		dt:       1 / float64(cfg.Window.TPS),
		run:      run,
		keys:     keys,
		renderer: render.NewRenderer(),
		audio:    cues,
		menu:     newPauseMenu(run, cfg.Window.Width, cfg.Window.Height),
		frames:   timing.NewFrameTimer(),
	}
	g.renderer.Debug = opts.Debug

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			logger.Warn("prefabs: watch disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := g.rebuild(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// rebuild replaces the world with a fresh copy of the scenario. On error the
// current world stays.
func (g *Game) rebuild() error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := ecs.NewWorld(ecs.WithLogger(g.logger))
	sc, err := entity.LoadScenario(w, g.opts.Scenario, g.bounds, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	clock := timing.NewSimClock()
	g.world = w
	g.clock = clock
	g.pipeline = system.NewPipeline(system.Deps{
		Input:      g.keys.Snapshot(),
		Gate:       g.run,
		Clock:      clock,
		Bounds:     g.bounds,
		SpawnPings: g.cfg.Arena.SpawnPings,
		Audio:      g.audio,
		Scripts:    prefabs.LoadScript,
	})
	g.logger.Info("world rebuilt", zap.String("scenario", sc.Name), zap.Int64("seed", seed), zap.Int("entities", ecs.Count(w)))
	return nil
}

func (g *Game) Update() error {
	g.keys.Poll()
	g.handleMeta(g.keys.Snapshot())

	if g.run.State() == runstate.Exiting {
		return ebiten.Termination
	}

	g.drainWatcher()
	if g.run.TakeRestart() || g.reload {
		g.reload = false
		if err := g.rebuild(); err != nil {
			g.logger.Error("rebuild failed", zap.Error(err))
		}
	}

	if !g.run.Running() {
		g.menu.setState(g.run.State())
		g.menu.ui.Update()
		return nil
	}

	g.clock.Advance(g.dt)
	g.pipeline.Update(g.world, g.dt)
	return nil
}

func (g *Game) handleMeta(in input.Snapshot) {
	switch {
	case in.JustPressed(input.Exit):
		g.run.Exit()
	case in.JustPressed(input.Pause):
		g.run.TogglePause()
	case in.JustPressed(input.Stop):
		g.run.ToggleStop()
	}
	if in.JustPressed(input.Debug) {
		g.renderer.Debug = !g.renderer.Debug
	}
	if in.JustPressed(input.Colliders) {
		g.renderer.Colliders = !g.renderer.Colliders
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Info("prefabs: changed", zap.String("path", ch.Path), zap.Bool("script", ch.Script))
			g.reload = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefabs: watch error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.frames.Mark(time.Now())
	g.renderer.Draw(g.world, screen)
	g.renderer.DrawDebug(g.world, screen,
		fmt.Sprintf("state: %s  sim: %.1fs", g.run.State(), g.clock.Elapsed().Seconds()),
		fmt.Sprintf("draw: %.1f/s", g.frames.Rate()),
		g.playerLine(),
	)
	if !g.run.Running() {
		g.menu.ui.Draw(screen)
	}
}

func (g *Game) playerLine() string {
	player, ok := entity.Player(g.world)
	if !ok {
		return "player: down"
	}
	hp, ok := ecs.Get(g.world, player, component.HealthComponent.Kind())
	if !ok {
		return "player: no health"
	}
	return fmt.Sprintf("player: %d/%d hp", hp.HP, hp.Max)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}
