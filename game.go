package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/common"
	"github.com/milk9111/penguin/hud"
	"github.com/milk9111/penguin/input"
	"github.com/milk9111/penguin/level"
	"github.com/milk9111/penguin/levels"
	"github.com/milk9111/penguin/prefabs"
	"github.com/milk9111/penguin/script"
	"github.com/milk9111/penguin/session"
)

const tick = time.Second / common.TPS

// GameOptions selects what NewGame loads.
type GameOptions struct {
	Level string
	Seed  uint64
	// Watch reloads prefab and script edits from disk while running.
	Watch bool
	Input input.Source
	Log   logrus.FieldLogger
}

type Game struct {
	log     logrus.FieldLogger
	input   input.Source
	prefabs *prefabs.Set
	patrol  *script.Patrol
	def     *levels.Level
	seed    uint64

	level   *level.Level
	hud     *hud.HUD
	session *session.Session
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Input == nil {
		opts.Input = input.NewDevice()
	}

	set, err := prefabs.LoadSet()
	if err != nil {
		return nil, err
	}
	def, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}

	g := &Game{
		log:     opts.Log,
		input:   opts.Input,
		prefabs: set,
		def:     def,
		seed:    opts.Seed,
		hud:     hud.New(set.HUD, opts.Log),
	}

	// A broken script only costs the snowmen their scripted patrol.
	if patrol, err := script.LoadPatrol(set.Snowman.Script, opts.Log); err != nil {
		opts.Log.WithError(err).Warn("patrol script unavailable, snowmen roll directions")
	} else {
		g.patrol = patrol
	}

	if err := g.rebuild(); err != nil {
		return nil, err
	}
	g.session = session.New(level.RestartDelay(set.HUD), g.rebuild, opts.Log)

	if opts.Watch {
		dirs := prefabs.DiskDirs()
		if len(dirs) == 0 {
			opts.Log.Warn("watch: no prefabs directory on disk")
		} else if g.watcher, err = prefabs.NewWatcher(dirs...); err != nil {
			return nil, fmt.Errorf("watch prefabs: %w", err)
		}
	}
	return g, nil
}

// rebuild replaces the live level with a fresh copy of the level file.
func (g *Game) rebuild() error {
	lvl, err := level.Build(g.def, level.Deps{
		Prefabs: g.prefabs,
		Input:   g.input,
		Patrol:  g.patrol,
		Seed:    g.seed,
		Log:     g.log,
	})
	if err != nil {
		return err
	}
	if g.level != nil {
		g.level.Close()
	}
	g.level = lvl
	g.attachHUD()
	return nil
}

func (g *Game) attachHUD() {
	p := g.level.Player()
	g.hud.Attach(g.level.Bus(), g.level.Stars(), p.Health(), p.MaxHealth())
}

func (g *Game) Update() error {
	g.drainWatcher()
	g.input.Poll()
	if g.input.PausePressed() {
		g.session.TogglePause()
	}

	if g.session.Paused() {
		if g.pauseUI != nil {
			g.pauseUI.Update()
		}
		return nil
	}

	g.level.Update(tick)
	if g.level.Defeated() && g.session.Playing() {
		g.session.Defeat()
	}
	g.hud.Update(tick)

	if err := g.session.Update(tick); err != nil {
		g.log.WithError(err).Error("restart failed")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.level.Draw(screen)
	g.hud.Draw(screen)

	if g.session.Paused() {
		if g.pauseUI == nil {
			g.pauseUI = NewPauseUI(g)
		}
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the watcher and drops the level's subscriptions.
func (g *Game) Close() error {
	g.hud.Detach()
	g.level.Close()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(c)
		case err := <-g.watcher.Errors:
			if err != nil {
				g.log.WithError(err).Warn("watch error")
			}
		default:
			return
		}
	}
}

// applyChange reloads one edited file into the live game.
func (g *Game) applyChange(c prefabs.Change) {
	log := g.log.WithField("path", c.Path)

	switch c.Kind {
	case prefabs.ChangeSpec:
		if mod, ok := prefabs.ModTime(filepath.Base(c.Path)); ok {
			log = log.WithField("modified", mod.Format(time.TimeOnly))
		}
		changed, err := g.prefabs.Reload(c.Path)
		if err != nil {
			log.WithError(err).Warn("prefab reload failed")
			return
		}
		if !changed {
			return
		}
		g.level.Configure(g.prefabs)
		g.hud.Configure(g.prefabs.HUD)
		g.attachHUD()
		g.session.SetDelay(level.RestartDelay(g.prefabs.HUD))
		log.Info("prefab reloaded")
	case prefabs.ChangeScript:
		if g.patrol == nil || filepath.Base(c.Path) != filepath.Base(g.patrol.Name()) {
			return
		}
		src, err := prefabs.LoadScript(g.patrol.Name())
		if err != nil {
			log.WithError(err).Warn("script read failed")
			return
		}
		if err := g.patrol.Reload(src); err != nil {
			log.WithError(err).Warn("script reload failed, keeping previous version")
			return
		}
		log.Info("patrol script reloaded")
	}
}
