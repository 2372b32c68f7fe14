package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ebitenui/ebitenui"

	"github.com/yeginemre/Candleabra/common"
	"github.com/yeginemre/Candleabra/config"
	"github.com/yeginemre/Candleabra/levels"
	"github.com/yeginemre/Candleabra/obj"
)

// tick is the fixed simulation step. Ebiten calls Update at 60 TPS.
const tick = 1.0 / 60.0

type Game struct {
	frames int
	paused bool
	debug  bool

	cfg config.Config

	input     *obj.Input
	player    *obj.Player
	sequencer *obj.Sequencer
	camera    *obj.Camera
	world     *obj.CollisionWorld

	watcher *config.Watcher
	pauseUI *ebitenui.UI
}

func NewGame(cfgPath string, debug bool) (*Game, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("failed to load config %s: %v; using defaults", cfgPath, err)
		cfg = config.Default()
	}

	specs, err := levels.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading segments: %w", err)
	}

	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight, 1, cfg.CameraTransitionSpeed)
	world := obj.NewCollisionWorld()
	input := obj.NewInput()
	player := obj.NewPlayer(0, 0, input, world, cfg)
	sequencer := obj.NewSequencer(specs, camera, player, cfg)

	for _, seg := range sequencer.Segments() {
		world.AddSegmentGeometry(seg)
	}

	player.SetEvents(sequencer)
	player.SetRegistry(sequencer)
	sequencer.RespawnPlayerAndCollectables()

	g := &Game{
		debug:     debug,
		cfg:       cfg,
		input:     input,
		player:    player,
		sequencer: sequencer,
		camera:    camera,
		world:     world,
	}

	watcher, err := config.NewWatcher(cfgPath)
	if err != nil {
		log.Printf("config watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	return g, nil
}

func (g *Game) applyConfig(cfg config.Config) {
	g.cfg = cfg
	g.player.SetConfig(cfg)
	g.sequencer.SetConfig(cfg)
	g.camera.SetSpeed(cfg.CameraTransitionSpeed)
	log.Printf("config reloaded")
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()

	if g.watcher != nil {
		select {
		case cfg := <-g.watcher.Events:
			g.applyConfig(cfg)
		case err := <-g.watcher.Errors:
			log.Printf("config watch: %v", err)
		default:
		}
	}

	if g.input.PausePressed {
		g.paused = !g.paused
		if g.paused && g.pauseUI == nil {
			g.pauseUI = NewPauseUI(g)
		}
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	// Order matters: the sequencer reads the position the physics step
	// settled on last frame, before this frame's step runs.
	g.player.Update(tick)
	g.sequencer.Update(tick)
	g.world.BeginStep()
	g.world.Step(tick)
	g.player.SyncFromBody(tick)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera.ViewTopLeft()
	g.camera.Render(screen, func(world *ebiten.Image) {
		for _, seg := range g.sequencer.Segments() {
			seg.Draw(world, camX, camY)
		}
		g.player.Draw(world, camX, camY)
		if g.debug {
			g.world.DebugDraw(world, camX, camY)
		}
	})

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}

	if g.debug {
		px, py := g.player.Position()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"Frames: %d    FPS: %.2f\nSegment: %d    Pos: (%.0f, %.0f)    Melt: %.2f",
			g.frames, ebiten.ActualFPS(),
			g.sequencer.ActiveIndex(), px, py, g.player.MeltRatio(),
		))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
