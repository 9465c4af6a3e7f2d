package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/relic/internal/config"
	"github.com/taigrr/relic/internal/logger"
	"github.com/taigrr/relic/pkg/bsp"
	"github.com/taigrr/relic/pkg/fixed"
	"github.com/taigrr/relic/pkg/mesh"
	"github.com/taigrr/relic/pkg/render"
)

// scene pairs a loaded model with its optional partition tree.
type scene struct {
	model *mesh.Model
	tree  *bsp.Tree
}

func loadTextModel(path string) (*mesh.Model, error) {
	m, err := mesh.LoadOBJ(path)
	if err != nil {
		// A vertices-only model is still viewable as a point cloud;
		// log the face failure and keep going.
		if m != nil && m.VertexCount() > 0 {
			logger.Warn("faces rejected, showing vertices only",
				zap.String("file", path), zap.Error(err))
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

func loadGLBModel(path string) (*mesh.Model, error) {
	return mesh.LoadGLB(path)
}

func loadBSPScene(path string) (*mesh.Model, *bsp.Tree, error) {
	return bsp.LoadFile(path)
}

// state names the explicit steps of the interaction loop.
type state int

const (
	stateLoadModel state = iota
	stateConfigureObserver
	stateRenderFrame
	stateAwaitInput
	stateExit
)

// springParam animates one observer parameter toward its target.
type springParam struct {
	spring   harmonica.Spring
	pos, vel float64
	target   float64
}

func newSpringParam(fps int, initial float64) springParam {
	return springParam{
		// Critically damped: settle on the target without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		pos:    initial,
		target: initial,
	}
}

func (p *springParam) update() {
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.target)
}

func (p *springParam) settled() bool {
	d := p.pos - p.target
	return d > -0.01 && d < 0.01
}

// viewer runs the interactive loop as an explicit finite-state machine.
type viewer struct {
	cfg           *config.Config
	paths         []string
	current       int
	screenshotDir string

	scenes   *scene
	observer render.Observer
	mode     string

	angleH, angleV, angleW, distance springParam

	fb       *render.Framebuffer
	renderer *render.Renderer
	stats    render.FrameStats

	showInfo    bool
	showHelp    bool
	showPalette bool
	notice      string

	term          *uv.Terminal
	width, height int
}

func newViewer(cfg *config.Config, paths []string, screenshotDir string) (*viewer, error) {
	fb, err := render.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return nil, err
	}
	vp := render.Viewport{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Scale:  fixed.FromFloat(cfg.Render.Scale),
	}
	r := render.NewRenderer(render.NewRasterContext(fb), vp)
	r.SetOutline(cfg.Render.Outline)
	return &viewer{
		cfg:           cfg,
		paths:         paths,
		screenshotDir: screenshotDir,
		mode:          cfg.Render.Mode,
		fb:            fb,
		renderer:      r,
	}, nil
}

// Run drives the state machine until Exit.
func (v *viewer) Run(ctx context.Context) error {
	term := uv.DefaultTerminal()
	v.term = term

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	v.width, v.height = width, height

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	frame := time.Second / time.Duration(v.cfg.Display.TargetFPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	st := stateLoadModel
	for st != stateExit {
		switch st {
		case stateLoadModel:
			st = v.doLoadModel()
		case stateConfigureObserver:
			st = v.doConfigureObserver()
		case stateRenderFrame:
			st = v.doRenderFrame()
		case stateAwaitInput:
			st = v.doAwaitInput(ctx, ticker.C)
		}
	}
	return nil
}

func (v *viewer) doLoadModel() state {
	path := v.paths[v.current]
	s, err := loadScene(path)
	if err != nil {
		logger.Error("load failed", zap.String("file", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "load %s: %v\n", path, err)
		return stateExit
	}
	logLoaded(s, path)
	v.scenes = s
	if v.mode == "bsp" && s.tree == nil {
		logger.Warn("no bsp tree in scene, falling back to depth sort",
			zap.String("file", path))
		v.mode = "sort"
	}
	return stateConfigureObserver
}

func (v *viewer) doConfigureObserver() state {
	oc := v.cfg.Observer
	v.observer = render.Observer{
		AngleH:   fixed.WrapDegrees(oc.AngleH),
		AngleV:   fixed.WrapDegrees(oc.AngleV),
		AngleW:   fixed.WrapDegrees(oc.AngleW),
		Distance: fixed.FromFloat(oc.Distance),
	}
	fps := v.cfg.Display.TargetFPS
	v.angleH = newSpringParam(fps, float64(v.observer.AngleH))
	v.angleV = newSpringParam(fps, float64(v.observer.AngleV))
	v.angleW = newSpringParam(fps, float64(v.observer.AngleW))
	v.distance = newSpringParam(fps, oc.Distance)
	return stateRenderFrame
}

func (v *viewer) doRenderFrame() state {
	v.angleH.update()
	v.angleV.update()
	v.angleW.update()
	v.distance.update()

	v.observer.AngleH = fixed.WrapDegrees(int(v.angleH.pos + 0.5))
	v.observer.AngleV = fixed.WrapDegrees(int(v.angleV.pos + 0.5))
	v.observer.AngleW = fixed.WrapDegrees(int(v.angleW.pos + 0.5))
	v.observer.Distance = fixed.FromFloat(v.distance.pos)

	if v.mode == "bsp" && v.scenes.tree != nil {
		v.stats = v.renderer.FrameBSP(v.scenes.model, v.scenes.tree, v.observer)
	} else {
		v.stats = v.renderer.Frame(v.scenes.model, v.observer)
	}
	if v.showPalette {
		v.fb.DrawPaletteStrip(v.fb.Height()-10, v.fb.Width()/16, 8)
	}

	v.present()
	return stateAwaitInput
}

func (v *viewer) doAwaitInput(ctx context.Context, tick <-chan time.Time) state {
	for {
		select {
		case <-ctx.Done():
			return stateExit

		case <-tick:
			// Keep animating until every spring has settled.
			if !v.angleH.settled() || !v.angleV.settled() ||
				!v.angleW.settled() || !v.distance.settled() {
				return stateRenderFrame
			}

		case ev, ok := <-v.term.Events():
			if !ok {
				return stateExit
			}
			if next, handled := v.handleEvent(ev); handled {
				return next
			}
		}
	}
}

// handleEvent maps one terminal event to a state transition. The second
// return is false when the event changes nothing.
func (v *viewer) handleEvent(ev uv.Event) (state, bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.width, v.height = ev.Width, ev.Height
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		return stateRenderFrame, true

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
			return stateExit, true
		case ev.MatchString("left"):
			v.angleH.target -= 10
			return stateRenderFrame, true
		case ev.MatchString("right"):
			v.angleH.target += 10
			return stateRenderFrame, true
		case ev.MatchString("up"):
			v.angleV.target += 10
			return stateRenderFrame, true
		case ev.MatchString("down"):
			v.angleV.target -= 10
			return stateRenderFrame, true
		case ev.MatchString("w"):
			v.angleW.target -= 10
			return stateRenderFrame, true
		case ev.MatchString("x"):
			v.angleW.target += 10
			return stateRenderFrame, true
		case ev.MatchString("a"):
			v.distance.target *= 1.1
			return stateRenderFrame, true
		case ev.MatchString("z"):
			v.distance.target /= 1.1
			return stateRenderFrame, true
		case ev.MatchString("space"):
			v.showInfo = !v.showInfo
			return stateRenderFrame, true
		case ev.MatchString("c"):
			v.showPalette = !v.showPalette
			return stateRenderFrame, true
		case ev.MatchString("h"), ev.MatchString("?"):
			v.showHelp = !v.showHelp
			return stateRenderFrame, true
		case ev.MatchString("b"):
			if v.mode == "sort" && v.scenes.tree != nil {
				v.mode = "bsp"
			} else {
				v.mode = "sort"
			}
			v.notice = "mode: " + v.mode
			return stateRenderFrame, true
		case ev.MatchString("s"):
			name := screenshotName(v.screenshotDir)
			if err := v.fb.SavePNG(name); err != nil {
				logger.Error("screenshot failed", zap.Error(err))
				v.notice = "screenshot failed"
			} else {
				logger.Info("screenshot saved", zap.String("file", name))
				v.notice = "saved " + name
			}
			return stateRenderFrame, true
		case ev.MatchString("n"):
			v.current = (v.current + 1) % len(v.paths)
			return stateLoadModel, true
		}
	}
	return stateAwaitInput, false
}
