package scatter

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is the clear color. Zero selects a dark grey.
	Background color.Color
	// Source overrides the default EbitenSource.
	Source Source
}

var (
	defaultBackground = color.RGBA{0x23, 0x1e, 0x2d, 0xff}
	boundsColor       = color.RGBA{0x80, 0x80, 0x90, 0xff}
	outlineColor      = color.RGBA{0x4d, 0xb3, 0xe6, 0xff}
	activeColor       = color.RGBA{0xff, 0xb3, 0x33, 0xff}
)

// game is the ebiten.Game driving a Stage.
type game struct {
	stage *Stage
	cfg   RunConfig
	views map[uint32]*View
}

// Run opens a window and drives stage until the window is closed. Each
// object is presented through a View and drawn as its outline.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("scatter: run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Background == nil {
		cfg.Background = defaultBackground
	}
	src := cfg.Source
	if src == nil {
		src = NewEbitenSource(stage.element)
	}
	stage.SetSource(src)

	g := &game{stage: stage, cfg: cfg, views: map[uint32]*View{}}
	stage.OnTransform(func(ev TransformEvent) {
		g.view(ev.Target).Apply(ev)
	})

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(g)
}

func (g *game) view(o *Scatter) *View {
	v, ok := g.views[o.ID]
	if !ok {
		v = NewView(o)
		g.views[o.ID] = v
	}
	return v
}

func (g *game) Update() error {
	g.stage.Update()
	dt := float32(1.0 / float64(ebiten.TPS()))
	for _, v := range g.views {
		v.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	view := g.stage.View()
	if b := g.stage.Bounds(); b != nil {
		pts := b.Absolute()
		for i, p := range pts {
			pts[i] = transformPoint(view, p)
		}
		strokePolygon(screen, pts, boundsColor)
	}
	for _, o := range g.stage.Objects() {
		c := outlineColor
		if o.IsDragging() || o.IsThrowing() {
			c = activeColor
		}
		corners := g.view(o).DeviceCorners(view)
		strokePolygon(screen, corners[:], c)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(w, h int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// strokePolygon draws the closed outline of pts, given in device space.
func strokePolygon(dst *ebiten.Image, pts []Vec2, clr color.Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}
}
