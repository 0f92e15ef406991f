package mrkit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the debug viewer started by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// PixelsPerUnit scales world units to screen pixels. Defaults to 2.
	PixelsPerUnit float64
	// Center is the world point drawn at the middle of the window.
	Center     mgl64.Vec3
	ClearColor Color
	ShowFPS    bool
	// Mouse, when set, is moved under the cursor on the plane z = MouseHeight
	// and pinches while the left button is held. It is added to the world on
	// the first frame.
	Mouse       *Pointer
	MouseHeight float64
	// TouchPointers is the size of the pointer pool driven by screen touches.
	TouchPointers int
	// ScreenshotDir receives PNGs captured with F12. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Viewer is the ebiten.Game that steps a World and draws it from above.
type Viewer struct {
	world *World
	cfg   RunConfig
	view  view
	input inputDriver
	fps   *fpsOverlay
	cmds  []RenderCommand

	screenshotQueue []string
}

// NewViewer creates a viewer for w. Use it directly with ebiten.RunGame to
// customize the window, or call Run.
func NewViewer(w *World, cfg RunConfig) *Viewer {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.PixelsPerUnit <= 0 {
		cfg.PixelsPerUnit = 2
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.ClearColor == (Color{}) {
		cfg.ClearColor = Color{R: 0.118, G: 0.118, B: 0.157, A: 1}
	}
	v := &Viewer{
		world: w,
		cfg:   cfg,
		view: view{
			center: cfg.Center,
			ppu:    cfg.PixelsPerUnit,
			width:  cfg.Width,
			height: cfg.Height,
		},
		input: inputDriver{mouse: cfg.Mouse, mouseHeight: cfg.MouseHeight},
	}
	n := min(cfg.TouchPointers, maxTouchPointers)
	for i := 0; i < n; i++ {
		v.input.touches = append(v.input.touches, NewPointer(fmt.Sprintf("touch%d", i)))
	}
	return v
}

// Run opens a window and runs w until the window is closed or the world's
// update function returns an error.
func Run(w *World, cfg RunConfig) error {
	v := NewViewer(w, cfg)
	if v.cfg.Title != "" {
		ebiten.SetWindowTitle(v.cfg.Title)
	}
	ebiten.SetWindowSize(v.cfg.Width, v.cfg.Height)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	v.input.processInput(v.world, v.view)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.Screenshot("viewer")
	}
	if err := v.world.Update(); err != nil {
		return err
	}
	if v.cfg.ShowFPS {
		if v.fps == nil {
			v.fps = newFPSOverlay()
		}
		v.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorToRGBA(v.cfg.ClearColor))
	v.cmds = v.view.commands(v.world, v.cmds)
	submit(screen, v.cmds)
	if v.fps != nil {
		v.fps.draw(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.cfg.Width, v.cfg.Height
}

// ScreenToWorld converts a window position to world space on the plane at
// height z.
func (v *Viewer) ScreenToWorld(sx, sy, z float64) mgl64.Vec3 {
	return v.view.toWorld(sx, sy, z)
}

// WorldToScreen converts a world position to window coordinates.
func (v *Viewer) WorldToScreen(p mgl64.Vec3) (float64, float64) {
	x, y := v.view.toScreen(p)
	return float64(x), float64(y)
}
