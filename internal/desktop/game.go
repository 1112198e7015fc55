// Package desktop hosts the scene in an ebiten window.
package desktop

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/surface"
)

type Options struct {
	Title      string
	Width      int
	Height     int
	TPS        int
	HUD        bool
	Background scene.RGB
}

// Game is an ebiten.Game acting as a surface host. Frames are flushed from
// Update into an offscreen image that Draw copies to the screen.
type Game struct {
	surface.FrameQueue
	surface.Events

	opts    Options
	canvas  *imageCanvas
	mgr     *surface.Manager
	w, h    float64
	resized bool
	cx, cy  int
	showHUD bool
	paused  bool
}

func NewGame(o Options) *Game {
	return &Game{opts: o, canvas: newImageCanvas(o.Background), showHUD: o.HUD}
}

// Run opens the window and blocks until it is closed.
func Run(o Options, mo surface.Options) error {
	ebiten.SetWindowSize(o.Width, o.Height)
	ebiten.SetWindowTitle(o.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(o.TPS)

	g := NewGame(o)
	g.mgr = surface.NewManager(g, mo)
	if err := g.mgr.Mount(); err != nil {
		return fmt.Errorf("mount ebiten surface: %w", err)
	}
	defer g.mgr.Unmount()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) Canvas() (surface.Canvas, bool) { return g.canvas, true }
func (g *Game) Bounds() (float64, float64)     { return g.w, g.h }
func (g *Game) Origin() (float64, float64)     { return 0, 0 }

func (g *Game) PixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if g.resized {
		g.resized = false
		g.EmitResize()
	}

	// The cursor is reported in screen pixels, which are physical here.
	if cx, cy := ebiten.CursorPosition(); cx != g.cx || cy != g.cy {
		g.cx, g.cy = cx, cy
		s := g.canvas.scale
		g.EmitPointer(float64(cx)/s, float64(cy)/s)
	}

	if !g.paused {
		g.Flush()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.present(screen)
	if g.showHUD && g.mgr != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  TICKS %d  DPR %.1f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.mgr.Ticks(), g.mgr.PixelRatio()))
	}
}

// Layout records the logical window size and asks for a screen matching
// the canvas backing store.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.resized = true
	}
	if bw, bh := g.canvas.size(); bw > 0 && bh > 0 {
		return bw, bh
	}
	s := math.Min(g.PixelRatio(), surface.MaxPixelRatio)
	return int(math.Round(w * s)), int(math.Round(h * s))
}
