package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/surface"
)

// HUD colors.
var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(6, 182, 212, 200)
)

type Options struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	HUD        bool
	FontPath   string
	Background scene.RGB
}

// Window is a raylib window acting as a surface host. Frames are flushed
// once per display refresh into an offscreen render texture.
type Window struct {
	surface.FrameQueue
	surface.Events

	opts      Options
	canvas    *textureCanvas
	font      rl.Font
	paused    bool
	showHUD   bool
	telemetry *metrics.Telemetry
	mgr       *surface.Manager
}

func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

func loadFont(path string) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed.
func Run(o Options, mo surface.Options) error {
	initWindow(o)
	defer rl.CloseWindow()

	w := &Window{
		opts:      o,
		canvas:    newTextureCanvas(o.Background),
		font:      loadFont(o.FontPath),
		showHUD:   o.HUD,
		telemetry: metrics.NewTelemetry(metrics.NewMeanSpeed(), 200),
	}
	defer w.canvas.unload()

	mo.Observers = append(append([]sim.Observer(nil), mo.Observers...), w.telemetry)
	w.mgr = surface.NewManager(w, mo)
	if err := w.mgr.Mount(); err != nil {
		return fmt.Errorf("mount window surface: %w", err)
	}
	defer w.mgr.Unmount()

	for !rl.WindowShouldClose() {
		if quit := w.Update(); quit {
			break
		}
		w.Draw()
	}
	return nil
}

func (w *Window) Canvas() (surface.Canvas, bool) {
	if !rl.IsWindowReady() {
		return nil, false
	}
	return w.canvas, true
}

func (w *Window) Bounds() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (w *Window) Origin() (float64, float64) { return 0, 0 }

func (w *Window) PixelRatio() float64 {
	return float64(rl.GetWindowScaleDPI().X)
}

// Update forwards window input to the listeners and reports whether the
// user asked to quit.
func (w *Window) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		w.paused = !w.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.showHUD = !w.showHUD
	}

	if rl.IsWindowResized() {
		w.EmitResize()
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		p := rl.GetMousePosition()
		w.EmitPointer(float64(p.X), float64(p.Y))
	}
	return false
}

func (w *Window) Draw() {
	if !w.paused {
		rl.BeginTextureMode(w.canvas.target)
		w.Flush()
		rl.EndTextureMode()
	}

	rl.BeginDrawing()
	rl.ClearBackground(w.canvas.background)
	w.canvas.blit(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	if w.showHUD {
		w.drawHUD()
	}
	rl.EndDrawing()
}

func (w *Window) drawHUD() {
	w.drawText(w.opts.Title, 30, 30, 24, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if w.paused {
		status = "PAUSED"
		col = ColTextDim
	}
	w.drawText(status, int(rl.GetScreenWidth())-130, 30, 16, col)

	h := int(rl.GetScreenHeight())
	w.drawTelemetry(30, h-120)
	w.drawText(fmt.Sprintf("%d FPS  %d TICKS  DPR %.1f", rl.GetFPS(), w.mgr.Ticks(), w.mgr.PixelRatio()), 30, h-40, 14, ColTextDim)
	w.drawText("[SPACE] PAUSE  [H] HUD  [Q] QUIT", int(rl.GetScreenWidth())-330, h-40, 14, ColTextDim)
}

func (w *Window) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(w.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (w *Window) drawTelemetry(rectX, rectY int) {
	values := w.telemetry.Values()
	if len(values) < 2 {
		return
	}
	width, height := 400, 60

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := float32(rectX) + (float32(i)/float32(len(values)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	w.drawText(fmt.Sprintf("v: %.3f", values[len(values)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
