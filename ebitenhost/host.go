package ebitenhost

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	viewer "github.com/ahnaineh/custom-interactive-viewer"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/math/f64"
)

// Viewer draws one content image under an interactive transform.
type Viewer struct {
	Controller *viewer.Controller
	Gestures   *viewer.GestureTracker

	// Script, when set, is stepped once per tick before input is polled.
	Script *viewer.ScriptRunner

	// Background fills the screen before the content is drawn.
	Background color.Color

	// ShowStats overlays FPS, TPS, and the current transform.
	ShowStats bool

	ticker   *viewer.FrameTicker
	content  *ebiten.Image
	viewport viewer.Size
	hasSize  bool
	id       uuid.UUID
	input    inputState
}

// New creates a Viewer for content configured by cfg and attaches its
// controller.
func New(content *ebiten.Image, cfg viewer.Config) (*Viewer, error) {
	if content == nil {
		return nil, fmt.Errorf("ebitenhost: nil content image")
	}
	v := &Viewer{
		Background: color.RGBA{0x1e, 0x1e, 0x28, 0xff},
		ticker:     viewer.NewFrameTicker(),
		content:    content,
		id:         uuid.New(),
	}
	b := content.Bounds()
	contentSize := viewer.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}

	opts := cfg.Options()
	opts.ContentSize = viewer.FixedSize(contentSize)
	opts.ViewportSize = v.viewportSize
	opts.TickSource = v.ticker
	v.Controller = viewer.NewController(opts)
	v.Gestures = viewer.NewGestureTracker(v.Controller, cfg.GestureConfig())

	if err := v.Controller.Attach(v.id); err != nil {
		return nil, fmt.Errorf("ebitenhost: %w", err)
	}
	viewer.Logger().Info("viewer created",
		slog.String("id", v.id.String()),
		slog.Float64("content_w", contentSize.Width),
		slog.Float64("content_h", contentSize.Height))
	return v, nil
}

// Close detaches and disposes the controller.
func (v *Viewer) Close() error {
	if v.Controller.IsDisposed() {
		return nil
	}
	err := v.Controller.Detach(v.id)
	v.Controller.Dispose()
	return err
}

func (v *Viewer) viewportSize() (viewer.Size, bool) {
	return v.viewport, v.hasSize
}

// frameDuration is the length of one game-loop tick.
func frameDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	dt := frameDuration()
	if v.Script != nil {
		v.Script.Step(v.Controller, v.Gestures)
		if err := v.Script.Err(); err != nil {
			return err
		}
	}
	v.Gestures.Update(dt)
	v.pollInput()
	v.ticker.Advance(dt)
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.Background != nil {
		screen.Fill(v.Background)
	}
	ctx := v.Controller.Context()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = GeoM(v.Controller.State().ScreenMatrix(ctx.AlignmentOrigin, ctx.AlignmentOffset))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(v.content, op)

	if v.ShowStats {
		s := v.Controller.State()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscale: %.3f\noffset: %.1f, %.1f\nrotation: %.3f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), s.Scale, s.Offset.X, s.Offset.Y, s.Rotation))
	}
}

// Layout implements ebiten.Game. The viewport always matches the window.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := viewer.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	if !v.hasSize || size != v.viewport {
		v.viewport = size
		v.hasSize = true
		viewer.Logger().Debug("viewport resized", slog.Int("w", outsideWidth), slog.Int("h", outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// GeoM converts a row-major affine matrix into an ebiten.GeoM.
func GeoM(m f64.Aff3) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[1])
	g.SetElement(0, 2, m[2])
	g.SetElement(1, 0, m[3])
	g.SetElement(1, 1, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a resizable window and runs v until the window closes.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
