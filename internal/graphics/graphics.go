package graphics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoSurface means the window or its GL context could not be created.
var ErrNoSurface = errors.New("graphics: no render surface")

// Window describes the window to open.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Resizable  bool
	MSAA       bool
	TargetFPS  int32
	Background rl.Color
}

// Hooks are called from the render loop. Any may be nil.
// Init runs once after the window exists (GPU resources may be created there); Close runs before
// the window is destroyed.
type Hooks struct {
	Init   func() error
	Update func(dt float32)
	Draw   func()
	Resize func(w, h int32)
	Close  func()
}

// Run opens the window and runs the loop until it is closed. Each frame it reports a resize, calls
// Update, then clears the screen and calls Draw. It returns ErrNoSurface if the window cannot be
// created, or the error from Init.
func Run(w Window, h Hooks) error {
	var flags uint32
	if w.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if w.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w.Width, w.Height, w.Title)
	if !rl.IsWindowReady() {
		return ErrNoSurface
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(w.TargetFPS)

	if h.Init != nil {
		if err := h.Init(); err != nil {
			return err
		}
	}
	if h.Close != nil {
		defer h.Close()
	}

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() && h.Resize != nil {
			h.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		if h.Update != nil {
			h.Update(rl.GetFrameTime())
		}

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
	}
	return nil
}
