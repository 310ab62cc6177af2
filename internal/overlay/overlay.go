package overlay

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"primitive-playground/internal/ui"
)

const (
	fontSize = 16
	// sliderLabelWidth is the space left of a slider for its caption.
	sliderLabelWidth = 80
	// valueEpsilon ignores float noise from raygui when the slider was not moved.
	valueEpsilon = 1e-6
)

// Overlay draws a ui.Document with raylib and raygui and turns slider drags into input events.
type Overlay struct {
	doc     *ui.Document
	pending []input
}

type input struct {
	id    string
	value float64
}

// New returns an overlay for doc and applies the dark raygui theme. Call after the window exists.
func New(doc *ui.Document) *Overlay {
	initStyle()
	return &Overlay{doc: doc}
}

// initStyle sets up a dark theme for raygui widgets.
func initStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(30, 30, 35, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 50, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(60, 60, 70, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(70, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(200, 200, 200, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.Yellow))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 90, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(100, 100, 120, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, fontSize)
}

// Draw lays the document out for the current screen and draws every visible node, parents first.
// Slider changes are dispatched after the walk, so listeners may show or hide nodes freely.
func (o *Overlay) Draw() {
	o.doc.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	o.pending = o.pending[:0]
	o.doc.Walk(o.drawNode)
	for _, in := range o.pending {
		o.doc.Input(in.id, in.value)
	}
}

func (o *Overlay) drawNode(n *ui.Node, style ui.ComputedStyle) {
	b := n.Bounds
	x, y, w, h := int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height)

	if n.Type == ui.TypeSlider {
		o.drawSlider(n, style)
		return
	}
	if style.Background.A > 0 {
		rl.DrawRectangle(x, y, w, h, style.Background)
	}
	if style.HasBorder && w > 0 && h > 0 {
		rl.DrawRectangleLines(x, y, w, h, style.Border)
	}
	if n.Text == "" {
		return
	}
	pad := style.Padding
	rl.DrawText(n.Text, x+pad, y+pad, fontSize, style.Color)
}

func (o *Overlay) drawSlider(n *ui.Node, style ui.ComputedStyle) {
	b := n.Bounds
	rl.DrawText(n.Text, int32(b.X), int32(b.Y)+(int32(b.Height)-fontSize)/2, fontSize, style.Color)
	bounds := rl.NewRectangle(b.X+sliderLabelWidth, b.Y, b.Width-sliderLabelWidth-40, b.Height)
	v := gui.Slider(bounds, "", formatValue(n), float32(n.Value), float32(n.Min), float32(n.Max))
	if math.Abs(float64(v)-n.Value) > valueEpsilon {
		o.pending = append(o.pending, input{id: n.ID, value: float64(v)})
	}
}

// formatValue shows integer-stepped sliders without decimals.
func formatValue(n *ui.Node) string {
	if n.Step >= 1 && n.Step == math.Trunc(n.Step) {
		return fmt.Sprintf("%d", int(n.Value))
	}
	return fmt.Sprintf("%.2f", n.Value)
}
