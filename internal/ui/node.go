package ui

// Node types understood by the layout and the overlay.
const (
	TypePanel  = "panel"
	TypeLabel  = "label"
	TypeSlider = "slider"
)

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label or slider. It has optional class and id for CSS
// matching, bounds computed by Layout, and optional text (panel title, label text, slider caption).
// Sliders carry a value within [Min, Max], snapped to Step when Step > 0.
type Node struct {
	Type   string
	Class  string
	ID     string
	Text   string
	Bounds Rect

	Min, Max, Step, Value float64

	Parent   *Node
	Children []*Node

	// display is the inline override set by Show/Hide; empty defers to the stylesheet.
	display   string
	listeners []func(value float64)
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// NewSlider creates a slider node with its range and initial value.
func NewSlider(class, id, text string, min, max, step, value float64) *Node {
	n := NewNode(TypeSlider, class, id, text)
	n.Min, n.Max, n.Step = min, max, step
	n.Value = n.snap(value)
	return n
}

// Show forces the node visible, overriding a stylesheet display: none.
func (n *Node) Show() { n.display = "block" }

// Hide forces the node hidden.
func (n *Node) Hide() { n.display = "none" }

// displayed resolves the node's own display against its computed style, ignoring ancestors.
func (n *Node) displayed(style ComputedStyle) bool {
	if n.display != "" {
		return n.display != "none"
	}
	return style.Display != "none"
}

// snap clamps v to the slider range and rounds it to the step.
func (n *Node) snap(v float64) float64 {
	if n.Step > 0 {
		steps := (v - n.Min) / n.Step
		if steps >= 0 {
			steps = float64(int64(steps + 0.5))
		} else {
			steps = float64(int64(steps - 0.5))
		}
		v = n.Min + steps*n.Step
	}
	if n.Max > n.Min {
		if v < n.Min {
			v = n.Min
		}
		if v > n.Max {
			v = n.Max
		}
	}
	return v
}
