package ui

import "fmt"

// defaultRowHeight is the height of labels, sliders and panel title rows without a CSS height.
const defaultRowHeight = 24

// Document holds the stylesheet and a tree of nodes addressed by id, like a tiny DOM.
// Top-level nodes are laid out against the screen; children stack vertically inside their parent.
// Resolved styles are cached and only recomputed when the sheet or the tree change.
type Document struct {
	sheet      *Stylesheet
	roots      []*Node
	byID       map[string]*Node
	styles     map[*Node]ComputedStyle
	cacheValid bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{byID: make(map[string]*Node)}
}

// SetStylesheet replaces the stylesheet.
func (d *Document) SetStylesheet(sheet *Stylesheet) {
	d.sheet = sheet
	d.cacheValid = false
}

// Stylesheet returns the current stylesheet (may be nil).
func (d *Document) Stylesheet() *Stylesheet {
	return d.sheet
}

// Add appends n under parent, or as a top-level node when parent is nil. Ids must be unique.
func (d *Document) Add(parent, n *Node) (*Node, error) {
	if n.ID != "" {
		if _, dup := d.byID[n.ID]; dup {
			return nil, fmt.Errorf("duplicate element id %q", n.ID)
		}
		d.byID[n.ID] = n
	}
	n.Parent = parent
	if parent == nil {
		d.roots = append(d.roots, n)
	} else {
		parent.Children = append(parent.Children, n)
	}
	d.cacheValid = false
	return n, nil
}

// ElementByID returns the node with id.
func (d *Document) ElementByID(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Has reports whether an element with id exists.
func (d *Document) Has(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// Show makes the element visible. Returns false when it does not exist.
func (d *Document) Show(id string) bool {
	n, ok := d.byID[id]
	if ok {
		n.Show()
	}
	return ok
}

// Hide hides the element. Returns false when it does not exist.
func (d *Document) Hide(id string) bool {
	n, ok := d.byID[id]
	if ok {
		n.Hide()
	}
	return ok
}

// Displayed reports whether the element itself is shown, ignoring its ancestors.
func (d *Document) Displayed(id string) bool {
	n, ok := d.byID[id]
	return ok && n.displayed(d.Style(n))
}

// Visible reports whether n and all its ancestors are shown.
func (d *Document) Visible(n *Node) bool {
	for ; n != nil; n = n.Parent {
		if !n.displayed(d.Style(n)) {
			return false
		}
	}
	return true
}

// SetValue sets a slider's value without notifying listeners. Returns false when id does not exist.
func (d *Document) SetValue(id string, v float64) bool {
	n, ok := d.byID[id]
	if ok {
		n.Value = n.snap(v)
	}
	return ok
}

// OnInput registers fn to receive the element's value on every input event.
// Returns false when id does not exist.
func (d *Document) OnInput(id string, fn func(value float64)) bool {
	n, ok := d.byID[id]
	if ok {
		n.listeners = append(n.listeners, fn)
	}
	return ok
}

// Input sets the element's value as user input would and dispatches it to the listeners in
// registration order. Like a DOM input event, nothing fires when the snapped value is unchanged.
// Returns false when id does not exist.
func (d *Document) Input(id string, v float64) bool {
	n, ok := d.byID[id]
	if !ok {
		return false
	}
	v = n.snap(v)
	if v == n.Value {
		return true
	}
	n.Value = v
	for _, fn := range n.listeners {
		fn(n.Value)
	}
	return true
}

// Style returns the resolved style for n (class, id and type matched; last wins).
func (d *Document) Style(n *Node) ComputedStyle {
	d.ensureStyles()
	if s, ok := d.styles[n]; ok {
		return s
	}
	return DefaultComputedStyle()
}

func (d *Document) ensureStyles() {
	if d.cacheValid {
		return
	}
	d.styles = make(map[*Node]ComputedStyle)
	var resolve func(nodes []*Node)
	resolve = func(nodes []*Node) {
		for _, n := range nodes {
			d.styles[n] = ResolveProps(d.resolveProps(n))
			resolve(n.Children)
		}
	}
	resolve(d.roots)
	d.cacheValid = true
}

func (d *Document) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if d.sheet == nil {
		return merged
	}
	for _, rule := range d.sheet.Rules {
		if !rule.Matches(n) {
			continue
		}
		for k, v := range rule.Props {
			merged[k] = v
		}
	}
	return merged
}

// Layout computes Bounds for every visible node against a screen of w×h pixels.
func (d *Document) Layout(w, h int32) {
	for _, n := range d.roots {
		style := d.Style(n)
		if !n.displayed(style) {
			continue
		}
		width := float32(style.Width)
		if width <= 0 {
			width = float32(w)
		}
		height := d.measure(n, width)
		x := float32(style.Left)
		y := float32(style.Top)
		if style.LeftPct >= 0 {
			x = (float32(w) - width) * float32(style.LeftPct) / 100
		}
		if style.TopPct >= 0 {
			y = (float32(h) - height) * float32(style.TopPct) / 100
		}
		d.place(n, x, y, width)
	}
}

// measure returns the height n takes when laid out at width.
func (d *Document) measure(n *Node, width float32) float32 {
	style := d.Style(n)
	if style.Height > 0 {
		return float32(style.Height)
	}
	if len(n.Children) == 0 && n.Type != TypePanel {
		return defaultRowHeight
	}
	pad := float32(style.Padding)
	h := 2 * pad
	if n.Text != "" {
		h += defaultRowHeight
	}
	inner := d.innerWidth(n, width)
	first := true
	for _, c := range n.Children {
		if !c.displayed(d.Style(c)) {
			continue
		}
		if !first {
			h += float32(style.Gap)
		}
		h += d.measure(c, inner)
		first = false
	}
	return h
}

func (d *Document) innerWidth(n *Node, width float32) float32 {
	return width - 2*float32(d.Style(n).Padding)
}

func (d *Document) place(n *Node, x, y, width float32) {
	style := d.Style(n)
	w := width
	if style.Width > 0 && float32(style.Width) < width {
		w = float32(style.Width)
	}
	n.Bounds = Rect{X: x, Y: y, Width: w, Height: d.measure(n, w)}

	pad := float32(style.Padding)
	cy := y + pad
	if n.Text != "" && (n.Type == TypePanel || len(n.Children) > 0) {
		cy += defaultRowHeight
	}
	inner := d.innerWidth(n, w)
	for _, c := range n.Children {
		if !c.displayed(d.Style(c)) {
			continue
		}
		d.place(c, x+pad, cy, inner)
		cy += c.Bounds.Height + float32(style.Gap)
	}
}

// Walk calls fn for every visible node, parents before children, in document order.
func (d *Document) Walk(fn func(n *Node, style ComputedStyle)) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			style := d.Style(n)
			if !n.displayed(style) {
				continue
			}
			fn(n, style)
			walk(n.Children)
		}
	}
	walk(d.roots)
}

// HitTest reports whether (x, y) falls on a visible top-level node. Bounds come from the last Layout.
func (d *Document) HitTest(x, y float32) bool {
	for _, n := range d.roots {
		if n.displayed(d.Style(n)) && n.Bounds.Contains(x, y) {
			return true
		}
	}
	return false
}
