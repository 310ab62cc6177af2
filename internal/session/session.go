package session

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"primitive-playground/internal/animation"
	"primitive-playground/internal/logger"
	"primitive-playground/internal/primitives"
)

var (
	// ErrUnknownControl is returned by HandleControl for names outside Bindings.
	ErrUnknownControl = errors.New("unknown control")
	// ErrMissingControl is returned by BindControls when the UI lacks one of the controls.
	ErrMissingControl = errors.New("missing control")
)

// Engine is the rendering collaborator. It owns every mesh; the session only keeps handles.
type Engine interface {
	CreatePrimitive(shape primitives.Shape) (primitives.Handle, error)
	Dispose(h primitives.Handle)
	Position(h primitives.Handle) (mgl32.Vec3, bool)
	SetPosition(h primitives.Handle, p mgl32.Vec3)
	Scale(h primitives.Handle) (mgl32.Vec3, bool)
	SetScale(h primitives.Handle, s mgl32.Vec3)
	SetRotation(h primitives.Handle, q mgl32.Quat)
	OnPick(kind primitives.Kind, fn func(h primitives.Handle))
	PlayAnimation(h primitives.Handle, anim *animation.Animation, from, to float32, loop bool)
}

// Panels toggles named containers and writes control values without firing input events.
type Panels interface {
	Has(id string) bool
	Show(id string) bool
	Hide(id string) bool
	SetValue(id string, v float64) bool
}

// Inputs delivers input events from named controls.
type Inputs interface {
	Has(id string) bool
	OnInput(id string, fn func(value float64)) bool
}

// Feedback is notified of selections and rebuilds, e.g. to play a sound.
type Feedback interface {
	Blip()
	Click()
}

// Placement is where a primitive starts in the scene.
type Placement struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Layout places the three primitives.
type Layout map[primitives.Kind]Placement

// DefaultLayout puts the box at the origin turned half a turn about Y, the icosphere at (-2,0,0)
// and the cylinder at (2,0,0).
func DefaultLayout() Layout {
	return Layout{
		primitives.KindBox:       {Rotation: mgl32.QuatRotate(math32.Pi, mgl32.Vec3{0, 1, 0})},
		primitives.KindIcoSphere: {Position: mgl32.Vec3{-2, 0, 0}, Rotation: mgl32.QuatIdent()},
		primitives.KindCylinder:  {Position: mgl32.Vec3{2, 0, 0}, Rotation: mgl32.QuatIdent()},
	}
}

// Bounce is the animation played on selection.
type Bounce struct {
	Amplitude float32
	Duration  float32 // frames
}

// DefaultBounce rises one unit over 24 frames.
func DefaultBounce() Bounce {
	return Bounce{Amplitude: 1, Duration: 24}
}

// Session owns the selection and the parameter records of one run. All methods run on the
// render loop goroutine.
type Session struct {
	engine   Engine
	panels   Panels
	store    *primitives.Store
	log      logger.Logger
	layout   Layout
	bounce   Bounce
	feedback Feedback

	selected primitives.Handle
	meshes   map[primitives.Kind]primitives.Handle
	restY    map[primitives.Kind]float32
}

// New returns an unselected session. panels may be nil when there is no UI.
func New(engine Engine, panels Panels, store *primitives.Store, log logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		engine: engine,
		panels: panels,
		store:  store,
		log:    log,
		layout: DefaultLayout(),
		bounce: DefaultBounce(),
		meshes: make(map[primitives.Kind]primitives.Handle),
		restY:  make(map[primitives.Kind]float32),
	}
}

// SetLayout replaces the start placements. Call before Setup.
func (s *Session) SetLayout(l Layout) { s.layout = l }

// SetBounce replaces the selection animation.
func (s *Session) SetBounce(b Bounce) { s.bounce = b }

// SetFeedback installs f; nil disables feedback.
func (s *Session) SetFeedback(f Feedback) { s.feedback = f }

// Store returns the parameter records.
func (s *Session) Store() *primitives.Store { return s.store }

// Selected returns the selected mesh, if any.
func (s *Session) Selected() (primitives.Handle, bool) {
	return s.selected, !s.selected.IsZero()
}

// Mesh returns the live instance of kind.
func (s *Session) Mesh(kind primitives.Kind) (primitives.Handle, bool) {
	h, ok := s.meshes[kind]
	return h, ok
}

// Setup creates the three primitives from the current records and registers one pick handler per
// identity. Handlers are bound to the identity, so they keep working for recreated meshes.
func (s *Session) Setup() error {
	for _, kind := range []primitives.Kind{primitives.KindBox, primitives.KindIcoSphere, primitives.KindCylinder} {
		shape, err := s.store.Shape(kind)
		if err != nil {
			return err
		}
		h, err := s.engine.CreatePrimitive(shape)
		if err != nil {
			return fmt.Errorf("create %s: %w", kind, err)
		}
		place, ok := s.layout[kind]
		if !ok {
			place = Placement{Rotation: mgl32.QuatIdent()}
		}
		s.engine.SetPosition(h, place.Position)
		if place.Rotation != (mgl32.Quat{}) {
			s.engine.SetRotation(h, place.Rotation)
		}
		s.meshes[kind] = h
		s.restY[kind] = place.Position.Y()
		s.engine.OnPick(kind, s.Select)
		s.log.Debugf("created %s at %v", h, place.Position)
	}
	return nil
}

// Select makes h the selected mesh, shows its control panel and bounces it.
func (s *Session) Select(h primitives.Handle) {
	s.selected = h
	s.log.Infof("selected %s", h)

	s.updatePanels(h.Kind)
	if !h.Kind.Valid() {
		return
	}
	s.playBounce(h)
	if s.feedback != nil {
		s.feedback.Blip()
	}
}

// updatePanels shows the generic container and exactly the panel for kind. The kind panels are left
// alone unless all of them exist.
func (s *Session) updatePanels(kind primitives.Kind) {
	if s.panels == nil {
		return
	}
	if s.panels.Has(MeshControls) {
		s.panels.Show(MeshControls)
	}
	for _, id := range kindPanels {
		if !s.panels.Has(id) {
			return
		}
	}
	for _, id := range kindPanels {
		s.panels.Hide(id)
	}
	if id := PanelFor(kind); id != "" {
		s.panels.Show(id)
		s.syncControls(kind)
	}
}

// syncControls writes the selected mesh's current values into its sliders.
func (s *Session) syncControls(kind primitives.Kind) {
	for _, b := range Bindings {
		if b.Kind != kind {
			continue
		}
		if kind == primitives.KindBox {
			scale, ok := s.engine.Scale(s.selected)
			if !ok {
				continue
			}
			s.panels.SetValue(b.Control, float64(scale[axis(b.Field)]))
			continue
		}
		if v, ok := s.store.Value(kind, b.Field); ok {
			s.panels.SetValue(b.Control, v)
		}
	}
}

func (s *Session) playBounce(h primitives.Handle) {
	pos, ok := s.engine.Position(h)
	if !ok {
		return
	}
	y, ok := s.restY[h.Kind]
	if !ok {
		y = pos.Y()
	}
	anim := animation.Bounce(y, s.bounce.Amplitude, s.bounce.Duration)
	s.engine.PlayAnimation(h, anim, 0, s.bounce.Duration, false)
}

// HandleControl applies an input event from a named control.
func (s *Session) HandleControl(control string, value float64) error {
	b, ok := Lookup(control)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, control)
	}
	return s.ApplyParameterEdit(b.Kind, b.Field, value)
}

// BindControls subscribes to every control. Nothing is bound if one is missing.
func (s *Session) BindControls(in Inputs) error {
	for _, b := range Bindings {
		if !in.Has(b.Control) {
			return fmt.Errorf("%w: %q", ErrMissingControl, b.Control)
		}
	}
	for _, b := range Bindings {
		control := b.Control
		in.OnInput(control, func(v float64) {
			if err := s.HandleControl(control, v); err != nil {
				s.log.Errorf("%s: %v", control, err)
			}
		})
	}
	return nil
}

// ApplyParameterEdit changes one parameter of the selected mesh. It does nothing unless the
// selected mesh is of kind. The box is rescaled in place; the cylinder and icosphere are rebuilt
// from their merged record at the old position. If the rebuild fails the old mesh stays selected
// and the merged record is kept.
func (s *Session) ApplyParameterEdit(kind primitives.Kind, field primitives.Field, value float64) error {
	if s.selected.IsZero() || s.selected.Kind != kind {
		return nil
	}
	switch kind {
	case primitives.KindBox:
		return s.rescale(field, value)
	case primitives.KindCylinder, primitives.KindIcoSphere:
		return s.rebuild(kind, primitives.Edit{Field: field, Value: value})
	}
	return nil
}

func (s *Session) rescale(field primitives.Field, value float64) error {
	i := axis(field)
	if i < 0 {
		return fmt.Errorf("%w: %s has no %s", primitives.ErrFieldNotApplicable, primitives.KindBox, field)
	}
	scale, ok := s.engine.Scale(s.selected)
	if !ok {
		return nil
	}
	scale[i] = float32(value)
	s.engine.SetScale(s.selected, scale)
	return nil
}

func (s *Session) rebuild(kind primitives.Kind, edit primitives.Edit) error {
	shape, err := s.store.Merge(kind, edit)
	if err != nil {
		return err
	}
	old := s.selected
	pos, _ := s.engine.Position(old)

	h, err := s.engine.CreatePrimitive(shape)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", kind, err)
	}
	s.engine.SetPosition(h, pos)
	s.engine.Dispose(old)
	s.selected = h
	s.meshes[kind] = h
	s.log.Debugf("rebuilt %s as %s with %+v", old, h, shape)
	if s.feedback != nil {
		s.feedback.Click()
	}
	return nil
}

// axis maps a box field to its scale component, or -1.
func axis(f primitives.Field) int {
	switch f {
	case primitives.FieldWidth:
		return 0
	case primitives.FieldHeight:
		return 1
	case primitives.FieldDepth:
		return 2
	}
	return -1
}
