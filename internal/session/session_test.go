package session

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primitive-playground/internal/animation"
	"primitive-playground/internal/primitives"
	"primitive-playground/internal/ui"
)

type fakeMesh struct {
	shape    primitives.Shape
	position mgl32.Vec3
	scale    mgl32.Vec3
	rotation mgl32.Quat
}

type played struct {
	handle   primitives.Handle
	anim     *animation.Animation
	from, to float32
	loop     bool
}

type fakeEngine struct {
	meshes   map[uuid.UUID]*fakeMesh
	disposed []primitives.Handle
	created  []primitives.Handle
	picks    map[primitives.Kind]func(primitives.Handle)
	played   []played
	failNext error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		meshes: make(map[uuid.UUID]*fakeMesh),
		picks:  make(map[primitives.Kind]func(primitives.Handle)),
	}
}

func (e *fakeEngine) CreatePrimitive(shape primitives.Shape) (primitives.Handle, error) {
	if err := e.failNext; err != nil {
		e.failNext = nil
		return primitives.Handle{}, err
	}
	h := primitives.NewHandle(shape.Kind())
	e.meshes[h.ID] = &fakeMesh{shape: shape, scale: mgl32.Vec3{1, 1, 1}, rotation: mgl32.QuatIdent()}
	e.created = append(e.created, h)
	return h, nil
}

func (e *fakeEngine) Dispose(h primitives.Handle) {
	delete(e.meshes, h.ID)
	e.disposed = append(e.disposed, h)
}

func (e *fakeEngine) Position(h primitives.Handle) (mgl32.Vec3, bool) {
	m, ok := e.meshes[h.ID]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return m.position, true
}

func (e *fakeEngine) SetPosition(h primitives.Handle, p mgl32.Vec3) {
	if m, ok := e.meshes[h.ID]; ok {
		m.position = p
	}
}

func (e *fakeEngine) Scale(h primitives.Handle) (mgl32.Vec3, bool) {
	m, ok := e.meshes[h.ID]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return m.scale, true
}

func (e *fakeEngine) SetScale(h primitives.Handle, s mgl32.Vec3) {
	if m, ok := e.meshes[h.ID]; ok {
		m.scale = s
	}
}

func (e *fakeEngine) SetRotation(h primitives.Handle, q mgl32.Quat) {
	if m, ok := e.meshes[h.ID]; ok {
		m.rotation = q
	}
}

func (e *fakeEngine) OnPick(kind primitives.Kind, fn func(primitives.Handle)) {
	e.picks[kind] = fn
}

func (e *fakeEngine) PlayAnimation(h primitives.Handle, anim *animation.Animation, from, to float32, loop bool) {
	e.played = append(e.played, played{h, anim, from, to, loop})
}

// pick simulates a click on the live mesh of kind.
func (e *fakeEngine) pick(t *testing.T, s *Session, kind primitives.Kind) primitives.Handle {
	t.Helper()
	h, ok := s.Mesh(kind)
	require.True(t, ok)
	fn, ok := e.picks[kind]
	require.True(t, ok, "no pick handler for %s", kind)
	fn(h)
	return h
}

type countingFeedback struct{ blips, clicks int }

func (f *countingFeedback) Blip()  { f.blips++ }
func (f *countingFeedback) Click() { f.clicks++ }

// newControlsDoc builds the four containers and seven sliders, all hidden.
func newControlsDoc(t *testing.T, skip ...string) *ui.Document {
	t.Helper()
	doc := ui.NewDocument()
	skipped := func(id string) bool {
		for _, s := range skip {
			if s == id {
				return true
			}
		}
		return false
	}
	root, err := doc.Add(nil, ui.NewNode(ui.TypePanel, "mesh-controls", MeshControls, "Mesh"))
	require.NoError(t, err)
	root.Hide()
	for _, id := range kindPanels {
		if skipped(id) {
			continue
		}
		panel, err := doc.Add(root, ui.NewNode(ui.TypePanel, "controls", id, ""))
		require.NoError(t, err)
		panel.Hide()
		for _, b := range Bindings {
			if PanelFor(b.Kind) != id || skipped(b.Control) {
				continue
			}
			_, err := doc.Add(panel, ui.NewSlider("slider", b.Control, b.Control, 0, 10, 0, 1))
			require.NoError(t, err)
		}
	}
	return doc
}

type fixture struct {
	engine *fakeEngine
	doc    *ui.Document
	sess   *Session
	fb     *countingFeedback
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := primitives.NewStore(primitives.DefaultDef())
	require.NoError(t, err)
	f := &fixture{engine: newFakeEngine(), doc: newControlsDoc(t), fb: &countingFeedback{}}
	f.sess = New(f.engine, f.doc, store, nil)
	f.sess.SetFeedback(f.fb)
	require.NoError(t, f.sess.Setup())
	require.NoError(t, f.sess.BindControls(f.doc))
	return f
}

// visiblePanels returns the kind panels currently displayed.
func (f *fixture) visiblePanels() []string {
	var out []string
	for _, id := range kindPanels {
		if f.doc.Displayed(id) {
			out = append(out, id)
		}
	}
	return out
}

func TestSetupPlacesPrimitives(t *testing.T) {
	f := newFixture(t)
	require.Len(t, f.engine.created, 3)

	box, _ := f.sess.Mesh(primitives.KindBox)
	ico, _ := f.sess.Mesh(primitives.KindIcoSphere)
	cyl, _ := f.sess.Mesh(primitives.KindCylinder)

	pos, _ := f.engine.Position(ico)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, pos)
	pos, _ = f.engine.Position(cyl)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, pos)
	assert.InDelta(t, 0, f.engine.meshes[box.ID].rotation.W, 1e-6)

	assert.Equal(t, primitives.IcoSphereParams{Diameter: 1, Subdivisions: 4}, f.engine.meshes[ico.ID].shape)
	assert.Equal(t, primitives.CylinderParams{Diameter: 1, Height: 2, Tessellation: 24}, f.engine.meshes[cyl.ID].shape)

	_, selected := f.sess.Selected()
	assert.False(t, selected)
	assert.Empty(t, f.visiblePanels())
	assert.False(t, f.doc.Displayed(MeshControls))
}

func TestSelectShowsMatchingPanel(t *testing.T) {
	f := newFixture(t)
	sequence := []primitives.Kind{
		primitives.KindCylinder, primitives.KindBox, primitives.KindIcoSphere,
		primitives.KindIcoSphere, primitives.KindBox, primitives.KindCylinder,
	}
	for _, kind := range sequence {
		h := f.engine.pick(t, f.sess, kind)
		sel, ok := f.sess.Selected()
		require.True(t, ok)
		assert.Equal(t, h, sel)
		assert.True(t, f.doc.Displayed(MeshControls))
		assert.Equal(t, []string{PanelFor(kind)}, f.visiblePanels())
	}
	assert.Equal(t, len(sequence), f.fb.blips)
}

func TestSelectUnknownKindShowsNoPanel(t *testing.T) {
	f := newFixture(t)
	f.engine.pick(t, f.sess, primitives.KindBox)
	f.sess.Select(primitives.NewHandle(primitives.KindUnknown))

	assert.True(t, f.doc.Displayed(MeshControls))
	assert.Empty(t, f.visiblePanels())
	assert.Len(t, f.engine.played, 1)
}

func TestSelectSkipsPanelsWhenOneIsMissing(t *testing.T) {
	store, err := primitives.NewStore(primitives.DefaultDef())
	require.NoError(t, err)
	engine := newFakeEngine()
	doc := newControlsDoc(t, CylinderControls)
	sess := New(engine, doc, store, nil)
	require.NoError(t, sess.Setup())

	h := engine.pick(t, sess, primitives.KindBox)

	sel, ok := sess.Selected()
	require.True(t, ok)
	assert.Equal(t, h, sel)
	assert.True(t, doc.Displayed(MeshControls))
	assert.False(t, doc.Displayed(CubeControls))
	require.Len(t, engine.played, 1)
}

func TestSelectPlaysBounce(t *testing.T) {
	f := newFixture(t)
	h := f.engine.pick(t, f.sess, primitives.KindCylinder)

	require.Len(t, f.engine.played, 1)
	p := f.engine.played[0]
	assert.Equal(t, h, p.handle)
	assert.Equal(t, float32(0), p.from)
	assert.Equal(t, float32(24), p.to)
	assert.False(t, p.loop)
	assert.Equal(t, animation.BounceProperty, p.anim.Property)
	assert.Equal(t, []animation.Key{{Frame: 0, Value: 0}, {Frame: 12, Value: 1}, {Frame: 24, Value: 0}}, p.anim.Keys())
}

func TestSelectSyncsSliders(t *testing.T) {
	f := newFixture(t)
	_, err := f.sess.Store().Merge(primitives.KindCylinder, primitives.Edit{Field: primitives.FieldHeight, Value: 3})
	require.NoError(t, err)
	f.engine.pick(t, f.sess, primitives.KindCylinder)

	n, ok := f.doc.ElementByID(CylinderHeight)
	require.True(t, ok)
	assert.Equal(t, 3.0, n.Value)

	box := f.engine.pick(t, f.sess, primitives.KindBox)
	f.engine.SetScale(box, mgl32.Vec3{2, 1, 1})
	f.engine.pick(t, f.sess, primitives.KindBox)
	n, _ = f.doc.ElementByID(CubeWidth)
	assert.Equal(t, 2.0, n.Value)
}

func TestCylinderEditsMerge(t *testing.T) {
	f := newFixture(t)
	f.engine.pick(t, f.sess, primitives.KindCylinder)

	require.True(t, f.doc.Input(CylinderDiameter, 1.5))
	require.True(t, f.doc.Input(CylinderHeight, 3))

	want := primitives.CylinderParams{Diameter: 1.5, Height: 3, Tessellation: 24}
	assert.Equal(t, want, f.sess.Store().Cylinder)
	sel, _ := f.sess.Selected()
	assert.Equal(t, want, f.engine.meshes[sel.ID].shape)
	assert.Equal(t, 2, f.fb.clicks)
}

func TestRebuildPreservesPosition(t *testing.T) {
	f := newFixture(t)
	old := f.engine.pick(t, f.sess, primitives.KindCylinder)

	require.NoError(t, f.sess.HandleControl(CylinderDiameter, 2))

	sel, ok := f.sess.Selected()
	require.True(t, ok)
	assert.NotEqual(t, old.ID, sel.ID)
	assert.Equal(t, primitives.KindCylinder, sel.Kind)
	pos, ok := f.engine.Position(sel)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, pos)
	assert.Equal(t, []primitives.Handle{old}, f.engine.disposed)
	_, alive := f.engine.meshes[old.ID]
	assert.False(t, alive)

	live, _ := f.sess.Mesh(primitives.KindCylinder)
	assert.Equal(t, sel, live)
}

func TestRecreatedMeshStaysPickable(t *testing.T) {
	f := newFixture(t)
	f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	require.NoError(t, f.sess.HandleControl(IcoSphereDiameter, 2))
	rebuilt, _ := f.sess.Selected()

	f.engine.pick(t, f.sess, primitives.KindBox)
	again := f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	assert.Equal(t, rebuilt, again)
	sel, _ := f.sess.Selected()
	assert.Equal(t, rebuilt, sel)
}

func TestBoxEditRescalesInPlace(t *testing.T) {
	f := newFixture(t)
	box := f.engine.pick(t, f.sess, primitives.KindBox)
	created := len(f.engine.created)

	require.True(t, f.doc.Input(CubeWidth, 2.5))
	require.True(t, f.doc.Input(CubeDepth, 0.5))

	assert.Len(t, f.engine.created, created)
	assert.Empty(t, f.engine.disposed)
	sel, _ := f.sess.Selected()
	assert.Equal(t, box, sel)
	scale, _ := f.engine.Scale(box)
	assert.Equal(t, mgl32.Vec3{2.5, 1, 0.5}, scale)
	assert.Zero(t, f.fb.clicks)
}

func TestMismatchedEditIsNoOp(t *testing.T) {
	f := newFixture(t)
	ico := f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	before := *f.sess.Store()

	require.True(t, f.doc.Input(CylinderDiameter, 3))
	require.True(t, f.doc.Input(CubeWidth, 3))

	assert.Equal(t, before, *f.sess.Store())
	sel, _ := f.sess.Selected()
	assert.Equal(t, ico, sel)
	assert.Empty(t, f.engine.disposed)
	scale, _ := f.engine.Scale(ico)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, scale)
}

func TestEditWithoutSelectionIsNoOp(t *testing.T) {
	f := newFixture(t)
	before := *f.sess.Store()
	require.NoError(t, f.sess.ApplyParameterEdit(primitives.KindCylinder, primitives.FieldHeight, 5))
	assert.Equal(t, before, *f.sess.Store())
	assert.Len(t, f.engine.created, 3)
}

func TestIcoSphereSubdivisionScenario(t *testing.T) {
	f := newFixture(t)
	old := f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	assert.Equal(t, primitives.IcoSphereParams{Diameter: 1, Subdivisions: 4}, f.engine.meshes[old.ID].shape)

	require.True(t, f.doc.Input(IcoSphereSubdivisions, 6))

	sel, _ := f.sess.Selected()
	assert.Equal(t, primitives.IcoSphereParams{Diameter: 1, Subdivisions: 6}, f.engine.meshes[sel.ID].shape)
	pos, _ := f.engine.Position(sel)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, pos)
	assert.Equal(t, []primitives.Handle{old}, f.engine.disposed)
}

func TestRebuildFailureKeepsOldMesh(t *testing.T) {
	f := newFixture(t)
	old := f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	f.engine.failNext = primitives.ErrDegenerate

	err := f.sess.HandleControl(IcoSphereSubdivisions, 0)
	assert.ErrorIs(t, err, primitives.ErrDegenerate)

	sel, _ := f.sess.Selected()
	assert.Equal(t, old, sel)
	assert.Empty(t, f.engine.disposed)
	assert.Equal(t, 0, f.sess.Store().IcoSphere.Subdivisions)
}

func TestHandleControlUnknownName(t *testing.T) {
	f := newFixture(t)
	err := f.sess.HandleControl("sphereRadius", 1)
	assert.ErrorIs(t, err, ErrUnknownControl)
}

func TestBindControlsRequiresEveryControl(t *testing.T) {
	store, err := primitives.NewStore(primitives.DefaultDef())
	require.NoError(t, err)
	doc := newControlsDoc(t, IcoSphereSubdivisions)
	sess := New(newFakeEngine(), doc, store, nil)

	err = sess.BindControls(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingControl))
	assert.Contains(t, err.Error(), IcoSphereSubdivisions)
}

func TestLookupCoversEveryControl(t *testing.T) {
	for _, b := range Bindings {
		got, ok := Lookup(b.Control)
		require.True(t, ok, b.Control)
		assert.Equal(t, b, got)
		assert.NotEmpty(t, PanelFor(b.Kind))
	}
	_, ok := Lookup("nope")
	assert.False(t, ok)
	assert.Empty(t, PanelFor(primitives.KindUnknown))
}

func TestReselectBouncesFromRestHeight(t *testing.T) {
	f := newFixture(t)
	h := f.engine.pick(t, f.sess, primitives.KindIcoSphere)
	f.engine.SetPosition(h, mgl32.Vec3{-2, 0.7, 0})

	f.engine.pick(t, f.sess, primitives.KindIcoSphere)

	require.Len(t, f.engine.played, 2)
	keys := f.engine.played[1].anim.Keys()
	assert.Equal(t, []animation.Key{{Frame: 0, Value: 0}, {Frame: 12, Value: 1}, {Frame: 24, Value: 0}}, keys)
}
