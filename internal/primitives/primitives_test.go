package primitives

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(DefaultDef())
	require.NoError(t, err)
	return s
}

func TestNewStoreDefaults(t *testing.T) {
	s := newDefaultStore(t)
	assert.Equal(t, BoxParams{Size: 1}, s.Box)
	assert.Equal(t, CylinderParams{Diameter: 1, Height: 2, Tessellation: 24}, s.Cylinder)
	assert.Equal(t, IcoSphereParams{Diameter: 1, Subdivisions: 4}, s.IcoSphere)
}

func TestMergeKeepsUntouchedFields(t *testing.T) {
	s := newDefaultStore(t)

	_, err := s.Merge(KindCylinder, Edit{Field: FieldDiameter, Value: 1.5})
	require.NoError(t, err)
	shape, err := s.Merge(KindCylinder, Edit{Field: FieldHeight, Value: 3})
	require.NoError(t, err)

	want := CylinderParams{Diameter: 1.5, Height: 3, Tessellation: 24}
	assert.Equal(t, want, shape)
	assert.Equal(t, want, s.Cylinder)
	assert.Equal(t, IcoSphereParams{Diameter: 1, Subdivisions: 4}, s.IcoSphere)
}

func TestMergeTruncatesIntegerFields(t *testing.T) {
	s := newDefaultStore(t)
	shape, err := s.Merge(KindIcoSphere, Edit{Field: FieldSubdivisions, Value: 6.9})
	require.NoError(t, err)
	assert.Equal(t, IcoSphereParams{Diameter: 1, Subdivisions: 6}, shape)
}

func TestMergePassesThroughUnvalidatedValues(t *testing.T) {
	s := newDefaultStore(t)
	shape, err := s.Merge(KindCylinder, Edit{Field: FieldDiameter, Value: -2}, Edit{Field: FieldHeight, Value: 0})
	require.NoError(t, err)
	assert.Equal(t, CylinderParams{Diameter: -2, Height: 0, Tessellation: 24}, shape)
}

func TestMergeRejectsForeignFields(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		edit Edit
		err  error
	}{
		{"cylinder subdivisions", KindCylinder, Edit{Field: FieldSubdivisions, Value: 3}, ErrFieldNotApplicable},
		{"icosphere height", KindIcoSphere, Edit{Field: FieldHeight, Value: 3}, ErrFieldNotApplicable},
		{"box", KindBox, Edit{Field: FieldWidth, Value: 2}, ErrNotStored},
		{"unknown", KindUnknown, Edit{Field: FieldDiameter, Value: 2}, ErrNotStored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newDefaultStore(t)
			before := *s
			_, err := s.Merge(tt.kind, tt.edit)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, *s)
		})
	}
}

func TestMergeIsAllOrNothing(t *testing.T) {
	s := newDefaultStore(t)
	_, err := s.Merge(KindIcoSphere, Edit{Field: FieldDiameter, Value: 5}, Edit{Field: FieldTessellation, Value: 8})
	assert.ErrorIs(t, err, ErrFieldNotApplicable)
	assert.Equal(t, 1.0, s.IcoSphere.Diameter)
}

func TestStoreValue(t *testing.T) {
	s := newDefaultStore(t)
	v, ok := s.Value(KindCylinder, FieldHeight)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = s.Value(KindIcoSphere, FieldSubdivisions)
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
	_, ok = s.Value(KindBox, FieldWidth)
	assert.False(t, ok)
}

func TestHandles(t *testing.T) {
	a := NewHandle(KindCylinder)
	b := NewHandle(KindCylinder)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.IsZero())
	assert.True(t, Handle{}.IsZero())
	assert.Contains(t, a.String(), "Cylinder(")
	assert.False(t, KindUnknown.Valid())
	assert.True(t, KindIcoSphere.Valid())
}

func TestIcoSphereGeometryCounts(t *testing.T) {
	for _, s := range []int{1, 2, 4, 6} {
		g, err := IcoSphereGeometry(1, s)
		require.NoError(t, err)
		assert.Equal(t, 20*s*s, g.TriangleCount(), "subdivisions %d", s)
		assert.Equal(t, 3*g.TriangleCount(), g.VertexCount())
		assert.Len(t, g.Normals, len(g.Vertices))
		assert.Len(t, g.Texcoords, g.VertexCount()*2)
	}
}

func TestIcoSphereGeometryOnSphere(t *testing.T) {
	g, err := IcoSphereGeometry(3, 3)
	require.NoError(t, err)
	for i := 0; i < g.VertexCount(); i++ {
		p := mgl32.Vec3{g.Vertices[i*3], g.Vertices[i*3+1], g.Vertices[i*3+2]}
		assert.InDelta(t, 1.5, p.Len(), 1e-4)
	}
	// every triangle faces away from the centre
	for tri := 0; tri < g.TriangleCount(); tri++ {
		o := tri * 9
		p0 := mgl32.Vec3{g.Vertices[o], g.Vertices[o+1], g.Vertices[o+2]}
		p1 := mgl32.Vec3{g.Vertices[o+3], g.Vertices[o+4], g.Vertices[o+5]}
		p2 := mgl32.Vec3{g.Vertices[o+6], g.Vertices[o+7], g.Vertices[o+8]}
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		assert.Greater(t, n.Dot(p0), float32(0))
	}
}

func TestIcoSphereGeometryRejectsZeroSubdivisions(t *testing.T) {
	_, err := IcoSphereGeometry(1, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestIcoSphereGeometryRejectsExcessiveSubdivisions(t *testing.T) {
	store, err := NewStore(DefaultDef())
	require.NoError(t, err)
	shape, err := store.Merge(KindIcoSphere, Edit{Field: FieldSubdivisions, Value: 3.1e9})
	require.NoError(t, err)
	p := shape.(IcoSphereParams)

	assert.NotPanics(t, func() {
		_, err = IcoSphereGeometry(p.Diameter, p.Subdivisions)
	})
	assert.ErrorIs(t, err, ErrTooDetailed)

	_, err = IcoSphereGeometry(1, MaxSubdivisions+1)
	assert.ErrorIs(t, err, ErrTooDetailed)

	g, err := IcoSphereGeometry(1, MaxSubdivisions)
	require.NoError(t, err)
	assert.Equal(t, 20*MaxSubdivisions*MaxSubdivisions, g.TriangleCount())
}
