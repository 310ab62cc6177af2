package primitives

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind is the identity of one of the playground primitives. It is fixed when a mesh is created
// and routes pick events, controls and parameter records.
type Kind int

const (
	KindUnknown Kind = iota
	KindBox
	KindCylinder
	KindIcoSphere
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "Box"
	case KindCylinder:
		return "Cylinder"
	case KindIcoSphere:
		return "IcoSphere"
	default:
		return "Unknown"
	}
}

// Valid reports whether k names one of the three primitives.
func (k Kind) Valid() bool {
	return k == KindBox || k == KindCylinder || k == KindIcoSphere
}

// Handle references a mesh instance owned by the scene. A new ID is minted for every creation,
// so a recreated mesh never shares a handle with the instance it replaced.
type Handle struct {
	ID   uuid.UUID
	Kind Kind
}

// NewHandle returns a handle with a fresh ID.
func NewHandle(kind Kind) Handle {
	return Handle{ID: uuid.New(), Kind: kind}
}

// IsZero reports whether h references nothing.
func (h Handle) IsZero() bool {
	return h.ID == uuid.Nil
}

func (h Handle) String() string {
	return fmt.Sprintf("%s(%s)", h.Kind, h.ID.String()[:8])
}

// Field selects one parameter of a primitive. For the box, Width/Height/Depth address the
// x/y/z axis of its scale instead of a construction parameter.
type Field int

const (
	FieldWidth Field = iota
	FieldHeight
	FieldDepth
	FieldDiameter
	FieldTessellation
	FieldSubdivisions
)

func (f Field) String() string {
	switch f {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	case FieldDepth:
		return "depth"
	case FieldDiameter:
		return "diameter"
	case FieldTessellation:
		return "tessellation"
	case FieldSubdivisions:
		return "subdivisions"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Edit is a single {field: value} pair merged into a parameter record.
type Edit struct {
	Field Field
	Value float64
}

// Shape is the full construction record handed to the scene when creating a mesh.
type Shape interface {
	Kind() Kind
}

// BoxParams builds the box. The box is rescaled rather than rebuilt, so only its initial size matters.
type BoxParams struct {
	Size float64
}

// CylinderParams builds the cylinder.
type CylinderParams struct {
	Diameter     float64
	Height       float64
	Tessellation int
}

// IcoSphereParams builds the icosphere. Subdivisions is the number of segments per icosahedron edge.
type IcoSphereParams struct {
	Diameter     float64
	Subdivisions int
}

func (BoxParams) Kind() Kind       { return KindBox }
func (CylinderParams) Kind() Kind  { return KindCylinder }
func (IcoSphereParams) Kind() Kind { return KindIcoSphere }

// PrimitiveDef is the YAML definition of the default primitive records
// (the primitives section of config/playground.yaml).
type PrimitiveDef struct {
	Box       BoxDef       `yaml:"box"`
	Cylinder  CylinderDef  `yaml:"cylinder"`
	IcoSphere IcoSphereDef `yaml:"icosphere"`
}

type BoxDef struct {
	Size float64 `yaml:"size"`
}

type CylinderDef struct {
	Diameter     float64 `yaml:"diameter"`
	Height       float64 `yaml:"height"`
	Tessellation int     `yaml:"tessellation"`
}

type IcoSphereDef struct {
	Diameter     float64 `yaml:"diameter"`
	Subdivisions int     `yaml:"subdivisions"`
}

// DefaultDef returns the stock records: unit box, cylinder {1, 2, 24}, icosphere {1, 4}.
func DefaultDef() PrimitiveDef {
	return PrimitiveDef{
		Box:       BoxDef{Size: 1},
		Cylinder:  CylinderDef{Diameter: 1, Height: 2, Tessellation: 24},
		IcoSphere: IcoSphereDef{Diameter: 1, Subdivisions: 4},
	}
}
