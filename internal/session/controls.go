package session

import "primitive-playground/internal/primitives"

// Container ids toggled on selection.
const (
	MeshControls      = "meshControls"
	CubeControls      = "cubeControls"
	CylinderControls  = "cylinderControls"
	IcoSphereControls = "icosphereControls"
)

// Control names emitting input events.
const (
	CubeWidth             = "cubeWidth"
	CubeHeight            = "cubeHeight"
	CubeDepth             = "cubeDepth"
	CylinderDiameter      = "cylinderDiameter"
	CylinderHeight        = "cylinderHeight"
	IcoSphereDiameter     = "icosphereDiameter"
	IcoSphereSubdivisions = "icosphereSubdivisions"
)

// Binding routes a named control to the parameter it edits.
type Binding struct {
	Control string
	Kind    primitives.Kind
	Field   primitives.Field
}

// Bindings lists every control in panel order.
var Bindings = []Binding{
	{CubeWidth, primitives.KindBox, primitives.FieldWidth},
	{CubeHeight, primitives.KindBox, primitives.FieldHeight},
	{CubeDepth, primitives.KindBox, primitives.FieldDepth},
	{CylinderDiameter, primitives.KindCylinder, primitives.FieldDiameter},
	{CylinderHeight, primitives.KindCylinder, primitives.FieldHeight},
	{IcoSphereDiameter, primitives.KindIcoSphere, primitives.FieldDiameter},
	{IcoSphereSubdivisions, primitives.KindIcoSphere, primitives.FieldSubdivisions},
}

// Lookup returns the binding for a control name.
func Lookup(control string) (Binding, bool) {
	for _, b := range Bindings {
		if b.Control == control {
			return b, true
		}
	}
	return Binding{}, false
}

// PanelFor returns the container shown when kind is selected, or "" for unknown kinds.
func PanelFor(kind primitives.Kind) string {
	switch kind {
	case primitives.KindBox:
		return CubeControls
	case primitives.KindCylinder:
		return CylinderControls
	case primitives.KindIcoSphere:
		return IcoSphereControls
	}
	return ""
}

var kindPanels = []string{CubeControls, CylinderControls, IcoSphereControls}
