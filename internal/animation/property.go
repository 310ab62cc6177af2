package animation

import (
	"fmt"
	"strings"
)

// Target is the transform vector a property path writes to.
type Target int

const (
	TargetPosition Target = iota
	TargetScaling
)

// Property is a parsed path like "position.y".
type Property struct {
	Target Target
	Axis   int
}

// ParseProperty resolves "position.{x,y,z}" and "scaling.{x,y,z}".
func ParseProperty(path string) (Property, error) {
	target, comp, ok := strings.Cut(path, ".")
	if !ok {
		return Property{}, fmt.Errorf("animation property %q: missing component", path)
	}
	var p Property
	switch target {
	case "position":
		p.Target = TargetPosition
	case "scaling":
		p.Target = TargetScaling
	default:
		return Property{}, fmt.Errorf("animation property %q: unknown target", path)
	}
	switch comp {
	case "x":
		p.Axis = 0
	case "y":
		p.Axis = 1
	case "z":
		p.Axis = 2
	default:
		return Property{}, fmt.Errorf("animation property %q: unknown component", path)
	}
	return p, nil
}
