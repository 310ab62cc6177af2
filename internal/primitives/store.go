package primitives

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
)

var (
	// ErrFieldNotApplicable is returned when an edit names a field the kind does not have.
	ErrFieldNotApplicable = errors.New("field not applicable to primitive")
	// ErrNotStored is returned for kinds without a persistent record (the box, unknown kinds).
	ErrNotStored = errors.New("primitive has no parameter record")
)

// Store holds the persistent construction records for every primitive. Records are merged
// field by field; values are passed through without validation.
type Store struct {
	Box       BoxParams
	Cylinder  CylinderParams
	IcoSphere IcoSphereParams
}

// NewStore maps the YAML definitions onto runtime records.
func NewStore(def PrimitiveDef) (*Store, error) {
	s := &Store{}
	if err := copier.Copy(&s.Box, &def.Box); err != nil {
		return nil, fmt.Errorf("box defaults: %w", err)
	}
	if err := copier.Copy(&s.Cylinder, &def.Cylinder); err != nil {
		return nil, fmt.Errorf("cylinder defaults: %w", err)
	}
	if err := copier.Copy(&s.IcoSphere, &def.IcoSphere); err != nil {
		return nil, fmt.Errorf("icosphere defaults: %w", err)
	}
	return s, nil
}

// Shape returns a copy of the current record for kind.
func (s *Store) Shape(kind Kind) (Shape, error) {
	switch kind {
	case KindBox:
		return s.Box, nil
	case KindCylinder:
		return s.Cylinder, nil
	case KindIcoSphere:
		return s.IcoSphere, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotStored, kind)
	}
}

// Merge overwrites only the touched fields of the record for kind and returns a copy of the full
// merged record. Edits are applied in order; if any edit is not applicable the record is left untouched.
// Integer fields take the truncated value.
func (s *Store) Merge(kind Kind, edits ...Edit) (Shape, error) {
	switch kind {
	case KindCylinder:
		next := s.Cylinder
		for _, e := range edits {
			switch e.Field {
			case FieldDiameter:
				next.Diameter = e.Value
			case FieldHeight:
				next.Height = e.Value
			case FieldTessellation:
				next.Tessellation = int(e.Value)
			default:
				return nil, fmt.Errorf("%w: %s has no %s", ErrFieldNotApplicable, kind, e.Field)
			}
		}
		s.Cylinder = next
		return next, nil
	case KindIcoSphere:
		next := s.IcoSphere
		for _, e := range edits {
			switch e.Field {
			case FieldDiameter:
				next.Diameter = e.Value
			case FieldSubdivisions:
				next.Subdivisions = int(e.Value)
			default:
				return nil, fmt.Errorf("%w: %s has no %s", ErrFieldNotApplicable, kind, e.Field)
			}
		}
		s.IcoSphere = next
		return next, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotStored, kind)
	}
}

// Value reads one field of the record for kind, for syncing controls.
func (s *Store) Value(kind Kind, field Field) (float64, bool) {
	switch kind {
	case KindCylinder:
		switch field {
		case FieldDiameter:
			return s.Cylinder.Diameter, true
		case FieldHeight:
			return s.Cylinder.Height, true
		case FieldTessellation:
			return float64(s.Cylinder.Tessellation), true
		}
	case KindIcoSphere:
		switch field {
		case FieldDiameter:
			return s.IcoSphere.Diameter, true
		case FieldSubdivisions:
			return float64(s.IcoSphere.Subdivisions), true
		}
	}
	return 0, false
}
