package main

import (
	"primitive-playground/internal/engineconfig"
	"primitive-playground/internal/primitives"
	"primitive-playground/internal/session"
	"primitive-playground/internal/ui"
)

var panelTitles = map[string]string{
	session.CubeControls:      "Box",
	session.CylinderControls:  "Cylinder",
	session.IcoSphereControls: "IcoSphere",
}

var sliderLabels = map[string]string{
	session.CubeWidth:             "Width",
	session.CubeHeight:            "Height",
	session.CubeDepth:             "Depth",
	session.CylinderDiameter:      "Diameter",
	session.CylinderHeight:        "Height",
	session.IcoSphereDiameter:     "Diameter",
	session.IcoSphereSubdivisions: "Subdiv.",
}

// buildControls adds the mesh control container, one panel per primitive and one slider per
// binding. Everything starts hidden; the session shows panels on selection.
func buildControls(doc *ui.Document, cfg engineconfig.Config) error {
	root, err := doc.Add(nil, ui.NewNode(ui.TypePanel, "mesh-controls", session.MeshControls, "Mesh controls"))
	if err != nil {
		return err
	}
	root.Hide()
	for _, kind := range []primitives.Kind{primitives.KindBox, primitives.KindCylinder, primitives.KindIcoSphere} {
		id := session.PanelFor(kind)
		panel, err := doc.Add(root, ui.NewNode(ui.TypePanel, "controls", id, panelTitles[id]))
		if err != nil {
			return err
		}
		panel.Hide()
		for _, b := range session.Bindings {
			if b.Kind != kind {
				continue
			}
			r := cfg.Range(b.Control)
			slider := ui.NewSlider("slider", b.Control, sliderLabels[b.Control], r.Min, r.Max, r.Step, 1)
			if _, err := doc.Add(panel, slider); err != nil {
				return err
			}
		}
	}
	return nil
}
