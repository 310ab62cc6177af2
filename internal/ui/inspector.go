package ui

import (
	"fmt"
	"strings"
)

// InspectorID is the element id of the inspector panel.
const InspectorID = "inspector"

// Inspector is a read-only panel that shows the name, position, scale and construction
// parameters of the selected mesh. It owns its nodes inside a Document and hides itself when
// nothing is selected.
type Inspector struct {
	panel    *Node
	name     *Node
	position *Node
	scale    *Node
	params   *Node
}

// Selection holds the data shown in the inspector. Pass this from the session layer; ui does not
// depend on it.
type Selection struct {
	Name     string
	Position [3]float32
	Scale    [3]float32
	Params   []string // "diameter=1.00" style pairs, already formatted
}

// NewInspector adds the inspector nodes to doc, styled by .inspector and .inspector-row.
func NewInspector(doc *Document) (*Inspector, error) {
	in := &Inspector{
		panel:    NewNode(TypePanel, "inspector", InspectorID, "Inspector"),
		name:     NewNode(TypeLabel, "inspector-row", "", ""),
		position: NewNode(TypeLabel, "inspector-row", "", ""),
		scale:    NewNode(TypeLabel, "inspector-row", "", ""),
		params:   NewNode(TypeLabel, "inspector-row", "", ""),
	}
	if _, err := doc.Add(nil, in.panel); err != nil {
		return nil, err
	}
	for _, n := range []*Node{in.name, in.position, in.scale, in.params} {
		if _, err := doc.Add(in.panel, n); err != nil {
			return nil, err
		}
	}
	in.panel.Hide()
	return in, nil
}

// Update refreshes the labels from sel and shows the panel; a nil sel hides it.
func (in *Inspector) Update(sel *Selection) {
	if sel == nil {
		in.panel.Hide()
		return
	}
	in.panel.Show()
	in.name.Text = "Name: " + sel.Name
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.scale.Text = fmt.Sprintf("Scale: %.2f, %.2f, %.2f", sel.Scale[0], sel.Scale[1], sel.Scale[2])
	if len(sel.Params) > 0 {
		in.params.Text = "Params: " + strings.Join(sel.Params, " ")
	} else {
		in.params.Text = "Params: none"
	}
}
