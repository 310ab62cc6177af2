package ui

import (
	_ "embed"
)

//go:embed default.css
var defaultCSS string

// DefaultStylesheet returns the built-in stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		return &Stylesheet{}
	}
	return sheet
}
