// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styling for the picker.
type Styles struct {
	Title    lipgloss.Style
	Dir      lipgloss.Style
	Stem     lipgloss.Style
	Ext      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles creates the default styling.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),
		Dir: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0000FF")),
		Stem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4500")),
		Ext: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ADFF2F")),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}
