// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
)

// model is a paged list that supports single or multiple selection.
type model struct {
	title     string
	items     []string // Rendered labels.
	multi     bool
	cursor    int
	selected  map[int]struct{}
	paginator paginator.Model
	keys      keyMap
	styles    *Styles
	accepted  bool
	aborted   bool
}

func newModel(title string, items []string, multi bool, pageSize int, styles *Styles) *model {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = pageSize
	p.SetTotalPages(len(items))

	return &model{
		title:     title,
		items:     items,
		multi:     multi,
		selected:  make(map[int]struct{}),
		paginator: p,
		keys:      newKeyMap(),
		styles:    styles,
	}
}

// Init implements bubbletea.Model.Init.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements bubbletea.Model.Update.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Abort):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Accept):
		m.accepted = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)

	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)

	case key.Matches(keyMsg, m.keys.PrevPage):
		m.move(-m.paginator.PerPage)

	case key.Matches(keyMsg, m.keys.NextPage):
		m.move(m.paginator.PerPage)

	case m.multi && key.Matches(keyMsg, m.keys.Toggle):
		m.toggle(m.cursor)

	case m.multi && key.Matches(keyMsg, m.keys.ToggleAll):
		m.toggleAll()
	}

	return m, nil
}

func (m *model) move(delta int) {
	if len(m.items) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.items)-1)
	m.paginator.Page = m.cursor / m.paginator.PerPage
}

func (m *model) toggle(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}

	if _, ok := m.selected[i]; ok {
		delete(m.selected, i)
		return
	}

	m.selected[i] = struct{}{}
}

// toggleAll selects everything, or clears the selection if everything is already selected.
func (m *model) toggleAll() {
	if len(m.selected) == len(m.items) {
		clear(m.selected)
		return
	}

	for i := range m.items {
		m.selected[i] = struct{}{}
	}
}

// chosen returns the accepted indexes in list order.
func (m *model) chosen() []int {
	if !m.accepted || len(m.items) == 0 {
		return nil
	}

	if !m.multi {
		return []int{m.cursor}
	}

	res := make([]int, 0, len(m.selected))
	for i := range m.selected {
		res = append(res, i)
	}

	slices.Sort(res)

	return res
}

// View implements bubbletea.Model.View.
func (m *model) View() string {
	if m.accepted || m.aborted {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")

	start, end := m.paginator.GetSliceBounds(len(m.items))
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}

		sb.WriteString(cursor)

		if m.multi {
			if _, ok := m.selected[i]; ok {
				sb.WriteString(m.styles.Selected.Render("[x] "))
			} else {
				sb.WriteString("[ ] ")
			}
		}

		sb.WriteString(m.items[i])
		sb.WriteString("\n")
	}

	if m.paginator.TotalPages > 1 {
		sb.WriteString("\n  ")
		sb.WriteString(m.paginator.View())
		sb.WriteString("\n")
	}

	help := make([]string, 0, len(m.keys.help(m.multi)))
	for _, b := range m.keys.help(m.multi) {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	sb.WriteString(m.styles.Help.Render(strings.Join(help, " • ")))
	sb.WriteString("\n")

	return sb.String()
}
