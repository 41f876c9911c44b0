package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Variables ---

func (m Model) updateVariables(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vars := m.store.Variables()

	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return m, nil
		}
		if m.store.HasVariable(name) {
			m.setStatus(name+" already exists", true)
		} else {
			m.store.AddVariable(name)
			m.setStatus("added "+name, false)
			m.varCursor = len(vars)
		}
		m.input.Reset()
		return m, nil
	case "up":
		m.varCursor = clamp(m.varCursor-1, len(vars))
		return m, nil
	case "down":
		m.varCursor = clamp(m.varCursor+1, len(vars))
		return m, nil
	case "ctrl+x":
		if len(vars) == 0 {
			return m, nil
		}
		name := vars[clamp(m.varCursor, len(vars))]
		m.store.DeleteVariable(name)
		m.varCursor = clamp(m.varCursor, len(vars)-1)
		m.setStatus("deleted "+name, false)
		return m, nil
	case "ctrl+e":
		if len(vars) == 0 {
			return m, nil
		}
		m.cycleEvidence(vars[clamp(m.varCursor, len(vars))])
		return m, nil
	case "ctrl+r":
		if len(vars) == 0 {
			return m, nil
		}
		m.toggleQueryVar(vars[clamp(m.varCursor, len(vars))])
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycleEvidence steps a variable through unset, true and false.
func (m *Model) cycleEvidence(name string) {
	val, ok := m.store.Sample()[name]
	switch {
	case !ok:
		m.store.SetSampleValue(name, true)
	case val:
		m.store.SetSampleValue(name, false)
	default:
		m.store.DeleteSampleValue(name)
	}
}

func (m *Model) toggleQueryVar(name string) {
	rs := m.store.ResultSet()
	out := rs[:0]
	found := false
	for _, v := range rs {
		if v == name {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, name)
	}
	m.store.SetResultSet(out)
}

func (m Model) viewVariables() string {
	vars := m.store.Variables()
	sample := m.store.Sample()
	query := make(map[string]bool)
	for _, v := range m.store.ResultSet() {
		query[v] = true
	}

	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Variables") + "\n")
	if len(vars) == 0 {
		b.WriteString(DimItemStyle.Render("  (none yet)") + "\n")
	}
	for i, v := range vars {
		line := "  " + ItemStyle.Render(v)
		if i == clamp(m.varCursor, len(vars)) {
			line = CursorStyle.Render("▸ " + v)
		}
		if val, ok := sample[v]; ok {
			if val {
				line += MarkerStyle.Render(" =1")
			} else {
				line += MarkerStyle.Render(" =0")
			}
		}
		if query[v] {
			line += MarkerStyle.Render(" ?")
		}
		b.WriteString(line + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		PaneStyle.Render(strings.TrimRight(b.String(), "\n")),
		InputBoxStyle.Render(m.input.View()),
	)
}

// --- Factors ---

func (m Model) updateFactors(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vars := m.store.Variables()
	keys := m.store.FactorKeys()

	switch msg.String() {
	case "tab":
		m.factorFocus = !m.factorFocus
	case "esc":
		m.navigate(RouteVariables, "")
	case "up":
		if m.factorFocus {
			m.factorCursor = clamp(m.factorCursor-1, len(keys))
		} else {
			m.varCursor = clamp(m.varCursor-1, len(vars))
		}
	case "down":
		if m.factorFocus {
			m.factorCursor = clamp(m.factorCursor+1, len(keys))
		} else {
			m.varCursor = clamp(m.varCursor+1, len(vars))
		}
	case "enter", "a", "e":
		if !m.factorFocus && msg.String() != "e" {
			if len(vars) == 0 {
				m.setStatus("add a variable first", true)
				return m, nil
			}
			head := vars[clamp(m.varCursor, len(vars))]
			m.store.AddFactor(head)
			m.setStatus("factor "+head+" ready", false)
			return m, nil
		}
		if len(keys) == 0 {
			return m, nil
		}
		m.navigate(RouteFactorEdit, keys[clamp(m.factorCursor, len(keys))])
	case "d", "ctrl+x":
		if !m.factorFocus || len(keys) == 0 {
			return m, nil
		}
		head := keys[clamp(m.factorCursor, len(keys))]
		m.store.DeleteFactor(head)
		m.factorCursor = clamp(m.factorCursor, len(keys)-1)
		m.setStatus("deleted factor "+head, false)
	}
	return m, nil
}

func (m Model) viewFactors() string {
	vars := m.store.Variables()
	keys := m.store.FactorKeys()
	dangling := m.store.DanglingReferences()

	var left strings.Builder
	left.WriteString(PaneTitleStyle.Render("Variables") + "\n")
	for i, v := range vars {
		if !m.factorFocus && i == clamp(m.varCursor, len(vars)) {
			left.WriteString(CursorStyle.Render("▸ "+v) + "\n")
		} else {
			left.WriteString("  " + ItemStyle.Render(v) + "\n")
		}
	}
	if len(vars) == 0 {
		left.WriteString(DimItemStyle.Render("  (none)") + "\n")
	}

	var right strings.Builder
	right.WriteString(PaneTitleStyle.Render("Factors") + "\n")
	for i, k := range keys {
		label := k
		if fv := m.store.FactorVariables(k); len(fv) > 0 {
			label += DimItemStyle.Render(" (" + strings.Join(fv, ", ") + ")")
		}
		if len(dangling[k]) > 0 {
			label += MissingStyle.Render(" missing: " + strings.Join(dangling[k], ", "))
		}
		if m.factorFocus && i == clamp(m.factorCursor, len(keys)) {
			right.WriteString(CursorStyle.Render("▸ ") + label + "\n")
		} else {
			right.WriteString("  " + label + "\n")
		}
	}
	if len(keys) == 0 {
		right.WriteString(DimItemStyle.Render("  (none)") + "\n")
	}

	leftStyle, rightStyle := ActivePaneStyle, PaneStyle
	if m.factorFocus {
		leftStyle, rightStyle = PaneStyle, ActivePaneStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(strings.TrimRight(left.String(), "\n")),
		" ",
		rightStyle.Render(strings.TrimRight(right.String(), "\n")),
	)
}

// --- Factor editor ---

// loadFactorEdit lists the registry variables followed by any variables the
// factor still references after they were deleted.
func (m *Model) loadFactorEdit() {
	m.editItems = m.store.Variables()
	m.editSel = make(map[string]bool)
	m.editCursor = 0
	for _, v := range m.store.FactorVariables(m.factorID) {
		m.editSel[v] = true
		if !m.store.HasVariable(v) {
			m.editItems = append(m.editItems, v)
		}
	}
}

func (m Model) updateFactorEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.editCursor = clamp(m.editCursor-1, len(m.editItems))
	case "down":
		m.editCursor = clamp(m.editCursor+1, len(m.editItems))
	case " ":
		if len(m.editItems) > 0 {
			v := m.editItems[clamp(m.editCursor, len(m.editItems))]
			m.editSel[v] = !m.editSel[v]
		}
	case "enter":
		var vars []string
		for _, v := range m.editItems {
			if m.editSel[v] {
				vars = append(vars, v)
			}
		}
		head := m.factorID
		m.store.SetFactorVariables(head, vars)
		m.navigate(RouteFactors, "")
		m.setStatus("saved factor "+head, false)
	case "esc":
		m.navigate(RouteFactors, "")
	}
	return m, nil
}

func (m Model) viewFactorEdit() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Factor "+m.factorID) + "\n")
	if _, ok := m.store.Factor(m.factorID); !ok {
		b.WriteString(MissingStyle.Render("  factor no longer exists; saving does nothing") + "\n")
	}
	for i, v := range m.editItems {
		box := "[ ]"
		if m.editSel[v] {
			box = "[x]"
		}
		label := v
		if !m.store.HasVariable(v) {
			label += MissingStyle.Render(" (missing)")
		}
		if i == clamp(m.editCursor, len(m.editItems)) {
			b.WriteString(CursorStyle.Render("▸ "+box+" ") + label + "\n")
		} else {
			b.WriteString("  " + box + " " + label + "\n")
		}
	}
	if len(m.editItems) == 0 {
		b.WriteString(DimItemStyle.Render("  (no variables)") + "\n")
	}
	return ActivePaneStyle.Render(strings.TrimRight(b.String(), "\n"))
}
