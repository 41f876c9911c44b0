package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// MenuModel is the command palette opened with '/'.
type MenuModel struct {
	list   list.Model
	active bool
}

func NewMenuModel() MenuModel {
	items := []list.Item{
		item{title: "/vars", desc: "Manage variables"},
		item{title: "/factors", desc: "View and add factors"},
		item{title: "/query", desc: "Edit and send a request"},
		item{title: "/compose", desc: "Build the request from the model"},
		item{title: "/send", desc: "Send the current request"},
		item{title: "/diff", desc: "Compare the last two replies"},
		item{title: "/help", desc: "Show keys and commands"},
		item{title: "/quit", desc: "Exit the application"},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(DarkGreen)

	l := list.New(items, d, 36, 14)
	l.Title = "Commands"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Green).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m *MenuModel) Open() {
	m.active = true
	m.list.ResetSelected()
}

// Update handles navigation. On enter it closes the menu and returns the
// chosen command; esc closes it without a choice.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, string, tea.Cmd) {
	if !m.active {
		return m, "", nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.active = false
			return m, "", nil
		case "enter":
			m.active = false
			if it, ok := m.list.SelectedItem().(item); ok {
				return m, it.title, nil
			}
			return m, "", nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, "", cmd
}

func (m MenuModel) View() string {
	if !m.active {
		return ""
	}
	return MenuBoxStyle.Render(m.list.View())
}
