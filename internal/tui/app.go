package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/factorpad/internal/gateway"
	"github.com/jeanpaul/factorpad/internal/model"
	"github.com/jeanpaul/factorpad/internal/request"
)

// QuerySpinner is shown while a request is in flight.
var QuerySpinner = spinner.Spinner{
	Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	FPS:    time.Second / 12,
}

// Route selects the view on screen.
type Route int

const (
	RouteVariables Route = iota
	RouteFactors
	RouteFactorEdit
	RouteQuery
	RouteHelp
)

var routeNames = map[Route]string{
	RouteVariables:  "Variables",
	RouteFactors:    "Factors",
	RouteFactorEdit: "Edit factor",
	RouteQuery:      "Query",
	RouteHelp:       "Help",
}

type replyMsg gateway.Reply

// Options configure the TUI.
type Options struct {
	Op       request.Op
	Validate func(string) error // optional pre-submit check
}

type Model struct {
	width, height int

	store *model.Store
	disp  *gateway.Dispatcher
	opts  Options

	route    Route
	factorID string // route parameter of RouteFactorEdit

	input    textinput.Model
	editor   textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	menu     MenuModel
	renderer *glamour.TermRenderer

	varCursor    int
	factorCursor int
	factorFocus  bool // factors pane has focus instead of variables pane

	editItems  []string
	editSel    map[string]bool
	editCursor int

	result     string
	prevResult string
	finished   bool
	inflight   uint64
	showDiff   bool

	status    string
	statusErr bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewModel(store *model.Store, disp *gateway.Dispatcher, opts Options) Model {
	if opts.Op == "" {
		opts.Op = request.OpMAP
	}

	in := textinput.New()
	in.Placeholder = "variable name"
	in.Prompt = "> "
	in.CharLimit = 128
	in.Focus()

	ta := textarea.New()
	ta.Placeholder = "Start here"
	ta.CharLimit = 0
	ta.SetHeight(8)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(White)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(DimGreen)
	ta.BlurredStyle.Base = lipgloss.NewStyle().Foreground(DarkGreen)

	sp := spinner.New()
	sp.Spinner = QuerySpinner
	sp.Style = SpinnerStyle

	vp := viewport.New(80, 10)
	vp.SetContent(gateway.DisplayPending)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		store:    store,
		disp:     disp,
		opts:     opts,
		route:    RouteVariables,
		input:    in,
		editor:   ta,
		spinner:  sp,
		viewport: vp,
		menu:     NewMenuModel(),
		renderer: r,
		result:   gateway.DisplayPending,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 6)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-22, 3)
		return m, nil

	case replyMsg:
		m.applyReply(gateway.Reply(msg))
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.menu.active {
			var choice string
			var cmd tea.Cmd
			m.menu, choice, cmd = m.menu.Update(msg)
			if choice != "" {
				return m.runCommand(choice)
			}
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "f1":
			m.navigate(RouteHelp, "")
			return m, nil
		case "f2":
			m.navigate(RouteVariables, "")
			return m, nil
		case "f3":
			m.navigate(RouteFactors, "")
			return m, nil
		case "f4":
			m.navigate(RouteQuery, "")
			return m, nil
		case "/":
			if m.menuAllowed() {
				m.menu.Open()
				return m, nil
			}
		}

		switch m.route {
		case RouteVariables:
			return m.updateVariables(msg)
		case RouteFactors:
			return m.updateFactors(msg)
		case RouteFactorEdit:
			return m.updateFactorEdit(msg)
		case RouteQuery:
			return m.updateQuery(msg)
		case RouteHelp:
			if msg.String() == "esc" || msg.String() == "q" {
				m.navigate(RouteVariables, "")
			}
			return m, nil
		}
	}

	return m, nil
}

// menuAllowed keeps '/' typeable inside non-empty inputs.
func (m Model) menuAllowed() bool {
	switch m.route {
	case RouteVariables:
		return m.input.Value() == ""
	case RouteQuery:
		return m.editor.Value() == ""
	}
	return true
}

// navigate switches views. param is the factor head for RouteFactorEdit.
func (m *Model) navigate(r Route, param string) {
	m.route = r
	m.status = ""
	switch r {
	case RouteVariables:
		m.editor.Blur()
		m.input.Focus()
	case RouteQuery:
		m.input.Blur()
		m.editor.Focus()
	case RouteFactorEdit:
		m.factorID = param
		m.loadFactorEdit()
		m.input.Blur()
		m.editor.Blur()
	default:
		m.input.Blur()
		m.editor.Blur()
	}
}

func (m Model) runCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "/vars":
		m.navigate(RouteVariables, "")
	case "/factors":
		m.navigate(RouteFactors, "")
	case "/query":
		m.navigate(RouteQuery, "")
	case "/compose":
		m.navigate(RouteQuery, "")
		m.compose()
	case "/send":
		m.navigate(RouteQuery, "")
		if c := m.submitQuery(); c != nil {
			return m, tea.Batch(c, m.spinner.Tick)
		}
	case "/diff":
		m.navigate(RouteQuery, "")
		m.toggleDiff()
	case "/help":
		m.navigate(RouteHelp, "")
	case "/quit":
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.disp.CancelAll()
	m.cancel()
	return m, tea.Quit
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) View() string {
	var tabs []string
	for _, r := range []Route{RouteVariables, RouteFactors, RouteQuery, RouteHelp} {
		name := routeNames[r]
		if r == m.route || (r == RouteFactors && m.route == RouteFactorEdit) {
			tabs = append(tabs, ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, TabStyle.Render(name))
		}
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			BannerStyle.Render(Banner)+" ",
			StatusEndpointStyle.Render(m.disp.Endpoint()),
			StatusBarStyle.Render(string(m.opts.Op)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)

	var body string
	switch m.route {
	case RouteVariables:
		body = m.viewVariables()
	case RouteFactors:
		body = m.viewFactors()
	case RouteFactorEdit:
		body = m.viewFactorEdit()
	case RouteQuery:
		body = m.viewQuery()
	case RouteHelp:
		body = m.viewHelp()
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = ErrorStyle.Render("✗ " + m.status)
		} else {
			status = SuccessStyle.Render("✓ " + m.status)
		}
	}

	footer := HelpStyle.Render(footerHelp[m.route] + "  •  /: menu  •  F1 help  •  Ctrl+C quit")

	parts := []string{header, "", body}
	if status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, footer)
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.menu.active {
		return lipgloss.JoinVertical(lipgloss.Left, view, m.menu.View())
	}
	return view
}

var footerHelp = map[Route]string{
	RouteVariables:  "Enter: add  •  ↑/↓: select  •  Ctrl+X: delete  •  Ctrl+E: evidence  •  Ctrl+R: query var",
	RouteFactors:    "Tab: switch pane  •  Enter: add/edit  •  d: delete factor  •  Esc: back",
	RouteFactorEdit: "Space: toggle  •  Enter: save  •  Esc: cancel",
	RouteQuery:      "Ctrl+S: send  •  Ctrl+G: compose  •  Ctrl+T: MAP/MPE  •  Ctrl+D: diff  •  Esc: cancel",
	RouteHelp:       "Esc: back",
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
