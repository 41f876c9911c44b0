package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/factorpad/internal/gateway"
	"github.com/jeanpaul/factorpad/internal/request"
)

func (m Model) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if cmd := m.submitQuery(); cmd != nil {
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		return m, nil
	case "ctrl+g":
		m.compose()
		return m, nil
	case "ctrl+t":
		if m.opts.Op == request.OpMAP {
			m.opts.Op = request.OpMPE
		} else {
			m.opts.Op = request.OpMAP
		}
		m.setStatus("operation "+string(m.opts.Op), false)
		return m, nil
	case "ctrl+d":
		m.toggleDiff()
		return m, nil
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	case "esc":
		if m.inflight != 0 {
			m.disp.CancelAll()
			m.setStatus("request canceled", true)
			return m, nil
		}
		m.navigate(RouteVariables, "")
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// submitQuery sends the editor text and returns the command that delivers
// the reply. A request already in flight is superseded.
func (m *Model) submitQuery() tea.Cmd {
	text := strings.TrimSpace(m.editor.Value())
	if text == "" {
		m.setStatus("nothing to send", true)
		return nil
	}
	if m.opts.Validate != nil {
		if err := m.opts.Validate(text); err != nil {
			m.setStatus(err.Error(), true)
			return nil
		}
	}

	m.finished = false
	m.showDiff = false
	f := m.disp.Submit(m.ctx, text)
	m.inflight = f.Seq()
	m.setStatus("sending…", false)
	return waitForReply(f)
}

func waitForReply(f *gateway.Future) tea.Cmd {
	return func() tea.Msg {
		return replyMsg(f.Wait())
	}
}

// applyReply shows a reply unless a newer request has been sent since.
func (m *Model) applyReply(r gateway.Reply) {
	if !m.disp.IsCurrent(r.Seq) {
		return
	}
	m.prevResult = m.result
	m.result = gateway.DisplayText(r)
	m.finished = true
	m.inflight = 0
	m.showDiff = false
	if r.Err != nil {
		m.setStatus(r.Err.Error(), true)
	} else {
		m.setStatus("reply received", false)
	}
	m.viewport.SetContent(m.result)
	m.viewport.GotoTop()
}

// compose replaces the editor text with a request built from the model.
func (m *Model) compose() {
	text, err := request.Build(m.store, m.opts.Op).Encode()
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.editor.SetValue(text)
	m.setStatus("composed "+string(m.opts.Op)+" request from model", false)
}

func (m *Model) toggleDiff() {
	if m.showDiff {
		m.showDiff = false
		m.viewport.SetContent(m.result)
		return
	}
	if m.prevResult == "" || m.prevResult == gateway.DisplayPending {
		m.setStatus("need two replies to diff", true)
		return
	}
	m.showDiff = true
	m.viewport.SetContent(replyDiff(m.prevResult, m.result))
	m.viewport.GotoTop()
}

func (m Model) viewQuery() string {
	label := "Reply"
	if m.showDiff {
		label = "Reply diff"
	}
	state := ""
	if m.inflight != 0 {
		state = " " + m.spinner.View() + " waiting for " + m.disp.Endpoint()
	} else if m.finished {
		state = DimItemStyle.Render(" finished")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		PaneTitleStyle.Render("Request"),
		InputBoxStyle.Render(m.editor.View()),
		PaneTitleStyle.Render(label)+state,
		ReplyStyle.Render(m.viewport.View()),
	)
}

func (m Model) viewHelp() string {
	return renderMarkdown(m.renderer, helpMarkdown)
}
