package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/code-critic/internal/apiclient"
)

const (
	editorHeight  = 12
	chromeHeight  = editorHeight + 10
	successLinger = 3 * time.Second

	msgEmptyCode    = "Please enter code to review!"
	msgConnected    = "✅ Backend connected successfully!"
	msgDisconnected = "❌ Cannot connect to backend server"
	troubleshooting = "💡 Troubleshooting: Check if the backend is running and has a valid API key"
	keyHelp         = "ctrl+s review • ctrl+l clear • ctrl+t test connection • pgup/pgdn scroll • esc quit"
)

type model struct {
	styles styles
	client reviewer

	editor   textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	isLoading bool
	review    string
	status    string
	statusErr bool
	statusSeq int
}

func initialModel(theme ThemeName, client reviewer, code string) *model {
	styles := GetTheme(theme)

	ta := textarea.New()
	ta.Placeholder = "Paste your code here for AI-powered review..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(editorHeight)
	ta.SetValue(code)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.spinner

	m := &model{
		styles:   styles,
		client:   client,
		editor:   ta,
		viewport: viewport.New(80, 10),
		spinner:  sp,
	}
	m.renderer = newRenderer(78)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case reviewCompleteMsg:
		m.isLoading = false
		if msg.err != nil {
			m.setStatus(apiclient.Describe(msg.err), true)
			return m, nil
		}
		m.review = msg.resp.Review
		m.renderReview()
		m.setStatus(fmt.Sprintf("Reviewed %d characters, %d characters of feedback", msg.resp.PromptLength, msg.resp.ReviewLength), false)
		return m, nil

	case healthCheckMsg:
		m.isLoading = false
		if msg.err != nil {
			m.setStatus(msgDisconnected, true)
			return m, nil
		}
		m.setStatus(msgConnected, false)
		return m, clearStatusAfter(successLinger, m.statusSeq)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.editor.SetWidth(msg.Width - 4)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.renderer = newRenderer(msg.Width - 8)
		m.renderReview()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlS:
		return m, m.submit()

	case tea.KeyCtrlL:
		if m.isLoading {
			return m, nil
		}
		m.editor.Reset()
		m.review = ""
		m.viewport.SetContent("")
		m.setStatus("", false)
		return m, nil

	case tea.KeyCtrlT:
		if m.isLoading {
			return m, nil
		}
		m.isLoading = true
		m.setStatus("", false)
		return m, tea.Batch(m.spinner.Tick, testConnectionCmd(m.client))

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.isLoading {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *model) submit() tea.Cmd {
	if m.isLoading {
		return nil
	}
	code := m.editor.Value()
	if strings.TrimSpace(code) == "" {
		m.setStatus(msgEmptyCode, true)
		return nil
	}

	m.isLoading = true
	m.review = ""
	m.viewport.SetContent("")
	m.setStatus("", false)
	return tea.Batch(m.spinner.Tick, submitReviewCmd(m.client, code))
}

func (m *model) setStatus(text string, isErr bool) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
}

func (m *model) renderReview() {
	if m.review == "" {
		return
	}
	content := m.review
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.review); err == nil {
			content = out
		}
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("💡 AI Code Reviewer"),
		"  ",
		m.styles.inactive.Render("Backend: "+m.client.BaseURL()),
	)

	sections := []string{
		header,
		m.styles.editor.Render(m.editor.View()),
		m.styles.help.Render(keyHelp),
		m.statusView(),
	}

	if m.review != "" {
		sections = append(sections,
			m.styles.heading.Render("📋 Code Review Results"),
			m.styles.review.Render(m.viewport.View()),
		)
	}

	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *model) statusView() string {
	switch {
	case m.isLoading:
		return m.spinner.View() + " " + m.styles.success.Render("🔍 Analyzing...")
	case m.status == "":
		return ""
	case m.statusErr:
		return m.styles.error.Render(m.status) + "\n" + m.styles.inactive.Render(troubleshooting)
	default:
		return m.styles.success.Render(m.status)
	}
}
