package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusdeck/internal/modules/session/dto"
	"focusdeck/internal/platform/config"
	"focusdeck/internal/ui/components"
	"focusdeck/internal/ui/theme"
	statsview "focusdeck/internal/ui/views/stats"
	timerview "focusdeck/internal/ui/views/timer"
	todosview "focusdeck/internal/ui/views/todos"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabTodos
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Todos", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionLoggedMsg struct {
	out sessiondto.Output
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Add     key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start timer")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add todo")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start},
		{k.Add, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	owner   string
	session timerview.SessionPort

	timerView timerview.Model
	todoView  todosview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	cfg config.Config,
	session timerview.SessionPort,
	todo todosview.TodoPort,
	stats statsview.StatsPort,
) Model {
	return Model{
		owner:     cfg.Owner,
		session:   session,
		timerView: timerview.New(session, cfg.Owner, cfg.FocusMinutes, cfg.Notify),
		todoView:  todosview.New(todo, cfg.Owner),
		statsView: statsview.New(stats, cfg.Owner),
		activeTab: tabTimer,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.todoView.Init(),
		m.statsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case sessionLoggedMsg:
		if msg.err != nil {
			m.status = "session log failed: " + msg.err.Error()
		} else {
			m.status = "logged " + strconv.Itoa(msg.out.DurationMin) + " minutes"
			// The summary is stale the moment a session lands.
			cmds = append(cmds, m.statsView.Refresh())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	// Timer start/stop messages always route to the timer view regardless of
	// the active tab, since the palette can fire them from anywhere.
	case timerview.StartMsg, timerview.StopMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		m.activeTab = tabTimer
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the todo view while its filter or add prompt is active.
		if m.subViewTyping() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabTodos:
		m.todoView, tabCmd = m.todoView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabTodos:
		return m.todoView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focusdeck  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timerView.Running() {
		left = theme.Hot.Render("● focusing") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:start":
		minutes := 0
		if len(parts) >= 2 {
			if v, err := strconv.Atoi(parts[1]); err == nil {
				minutes = v
			}
		}
		label := ""
		if len(parts) >= 3 {
			label = strings.Join(parts[2:], " ")
		}
		return m, m.timerView.Start(minutes, label)

	case "timer:stop":
		return m, m.timerView.Stop()

	case "session:log":
		if len(parts) < 2 {
			m.status = "usage: session:log <minutes> [label]"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes <= 0 {
			m.status = "invalid minutes"
			return m, nil
		}
		label := ""
		if len(parts) >= 3 {
			label = strings.Join(parts[2:], " ")
		}
		return m, m.logSessionCmd(minutes, label)

	case "todo:add":
		if len(parts) < 2 {
			m.status = "usage: todo:add <text>"
			return m, nil
		}
		m.activeTab = tabTodos
		return m, m.todoView.AddTodo(strings.Join(parts[1:], " "))

	case "todo:done":
		if len(parts) < 2 {
			m.status = "usage: todo:done <id>"
			return m, nil
		}
		m.activeTab = tabTodos
		return m, m.todoView.SetDone(parts[1], true)

	case "todo:rm":
		if len(parts) < 2 {
			m.status = "usage: todo:rm <id>"
			return m, nil
		}
		m.activeTab = tabTodos
		return m, m.todoView.RemoveTodo(parts[1])

	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Refresh()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab is consuming free-form text,
// in which case global key bindings must yield.
func (m Model) subViewTyping() bool {
	if m.activeTab == tabTodos {
		return m.todoView.Filtering() || m.todoView.Adding()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.todoView, _ = m.todoView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

// logSessionCmd records an already finished interval ending now.
func (m Model) logSessionCmd(minutes int, label string) tea.Cmd {
	owner := m.owner
	session := m.session
	return func() tea.Msg {
		end := time.Now().UTC()
		out, err := session.Log(context.Background(), sessiondto.CreateInput{
			Owner:     owner,
			Label:     label,
			StartedAt: end.Add(-time.Duration(minutes) * time.Minute),
			EndedAt:   end,
			Completed: true,
		})
		return sessionLoggedMsg{out: out, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
