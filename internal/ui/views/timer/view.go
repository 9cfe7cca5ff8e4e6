package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"

	sessiondto "focusdeck/internal/modules/session/dto"
	"focusdeck/internal/ui/theme"
)

// SessionPort records finished (or abandoned) focus intervals.
type SessionPort interface {
	Log(ctx context.Context, input sessiondto.CreateInput) (sessiondto.Output, error)
}

// StartMsg arrives from the palette or key handling and begins a countdown.
type StartMsg struct {
	Minutes int
	Label   string
}

// StopMsg abandons the running countdown; the partial interval is still
// recorded, just not as completed.
type StopMsg struct{}

type tickMsg time.Time

type loggedMsg struct {
	out       sessiondto.Output
	completed bool
	err       error
}

type Model struct {
	port           SessionPort
	owner          string
	defaultMinutes int
	notify         bool

	bar       progress.Model
	running   bool
	label     string
	startedAt time.Time
	total     time.Duration
	remaining time.Duration
	status    string
	width     int
	height    int
}

func New(port SessionPort, owner string, defaultMinutes int, notify bool) Model {
	if defaultMinutes <= 0 {
		defaultMinutes = 25
	}
	return Model{
		port:           port,
		owner:          owner,
		defaultMinutes: defaultMinutes,
		notify:         notify,
		bar:            progress.New(progress.WithDefaultGradient()),
		status:         "press s to start",
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Start is invoked by the app layer (palette commands); it only produces a
// message, the state change happens in Update.
func (m Model) Start(minutes int, label string) tea.Cmd {
	return func() tea.Msg { return StartMsg{Minutes: minutes, Label: label} }
}

func (m Model) Stop() tea.Cmd {
	return func() tea.Msg { return StopMsg{} }
}

func (m Model) Running() bool { return m.running }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(m.width-8, 60)

	case StartMsg:
		if m.running {
			m.status = "already running"
			return m, nil
		}
		minutes := msg.Minutes
		if minutes <= 0 {
			minutes = m.defaultMinutes
		}
		m.running = true
		m.label = msg.Label
		m.startedAt = time.Now()
		m.total = time.Duration(minutes) * time.Minute
		m.remaining = m.total
		m.status = "focusing"
		return m, tick()

	case StopMsg:
		if !m.running {
			return m, nil
		}
		m.running = false
		m.status = "abandoned"
		return m, m.logCmd(false, time.Now())

	case tickMsg:
		if !m.running {
			return m, nil
		}
		m.remaining = m.total - time.Since(m.startedAt)
		if m.remaining > 0 {
			return m, tick()
		}
		m.running = false
		m.remaining = 0
		m.status = "complete"
		endedAt := m.startedAt.Add(m.total)
		cmds := []tea.Cmd{m.logCmd(true, endedAt)}
		if m.notify {
			cmds = append(cmds, m.notifyCmd())
		}
		return m, tea.Batch(cmds...)

	case loggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
		} else if msg.completed {
			m.status = fmt.Sprintf("logged %d focused minutes", msg.out.DurationMin)
		} else {
			m.status = fmt.Sprintf("abandoned after %d minutes", msg.out.DurationMin)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if !m.running {
				return m, m.Start(0, "")
			}
		case "x":
			if m.running {
				return m, m.Stop()
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	label := m.label
	if label == "" {
		label = "Focus session"
	}

	var body string
	if m.running || m.remaining > 0 {
		percent := 0.0
		if m.total > 0 {
			percent = 1 - m.remaining.Seconds()/m.total.Seconds()
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render(label),
			"",
			theme.Hot.Render(formatRemaining(m.remaining)),
			"",
			m.bar.ViewAs(percent),
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("Timer"),
			"",
			theme.Muted.Render(fmt.Sprintf("%d-minute focus interval", m.defaultMinutes)),
		)
	}

	body = lipgloss.JoinVertical(lipgloss.Left,
		body,
		"",
		theme.Muted.Render(m.status),
		theme.Muted.Render("s:start  x:abandon"),
	)
	return theme.Pane.Width(max(m.width-4, 20)).Render(body)
}

func (m Model) logCmd(completed bool, endedAt time.Time) tea.Cmd {
	input := sessiondto.CreateInput{
		Owner:     m.owner,
		Label:     m.label,
		StartedAt: m.startedAt,
		EndedAt:   endedAt,
		Completed: completed,
	}
	return func() tea.Msg {
		out, err := m.port.Log(context.Background(), input)
		return loggedMsg{out: out, completed: completed, err: err}
	}
}

func (m Model) notifyCmd() tea.Cmd {
	label := m.label
	if label == "" {
		label = "Focus session"
	}
	return func() tea.Msg {
		_ = beeep.Notify("Focus complete", label+" finished", "")
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
