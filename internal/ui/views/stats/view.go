package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "focusdeck/internal/modules/stats/dto"
	"focusdeck/internal/ui/theme"
)

type StatsPort interface {
	Compute(ctx context.Context, owner string) (statsdto.Output, error)
}

type LoadedMsg struct {
	Stats statsdto.Output
	Err   error
}

type Model struct {
	port   StatsPort
	owner  string
	stats  statsdto.Output
	loaded bool
	errMsg string
	width  int
	height int
}

func New(port StatsPort, owner string) Model {
	return Model{port: port, owner: owner}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

// Refresh recomputes the whole summary; also used by the palette.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Compute(context.Background(), m.owner)
		return LoadedMsg{Stats: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.Stats
		m.loaded = true

	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Refresh()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.errMsg != "" {
		return theme.Pane.Render(theme.Bad.Render("stats: " + m.errMsg))
	}
	if !m.loaded {
		return theme.Pane.Render(theme.Muted.Render("computing…"))
	}
	s := m.stats

	trend := theme.Good.Render(fmt.Sprintf("+%.1f%%", s.WeeklyChange))
	if s.WeeklyChange < 0 {
		trend = theme.Bad.Render(fmt.Sprintf("%.1f%%", s.WeeklyChange))
	}

	best := s.MostProductiveDay
	if best == "" {
		best = "n/a"
	}

	totals := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Totals"),
		fmt.Sprintf("sessions        %d (%d completed)", s.TotalSessions, s.CompletedSessions),
		fmt.Sprintf("focus minutes   %d", s.TotalFocusMinutes),
		fmt.Sprintf("avg session     %.1f min", s.AverageSessionMinutes),
		fmt.Sprintf("avg per day     %.2f sessions", s.AverageDailySessions),
	)

	habits := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Habits"),
		fmt.Sprintf("streak          %d day(s)", s.CurrentStreak),
		"best day        "+best,
		"weekly trend    "+trend,
	)

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, totals, "    ", habits),
		"",
		renderBuckets("Last 7 days", s.ActivityLast7Days),
		renderBuckets("Last 30 days", s.ActivityLast30Days),
		renderBuckets("Last 90 days", s.ActivityLast90Days),
		"",
		theme.Title.Render("Last 90 days"),
		renderHeatmap(s.Heatmap, time.Now().UTC()),
		"",
		theme.Muted.Render("r:refresh"),
	}
	return theme.Pane.Width(max(m.width-4, 40)).Render(strings.Join(sections, "\n"))
}

// weekdayOrder fixes the column order for the bucket rows; the maps are
// keyed by weekday name.
var weekdayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func renderBuckets(title string, buckets map[string]statsdto.DayBucket) string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-14s", title)))
	for _, short := range weekdayOrder {
		bucket := buckets[fullWeekday(short)]
		cell := fmt.Sprintf("%s %2d", short, bucket.Count)
		if bucket.Count > 0 {
			sb.WriteString(theme.Good.Render(cell))
		} else {
			sb.WriteString(theme.Muted.Render(cell))
		}
		sb.WriteString("  ")
	}
	return sb.String()
}

func fullWeekday(short string) string {
	switch short {
	case "Mon":
		return time.Monday.String()
	case "Tue":
		return time.Tuesday.String()
	case "Wed":
		return time.Wednesday.String()
	case "Thu":
		return time.Thursday.String()
	case "Fri":
		return time.Friday.String()
	case "Sat":
		return time.Saturday.String()
	default:
		return time.Sunday.String()
	}
}

// renderHeatmap draws a GitHub-style grid: columns are weeks, rows are
// weekdays, covering the 91 days ending today. Entries are sparse, so
// absent dates render as the empty cell.
func renderHeatmap(entries []statsdto.HeatmapEntry, now time.Time) string {
	minutes := make(map[string]int, len(entries))
	peak := 0
	for _, e := range entries {
		minutes[e.Date] = e.Minutes
		if e.Minutes > peak {
			peak = e.Minutes
		}
	}

	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	// Pad back to the Monday on or before day -90 so columns align.
	start := end.AddDate(0, 0, -90)
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}

	empty := lipgloss.NewStyle().Foreground(theme.Surface0)
	rows := make([]strings.Builder, 7)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		row := (int(day.Weekday()) + 6) % 7
		mins, ok := minutes[day.Format("2006-01-02")]
		switch {
		case !ok:
			rows[row].WriteString(empty.Render("·"))
		default:
			rows[row].WriteString(lipgloss.NewStyle().Foreground(heatColor(mins, peak)).Render("■"))
		}
		rows[row].WriteString(" ")
	}

	lines := make([]string, 0, 7)
	for i, short := range weekdayOrder {
		lines = append(lines, theme.Muted.Render(short+" ")+strings.TrimRight(rows[i].String(), " "))
	}
	return strings.Join(lines, "\n")
}

func heatColor(mins, peak int) lipgloss.Color {
	if peak <= 0 || mins <= 0 {
		return theme.HeatLevels[0]
	}
	idx := mins * len(theme.HeatLevels) / (peak + 1)
	if idx >= len(theme.HeatLevels) {
		idx = len(theme.HeatLevels) - 1
	}
	return theme.HeatLevels[idx]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
