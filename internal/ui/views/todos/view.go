package todos

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	tododto "focusdeck/internal/modules/todo/dto"
	"focusdeck/internal/platform/id"
	"focusdeck/internal/ui/theme"
)

type TodoPort interface {
	List(ctx context.Context, owner string) ([]tododto.Output, error)
	ReplaceAll(ctx context.Context, owner string, items []tododto.ItemInput) ([]tododto.Output, error)
	Patch(ctx context.Context, owner, todoID string, patch tododto.PatchInput) (tododto.Output, error)
	Remove(ctx context.Context, owner, todoID string) error
}

type LoadedMsg struct {
	Todos []tododto.Output
	Err   error
}

type mutatedMsg struct{ err error }

type todoItem struct {
	todo tododto.Output
}

func (i todoItem) Title() string {
	if i.todo.Completed {
		return "✓ " + i.todo.Text
	}
	return "· " + i.todo.Text
}

func (i todoItem) Description() string { return i.todo.ID }
func (i todoItem) FilterValue() string { return i.todo.Text }

type Model struct {
	port   TodoPort
	owner  string
	idGen  id.Generator
	list   list.Model
	input  textinput.Model
	adding bool
	width  int
	height int
}

func New(port TodoPort, owner string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Todos"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "new todo…"
	ti.CharLimit = 256

	return Model{
		port:  port,
		owner: owner,
		idGen: id.RandomHex{Prefix: "todo"},
		list:  l,
		input: ti,
	}
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// Adding reports whether the inline add prompt is open; global keys must
// yield while the user is typing.
func (m Model) Adding() bool { return m.adding }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-4, max(m.height-6, 3))

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Todos — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Todos"
		items := make([]list.Item, len(msg.Todos))
		for i, todo := range msg.Todos {
			items[i] = todoItem{todo: todo}
		}
		cmds = append(cmds, m.list.SetItems(items))
		return m, tea.Batch(cmds...)

	case mutatedMsg:
		if msg.err != nil {
			m.list.Title = "Todos — " + msg.err.Error()
			return m, nil
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc":
				m.adding = false
				m.input.Blur()
				return m, nil
			case "enter":
				text := m.input.Value()
				m.adding = false
				m.input.Blur()
				if text == "" {
					return m, nil
				}
				return m, m.addCmd(text)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "a":
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case "x":
			if item, ok := m.list.SelectedItem().(todoItem); ok {
				return m, m.toggleCmd(item.todo)
			}
		case "d":
			if item, ok := m.list.SelectedItem().(todoItem); ok {
				return m, m.removeCmd(item.todo.ID)
			}
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.adding {
		return m.list.View() + "\n" + theme.Hot.Render("add: ") + m.input.View()
	}
	return m.list.View() + "\n" + theme.Muted.Render("a:add  x:toggle  d:delete  r:reload")
}

// AddTodo is exposed for palette commands.
func (m Model) AddTodo(text string) tea.Cmd { return m.addCmd(text) }

// SetDone is exposed for palette commands.
func (m Model) SetDone(todoID string, done bool) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Patch(context.Background(), m.owner, todoID, tododto.PatchInput{Completed: &done})
		return mutatedMsg{err: err}
	}
}

// RemoveTodo is exposed for palette commands.
func (m Model) RemoveTodo(todoID string) tea.Cmd { return m.removeCmd(todoID) }

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.port.List(context.Background(), m.owner)
		return LoadedMsg{Todos: todos, Err: err}
	}
}

// addCmd appends by re-saving the whole ordered list, which is the store's
// bulk-save operation; positions are reassigned from array order.
func (m Model) addCmd(text string) tea.Cmd {
	newID := m.idGen.New()
	return func() tea.Msg {
		current, err := m.port.List(context.Background(), m.owner)
		if err != nil {
			return mutatedMsg{err: err}
		}
		items := make([]tododto.ItemInput, 0, len(current)+1)
		for _, todo := range current {
			items = append(items, tododto.ItemInput{
				ID:              todo.ID,
				Text:            todo.Text,
				Completed:       todo.Completed,
				RecordedInStats: todo.RecordedInStats,
			})
		}
		items = append(items, tododto.ItemInput{ID: newID, Text: text})
		_, err = m.port.ReplaceAll(context.Background(), m.owner, items)
		return mutatedMsg{err: err}
	}
}

func (m Model) toggleCmd(todo tododto.Output) tea.Cmd {
	done := !todo.Completed
	return func() tea.Msg {
		_, err := m.port.Patch(context.Background(), m.owner, todo.ID, tododto.PatchInput{Completed: &done})
		return mutatedMsg{err: err}
	}
}

func (m Model) removeCmd(todoID string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.Remove(context.Background(), m.owner, todoID)
		return mutatedMsg{err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
