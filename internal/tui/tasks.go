package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebincan/gomodoro/internal/store"
)

// tasksModel lists active tasks in their working order followed by
// the completed backlog. The cursor spans both sections.
type tasksModel struct {
	store  *store.Store
	width  int
	height int

	active    []store.Task
	completed []store.Task
	cursor    int

	formActive bool
	form       *huh.Form

	// Form field pointer (survives value copies)
	formTitle *string
}

func newTasksModel(s *store.Store) tasksModel {
	title := ""
	return tasksModel{
		store:     s,
		formTitle: &title,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		active, _ := m.store.ActiveTasks()
		completed, _ := m.store.CompletedTasks()
		return tasksDataMsg{active: active, completed: completed}
	}
}

func (m tasksModel) total() int {
	return len(m.active) + len(m.completed)
}

// taskAt maps the combined cursor to a task and whether it is active.
func (m tasksModel) taskAt(i int) (store.Task, bool) {
	if i < len(m.active) {
		return m.active[i], true
	}
	return m.completed[i-len(m.active)], false
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.active = msg.active
		m.completed = msg.completed
		if m.cursor >= m.total() {
			m.cursor = max(0, m.total()-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < m.total()-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.MoveUp):
		if task, isActive := m.selected(); isActive && task.Position != nil {
			if err := m.store.ReorderTask(task.ID, *task.Position-1); err != nil {
				return m, errStatus(err)
			}
			if m.cursor > 0 {
				m.cursor--
			}
			return m, m.refresh()
		}

	case key.Matches(msg, keys.MoveDown):
		if task, isActive := m.selected(); isActive && task.Position != nil {
			if err := m.store.ReorderTask(task.ID, *task.Position+1); err != nil {
				return m, errStatus(err)
			}
			if m.cursor < len(m.active)-1 {
				m.cursor++
			}
			return m, m.refresh()
		}

	case key.Matches(msg, keys.New):
		return m.showNewTaskForm()

	case key.Matches(msg, keys.Delete):
		if task, ok := m.selectedAny(); ok {
			if err := m.store.DeleteTask(task.ID); err != nil {
				return m, errStatus(err)
			}
			return m, tea.Batch(m.refresh(), func() tea.Msg {
				return statusMsg{text: "Deleted " + task.Title}
			})
		}

	case key.Matches(msg, keys.Enter):
		if task, isActive := m.selected(); isActive {
			if err := m.store.CompleteTask(task.ID); err != nil {
				return m, errStatus(err)
			}
			return m, m.refresh()
		}
		if task, ok := m.selectedAny(); ok {
			if err := m.store.UncompleteTask(task.ID); err != nil {
				return m, errStatus(err)
			}
			return m, m.refresh()
		}

	case key.Matches(msg, keys.Start):
		if task, isActive := m.selected(); isActive {
			return m, func() tea.Msg {
				return startTaskMsg{taskID: task.ID, title: task.Title}
			}
		}
	}
	return m, nil
}

// selected returns the task under the cursor when it sits in the
// active section.
func (m tasksModel) selected() (store.Task, bool) {
	if m.total() == 0 || m.cursor >= m.total() {
		return store.Task{}, false
	}
	task, isActive := m.taskAt(m.cursor)
	return task, isActive
}

func (m tasksModel) selectedAny() (store.Task, bool) {
	if m.total() == 0 || m.cursor >= m.total() {
		return store.Task{}, false
	}
	task, _ := m.taskAt(m.cursor)
	return task, true
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		title := strings.TrimSpace(*m.formTitle)
		if title != "" {
			if _, err := m.store.CreateTask(title); err != nil {
				return m, tea.Batch(m.refresh(), errStatus(err))
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")

	if m.total() == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, task := range m.active {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		meta := mutedStyle.Render(fmt.Sprintf("  🍅 %d  %s", task.CompletedPomodoros, formatSeconds(task.FocusedSeconds)))
		rows = append(rows, style.Render(cursor+task.Title)+meta)
	}

	if len(m.completed) > 0 {
		rows = append(rows, "", mutedStyle.Render("Completed"))
		for i, task := range m.completed {
			idx := len(m.active) + i
			cursor := "  "
			style := doneItemStyle
			if idx == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			meta := mutedStyle.Render(fmt.Sprintf("  🍅 %d", task.CompletedPomodoros))
			rows = append(rows, style.Render(cursor+task.Title)+meta)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: complete/restore  s: start  J/K: move  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
