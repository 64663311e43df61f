package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/journal"
)

const dateLayout = "Jan 2, 2006"

// journal item for the list
type journalItem struct{ j *journal.Journal }

func (it journalItem) Title() string { return it.j.DisplayTitle() }
func (it journalItem) Description() string {
	var parts []string
	if it.j.CreatedAt.Valid() {
		parts = append(parts, it.j.CreatedAt.Local().Format(dateLayout))
	}
	if it.j.Location != nil && *it.j.Location != "" {
		parts = append(parts, *it.j.Location)
	}
	return strings.Join(parts, " · ")
}
func (it journalItem) FilterValue() string { return it.j.DisplayTitle() }

// messages
type errMsg struct{ err error }

// changedMsg reports that the dashboard produced a new view.
type changedMsg struct{}

// refreshedMsg follows an explicit reload.
type refreshedMsg struct{}

// Model contains UI state. The dashboard controller owns the journals; the
// model only mirrors its latest view.
type Model struct {
	ctrl    *dashboard.Controller
	ctx     context.Context
	changes <-chan struct{}

	search textinput.Model
	list   list.Model

	view   dashboard.View
	detail bool
	status string

	termWidth  int
	termHeight int
}

// New creates a UI model over ctrl. changes must receive a value whenever
// the controller notifies its listener.
func New(ctx context.Context, ctrl *dashboard.Controller, changes <-chan struct{}) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "Journals"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Search journals"
	ti.CharLimit = 256
	ti.Prompt = "/ "
	ti.Focus()

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		changes: changes,
		search:  ti,
		list:    l,
		status:  "type to search, tab sort, ↑/↓ move, enter open, ctrl+d delete, esc back/quit",
	}
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.waitForChange(), textinput.Blink)
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		if err := m.ctrl.Refresh(m.ctx); err != nil {
			return errMsg{err}
		}
		return refreshedMsg{}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-m.changes:
			return changedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case changedMsg:
		m.apply(m.ctrl.View())
		cmds = append(cmds, m.waitForChange())
	case refreshedMsg:
		m.apply(m.ctrl.View())
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				m.ctrl.ClearSelection()
				break
			}
			return m, tea.Quit
		case "tab":
			next := m.view.Sort.Next()
			if err := m.ctrl.SetSort(m.ctx, next); err != nil {
				m.status = "ERR: " + err.Error()
			} else {
				m.status = "Sorted by " + next.Label()
				m.apply(m.ctrl.View())
			}
		case "up":
			m.list.CursorUp()
		case "down":
			m.list.CursorDown()
		case "enter":
			if it := m.currentJournal(); it != nil {
				if _, err := m.ctrl.Select(m.ctx, it.ID); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.detail = true
					m.apply(m.ctrl.View())
				}
			}
		case "ctrl+d":
			if it := m.currentJournal(); it != nil {
				if err := m.ctrl.Delete(m.ctx, it.ID); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = "Deleted " + it.DisplayTitle()
					m.detail = false
					m.apply(m.ctrl.View())
				}
			}
		case "ctrl+r":
			cmds = append(cmds, m.refresh())
		default:
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if after := m.search.Value(); after != before {
				m.ctrl.SearchChanged(after)
			}
		}
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// apply mirrors a dashboard view into the list, keeping the cursor on the
// same journal when it is still shown.
func (m *Model) apply(v dashboard.View) {
	current := m.currentJournal()
	m.view = v

	items := make([]list.Item, 0, len(v.Journals))
	sel := 0
	for i, j := range v.Journals {
		items = append(items, journalItem{j: j})
		if current != nil && j.ID == current.ID {
			sel = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(sel)
	}
	m.list.Title = fmt.Sprintf("Journals (%d) · %s", len(items), v.Sort.ShortLabel())
	if v.Selected == nil {
		m.detail = false
	}
}

func (m *Model) currentJournal() *journal.Journal {
	if len(m.list.Items()) == 0 {
		return nil
	}
	sel := m.list.SelectedItem()
	if sel == nil {
		return nil
	}
	it, ok := sel.(journalItem)
	if !ok {
		return nil
	}
	return it.j
}

// View renders the search field, the list and the detail pane.
func (m Model) View() string {
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.status)
	body := m.search.View() + "\n\n" + m.list.View()

	if m.detail && m.view.Selected != nil {
		panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", panelStyle.Render(m.renderDetail(m.view.Selected)))
	}

	return body + "\n\n" + status
}

func (m Model) detailWidth() int {
	if m.termWidth == 0 {
		return 60
	}
	w := m.termWidth/2 - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderDetail(j *journal.Journal) string {
	width := m.detailWidth()
	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	lines := []string{bold.Render(truncate.StringWithTail(j.DisplayTitle(), uint(width), "…"))}
	if j.Location != nil && *j.Location != "" {
		lines = append(lines, faint.Render(*j.Location))
	}
	if j.CreatedAt.Valid() {
		lines = append(lines, faint.Render(j.CreatedAt.Local().Format(dateLayout)))
	}
	if j.Temporary() {
		lines = append(lines, faint.Render("not saved yet"))
	}
	if j.Content != nil {
		lines = append(lines, "", wordwrap.String(*j.Content, width))
	}
	if thumb, ok := j.Thumbnail(); ok {
		lines = append(lines, "", faint.Render(truncate.StringWithTail(thumb, uint(width), "…")))
	}
	return strings.Join(lines, "\n")
}

// applySizes recalculates the list size based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth
	if m.detail {
		width = m.termWidth / 2
	}
	// Leave room for the search field and status line
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.list.SetSize(width, height)
}
