package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	AddView
)

// Model represents the TUI application state.
type Model struct {
	store    *store.Store
	view     ViewState
	width    int
	height   int
	records  []models.Record
	onlyDone bool
	list     list.Model
	input    textinput.Model
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model bound to s.
func NewModel(s *store.Store) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = s.Path()
	l.SetShowHelp(false)

	input := textinput.New()
	input.Placeholder = "Buy milk"
	input.CharLimit = 512

	return &Model{
		store: s,
		view:  ListView,
		list:  l,
		input: input,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init loads the records from disk.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AddView:
			return m.handleAddKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgRecordsLoaded:
			data := msg.data.(recordsLoaded)
			if data.err != nil {
				m.err = data.err
				return m, nil
			}
			m.err = nil
			m.records = data.records
			return m, m.refresh()

		case MsgRecordInserted:
			data := msg.data.(recordInserted)
			if data.err != nil {
				m.err = data.err
				return m, nil
			}
			m.status = fmt.Sprintf("Added %q", data.task)
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case AddView:
		return m.renderAdd()
	default:
		return m.renderList()
	}
}

// Records returns the records from the last load.
func (m *Model) Records() []models.Record { return m.records }

// Visible returns the records currently shown in the list.
func (m *Model) Visible() []models.Record {
	items := m.list.Items()
	out := make([]models.Record, 0, len(items))
	for _, it := range items {
		out = append(out, it.(recordItem).record)
	}
	return out
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// keys belong to the list while its fuzzy filter is open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.filter):
		m.onlyDone = !m.onlyDone
		return m, m.refresh()
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		return m, m.load()
	case key.Matches(msg, m.keys.add):
		m.view = AddView
		m.status = ""
		m.input.Reset()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.input.Blur()
		m.view = ListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		task := strings.TrimSpace(m.input.Value())
		if task == "" {
			m.status = "task must not be empty"
			return m, nil
		}
		m.input.Blur()
		m.view = ListView
		return m, m.insert(task)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refresh() tea.Cmd {
	title := m.store.Path()
	if m.onlyDone {
		title += " (done only)"
	}
	m.list.Title = title
	return m.list.SetItems(recordItems(m.records, m.onlyDone))
}

func (m *Model) load() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		records, err := s.ReadAll()
		return recordsLoadedMsg(records, err)
	}
}

func (m *Model) insert(task string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return recordInsertedMsg(task, s.Insert(task, false))
	}
}

func (m *Model) footer() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return styles.help.Render(m.status)
	default:
		done := models.CountDone(m.records)
		return styles.help.Render(fmt.Sprintf("%d tasks, %d done", len(m.records), done))
	}
}

func (m *Model) renderList() string {
	return fmt.Sprintf("%s\n%s\n\n%s", m.list.View(), m.footer(), m.help.View(m.keys))
}

func (m *Model) renderAdd() string {
	title := styles.title.Render(fmt.Sprintf("New task in %s", m.store.Path()))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.input.View(), m.footer(), helpView)
}
