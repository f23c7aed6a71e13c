package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AnalyzeView ViewState = iota
	TagListView
	FormView
	ConfirmView
	CreateView
	ResultView
)

type analysisCompleteMsg struct {
	result *models.AnalysisResult
	err    error
}

type creationCompleteMsg struct {
	result *models.CreationResult
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Engine
	width        int
	height       int
	tagList      list.Model
	analysis     *models.AnalysisResult
	selectedTag  models.TagCount
	titleInput   textinput.Model
	privacy      string
	progressChan chan tasks.ProgressUpdate
	doneMsg      func() tea.Msg
	progress     tasks.ProgressUpdate
	creation     *models.CreationResult
	creationErr  error
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided engine.
func NewModel(ctx context.Context, engine tasks.Engine) *Model {
	ti := textinput.New()
	ti.Placeholder = "Playlist title"
	ti.CharLimit = 150

	return &Model{
		ctx:        ctx,
		view:       AnalyzeView,
		engine:     engine,
		titleInput: ti,
		privacy:    models.PrivacyPublic,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the channel analysis in the background.
func (m *Model) Init() tea.Cmd {
	return m.startAnalysis()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.tagList.Width() == 0 {
			m.tagList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AnalyzeView, CreateView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case TagListView:
			return m.handleTagListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case analysisCompleteMsg:
		m.drainProgress()
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.analysis = msg.result
		items := make([]list.Item, len(msg.result.Tags))
		for i, tc := range msg.result.Tags {
			items[i] = tagItem{tag: tc}
		}
		m.tagList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.tagList.Title = fmt.Sprintf("Tags (%d videos)", len(msg.result.Videos))
		m.tagList.SetSize(m.width-4, m.height-8)
		m.view = TagListView
		return m, nil

	case creationCompleteMsg:
		m.drainProgress()
		m.creation = msg.result
		m.creationErr = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case AnalyzeView:
		return m.renderProgress("Analyzing Channel")
	case TagListView:
		return m.renderTagList()
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	case CreateView:
		return m.renderProgress("Creating Playlist")
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTagListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.tagList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(tagItem); ok {
				m.selectedTag = item.tag
				m.titleInput.SetValue(item.tag.Tag)
				m.titleInput.Focus()
				m.view = FormView
				return m, textinput.Blink
			}
		}
	}

	var cmd tea.Cmd
	m.tagList, cmd = m.tagList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.titleInput.Blur()
		m.view = TagListView
		return m, nil
	case "tab":
		m.privacy = nextPrivacy(m.privacy)
		return m, nil
	case "enter":
		if m.titleInput.Value() != "" {
			m.titleInput.Blur()
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = FormView
		m.titleInput.Focus()
		return m, textinput.Blink
	case "y":
		m.view = CreateView
		return m, m.startCreation()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = TagListView
		m.creation = nil
		m.creationErr = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == TagListView {
		m.tagList, cmd = m.tagList.Update(msg)
	}
	return m, cmd
}

func (m *Model) startAnalysis() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	done := make(chan analysisCompleteMsg, 1)

	go func(progress chan tasks.ProgressUpdate) {
		result, err := m.engine.Analyze(m.ctx, progress)
		done <- analysisCompleteMsg{result: result, err: err}
		close(progress)
	}(m.progressChan)

	m.doneMsg = func() tea.Msg { return <-done }
	return m.waitForProgress()
}

func (m *Model) startCreation() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	done := make(chan creationCompleteMsg, 1)

	req := tasks.CreationRequest{
		Title:       m.titleInput.Value(),
		Description: fmt.Sprintf("Videos tagged %q", m.selectedTag.Tag),
		Privacy:     m.privacy,
		Tag:         m.selectedTag.Tag,
		Videos:      m.analysis.Videos,
	}

	go func(progress chan tasks.ProgressUpdate) {
		result, err := m.engine.CreatePlaylist(m.ctx, progress, req)
		done <- creationCompleteMsg{result: result, err: err}
		close(progress)
	}(m.progressChan)

	m.doneMsg = func() tea.Msg { return <-done }
	return m.waitForProgress()
}

// waitForProgress reads the next progress update, falling through to the
// completion message once the worker closes the channel.
func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	done := m.doneMsg
	return func() tea.Msg {
		if progress == nil {
			return done()
		}
		update, ok := <-progress
		if !ok {
			return done()
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) drainProgress() {
	if m.progressChan != nil {
		for range m.progressChan {
		}
		m.progressChan = nil
	}
	m.doneMsg = nil
}

func (m *Model) renderProgress(heading string) string {
	title := styles.title.Render(heading)
	bar := renderBar(m.progress.Percent, 40)
	return fmt.Sprintf("%s\n%s %d%%\n%s", title, bar, m.progress.Percent, m.progress.Message)
}

func (m *Model) renderTagList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.tagList.View(), helpView)
}

func (m *Model) renderForm() string {
	title := styles.title.Render(fmt.Sprintf("New playlist from tag %q (%d videos)", m.selectedTag.Tag, m.selectedTag.Count))
	form := fmt.Sprintf("Title: %s\n\nPrivacy: %s", m.titleInput.View(), styles.warn.Render(m.privacy))

	helpKeys := []key.Binding{m.keys.enter, m.keys.tab, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, form, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Create playlist '%s'?", m.titleInput.Value()))
	info := fmt.Sprintf("\nTag: %s\nVideos: %d\nPrivacy: %s\n", m.selectedTag.Tag, m.selectedTag.Count, m.privacy)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResult() string {
	if m.creationErr != nil {
		inserted := 0
		if m.creation != nil {
			inserted = m.creation.InsertedCount
		}
		msg := fmt.Sprintf("Creation failed after %d insertions: %v\n\nPress r to go back, q to quit", inserted, m.creationErr)
		return styles.err.Render(msg)
	}

	if m.creation == nil {
		return styles.err.Render("No result available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render("✓ Playlist Created!")
	info := fmt.Sprintf(
		"\nTitle: %s\nID: %s\nVideos added: %d/%d\nPrivacy: %s",
		m.creation.Playlist.Title,
		m.creation.Playlist.ID,
		m.creation.InsertedCount,
		m.creation.RequestedCount,
		m.creation.Playlist.Privacy,
	)

	var note string
	if m.creation.RequestedCount == 0 {
		note = fmt.Sprintf("\n\n%s", styles.warn.Render("No videos carry this tag; the playlist was left empty."))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, note, helpView)
}

func renderBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func nextPrivacy(privacy string) string {
	switch privacy {
	case models.PrivacyPublic:
		return models.PrivacyPrivate
	case models.PrivacyPrivate:
		return models.PrivacyUnlisted
	default:
		return models.PrivacyPublic
	}
}
