// Package ui implements the interactive terminal interface: template picker,
// questionnaire form, live prompt preview and the saved prompt library.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/promptfoundry/prompt-foundry/internal/models"
	"github.com/promptfoundry/prompt-foundry/internal/service"
	"github.com/promptfoundry/prompt-foundry/internal/synthesizer"
)

// createGlamourRenderer creates a glamour renderer with improved contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewTemplates ViewMode = iota
	ViewForm
	ViewPreview
	ViewSavedList
	ViewSavedDetail
)

// templateItem adapts a template to the bubbles list
type templateItem struct {
	template *models.Template
}

func (i templateItem) Title() string       { return i.template.Name }
func (i templateItem) Description() string { return i.template.Description }
func (i templateItem) FilterValue() string { return i.template.Name + " " + i.template.ID }

// Messages for async operations
type savedLoadedMsg struct {
	prompts []*models.SavedPrompt
	err     error
}

type connectivityMsg struct {
	online bool
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// loadSavedCmd loads the saved prompt library
func loadSavedCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		prompts, err := svc.ListSaved()
		return savedLoadedMsg{prompts: prompts, err: err}
	}
}

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	templateList list.Model
	savedList    list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	// Questionnaire state
	form          *QuestionnaireForm
	activeTmpl    *models.Template
	previewText   string
	selectedSaved *models.SavedPrompt
	deleteConfirm bool

	// Save-name input state
	naming    bool
	nameInput textinput.Model

	// Rendered content
	glamourRenderer *glamour.TermRenderer

	// Connectivity
	online  bool
	pending bool
	connCh  chan bool

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int

	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Copy     key.Binding
	CopyJSON key.Binding
	Share    key.Binding
	Save     key.Binding
	Library  key.Binding
	Delete   key.Binding
	Preview  key.Binding
	Edit     key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Copy, k.CopyJSON, k.Share, k.Save},
		{k.Library, k.Delete, k.Preview, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	CopyJSON: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy as JSON"),
	),
	Share: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "share"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Library: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "saved prompts"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Preview: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("Ctrl+p", "preview"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit answers"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	templates := svc.Templates()
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = templateItem{template: t}
	}

	tl := list.New(items, list.NewDefaultDelegate(), 80, 20)
	tl.Title = ""
	tl.SetShowStatusBar(false)
	tl.SetFilteringEnabled(true)
	tl.SetShowHelp(false)

	sl := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	sl.Title = ""
	sl.SetShowStatusBar(false)
	sl.SetFilteringEnabled(true)
	sl.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	ni := textinput.New()
	ni.Placeholder = "Prompt name (empty for a timestamped default)"
	ni.CharLimit = 100
	ni.Width = 50

	renderer, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	connCh := make(chan bool, 8)
	svc.Monitor().Subscribe(func(online bool) {
		select {
		case connCh <- online:
		default:
		}
	})

	return &Model{
		service:         svc,
		viewMode:        ViewTemplates,
		templateList:    tl,
		savedList:       sl,
		viewport:        vp,
		nameInput:       ni,
		help:            help.New(),
		keys:            keys,
		glamourRenderer: renderer,
		online:          svc.IsOnline(),
		pending:         svc.PendingSync(),
		connCh:          connCh,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSavedCmd(m.service), m.watchConnectivity())
}

// watchConnectivity waits for the next connectivity transition
func (m Model) watchConnectivity() tea.Cmd {
	ch := m.connCh
	return func() tea.Msg {
		return connectivityMsg{online: <-ch}
	}
}

// setStatus shows a transient status message
func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}

	case savedLoadedMsg:
		if msg.err != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Warning: %v", msg.err), "warning"))
		}
		items := make([]list.Item, len(msg.prompts))
		for i, p := range msg.prompts {
			items[i] = p
		}
		m.savedList.SetItems(items)

	case connectivityMsg:
		m.online = msg.online
		m.pending = m.service.PendingSync()
		cmds = append(cmds, m.watchConnectivity())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const minReservedHeight = 7
		availableHeight := msg.Height - minReservedHeight
		if availableHeight < 5 {
			availableHeight = 5
		}

		m.templateList.SetSize(msg.Width, availableHeight)
		m.savedList.SetSize(msg.Width, availableHeight)

		viewportWidth := msg.Width - 10
		if viewportWidth < 40 {
			viewportWidth = 40
		}
		m.viewport.Width = viewportWidth
		m.viewport.Height = availableHeight
		if renderer, err := createGlamourRenderer(viewportWidth - 6); err == nil {
			m.glamourRenderer = renderer
		}

		if m.form != nil {
			m.form.Resize(msg.Width, availableHeight)
		}
		if m.viewMode == ViewPreview {
			m.renderPreview(m.previewText)
		} else if m.viewMode == ViewSavedDetail && m.selectedSaved != nil {
			m.renderPreview(m.selectedSaved.Prompt)
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewTemplates:
			return m.updateTemplates(msg, cmds)
		case ViewForm:
			return m.updateForm(msg, cmds)
		case ViewPreview:
			return m.updatePreview(msg, cmds)
		case ViewSavedList:
			return m.updateSavedList(msg, cmds)
		case ViewSavedDetail:
			return m.updateSavedDetail(msg, cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateTemplates(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.templateList.FilterState() != list.Filtering {
		switch {
		case msg.String() == "q":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			if item, ok := m.templateList.SelectedItem().(templateItem); ok {
				tmpl, err := m.service.StartSession(item.template.ID)
				if err != nil {
					cmds = append(cmds, m.setStatus(fmt.Sprintf("Error: %v", err), "error"))
					break
				}
				m.activeTmpl = tmpl
				m.form = NewQuestionnaireForm(tmpl, m.service.Session().Answers(), func(id string, value interface{}) {
					m.service.UpdateAnswer(id, value)
				})
				m.form.Resize(m.width, m.height-7)
				m.viewMode = ViewForm
			}
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Library):
			m.viewMode = ViewSavedList
			return m, tea.Batch(append(cmds, loadSavedCmd(m.service))...)
		}
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateForm(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.service.EndSession()
		m.form = nil
		m.activeTmpl = nil
		m.viewMode = ViewTemplates
		return m, tea.Batch(cmds...)
	case key.Matches(msg, m.keys.Preview):
		ok, missing := m.form.CanSubmit()
		if !ok {
			return m, m.setStatus(fmt.Sprintf("Missing required answers: %v", missing), "error")
		}
		text, err := m.service.GeneratePrompt("")
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Error: %v", err), "error")
		}
		m.previewText = text
		m.renderPreview(text)
		m.viewMode = ViewPreview
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.form.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m Model) updatePreview(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.naming {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.naming = false
			m.nameInput.Blur()
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Enter):
			saved, err := m.service.SavePrompt(m.nameInput.Value(), "")
			m.naming = false
			m.nameInput.Blur()
			m.nameInput.SetValue("")
			if err != nil {
				return m, m.setStatus(fmt.Sprintf("Save failed: %v", err), "error")
			}
			m.pending = m.service.PendingSync()
			status := fmt.Sprintf("Saved %q", saved.Name)
			if !m.online {
				status += " (queued for sync)"
			}
			return m, tea.Batch(append(cmds, m.setStatus(status, "success"), loadSavedCmd(m.service))...)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Edit):
		m.viewMode = ViewForm
		return m, tea.Batch(cmds...)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyToClipboard(m.previewText)
	case key.Matches(msg, m.keys.CopyJSON):
		text, err := synthesizer.SynthesizeJSON(m.activeTmpl, m.service.Session().Answers(), "")
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Error: %v", err), "error")
		}
		return m, m.copyToClipboard(text)
	case key.Matches(msg, m.keys.Share):
		statusMsg, err := m.service.SharePrompt(m.activeTmpl.Name, m.previewText)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Share failed: %v", err), "error")
		}
		return m, m.setStatus(statusMsg, "success")
	case key.Matches(msg, m.keys.Save):
		m.naming = true
		m.nameInput.Focus()
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateSavedList(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.savedList.FilterState() != list.Filtering {
		switch {
		case msg.String() == "q", key.Matches(msg, m.keys.Back):
			m.deleteConfirm = false
			m.viewMode = ViewTemplates
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Enter):
			if p, ok := m.savedList.SelectedItem().(*models.SavedPrompt); ok {
				m.selectedSaved = p
				m.renderPreview(p.Prompt)
				m.viewMode = ViewSavedDetail
			}
			m.deleteConfirm = false
			return m, tea.Batch(cmds...)
		case key.Matches(msg, m.keys.Delete):
			p, ok := m.savedList.SelectedItem().(*models.SavedPrompt)
			if !ok {
				return m, tea.Batch(cmds...)
			}
			if !m.deleteConfirm {
				m.deleteConfirm = true
				return m, m.setStatus(fmt.Sprintf("Press d again to delete %q", p.Name), "warning")
			}
			m.deleteConfirm = false
			if err := m.service.DeleteSaved(p.ID); err != nil {
				return m, m.setStatus(fmt.Sprintf("Delete failed: %v", err), "error")
			}
			return m, tea.Batch(append(cmds, m.setStatus("Prompt deleted", "success"), loadSavedCmd(m.service))...)
		case key.Matches(msg, m.keys.Copy):
			if p, ok := m.savedList.SelectedItem().(*models.SavedPrompt); ok {
				return m, m.copyToClipboard(p.Prompt)
			}
		}
	}

	var cmd tea.Cmd
	m.savedList, cmd = m.savedList.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateSavedDetail(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q", key.Matches(msg, m.keys.Back):
		m.selectedSaved = nil
		m.viewMode = ViewSavedList
		return m, tea.Batch(cmds...)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyToClipboard(m.selectedSaved.Prompt)
	case key.Matches(msg, m.keys.Share):
		statusMsg, err := m.service.SharePrompt(m.selectedSaved.Name, m.selectedSaved.Prompt)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Share failed: %v", err), "error")
		}
		return m, m.setStatus(statusMsg, "success")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// copyToClipboard copies text and reports the outcome in the status bar
func (m *Model) copyToClipboard(text string) tea.Cmd {
	statusMsg, err := m.service.CopyPrompt(text)
	if err != nil {
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err), "error")
	}
	return m.setStatus(statusMsg, "success")
}

// renderPreview renders markdown into the viewport
func (m *Model) renderPreview(text string) {
	rendered, err := m.glamourRenderer.Render(text)
	if err != nil {
		rendered = text
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// View renders the current view
func (m Model) View() string {
	var header, body, helpText string

	switch m.viewMode {
	case ViewTemplates:
		header = CreateMainHeader("Prompt Foundry")
		body = m.templateList.View()
		helpText = "Enter: start • v: saved prompts • /: filter • q: quit"
	case ViewForm:
		header = CreateMainHeader(m.activeTmpl.Name)
		body = AddFormPadding(m.form.View())
		helpText = "Tab/↑↓: fields • Space/Enter: choose • Ctrl+p: preview • Esc: back"
	case ViewPreview:
		header = CreateMainHeader("Preview")
		body = StyleContentContainer.Render(m.viewport.View())
		if m.naming {
			body += "\n" + StyleFormLabel.Render("Save as:") + " " + m.nameInput.View()
			helpText = "Enter: save • Esc: cancel"
		} else {
			helpText = "c: copy • y: copy JSON • x: share • s: save • e: edit • Esc: back"
		}
	case ViewSavedList:
		header = CreateMainHeader("Saved Prompts")
		body = m.savedList.View()
		helpText = "Enter: view • c: copy • d: delete • /: filter • Esc: back"
	case ViewSavedDetail:
		title := "Saved Prompt"
		if m.selectedSaved != nil {
			title = m.selectedSaved.Name
		}
		header = CreateMainHeader(title)
		body = StyleContentContainer.Render(m.viewport.View())
		helpText = "c: copy • x: share • Esc: back"
	}

	statusBar := CreateSyncStatus(m.online, m.pending)
	if m.statusMsg != "" {
		statusBar = CreateStatus(m.statusMsg, m.statusType) + " " + statusBar
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		AddMainPadding(body),
		statusBar,
		TruncateHelp(helpText, m.width),
	)
}
