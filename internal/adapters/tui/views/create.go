package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chroninotes/internal/application/commands"
	"chroninotes/internal/ports"
)

const (
	fieldTitle = iota
	fieldIcon
)

// CreateModel is the model for the new note / new folder view
type CreateModel struct {
	ViewState
	repo     ports.NotesRepository
	form     *InputForm
	parentID string
	folder   bool
}

// NewCreateModel creates a new create view model
func NewCreateModel(repo ports.NotesRepository) *CreateModel {
	return &CreateModel{
		repo: repo,
		form: NewInputForm(
			NewInputField("Title:", "Untitled", 200),
			NewInputField("Icon:", "default", 8),
		),
	}
}

// SetTarget prepares the form for a new entry under parentID
func (m *CreateModel) SetTarget(parentID string, folder bool) {
	m.parentID = parentID
	m.folder = folder
	m.ClearMessage()
	m.form.Reset()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.create()
		}
	}

	return m, m.form.Update(msg)
}

func (m *CreateModel) create() tea.Cmd {
	parentID := m.parentID
	title := m.form.Value(fieldTitle)
	icon := m.form.Value(fieldIcon)
	folder := m.folder

	return func() tea.Msg {
		ctx := context.Background()

		var (
			result *commands.CreateResult
			err    error
		)
		if folder {
			result, err = commands.NewCreateFolderCommand(m.repo, parentID, title, icon).Execute(ctx)
		} else {
			result, err = commands.NewCreateNoteCommand(m.repo, parentID, title, icon).Execute(ctx)
		}
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message, SelectID: result.Entry.ID}
	}
}

// View renders the create view
func (m *CreateModel) View() string {
	title := "New Note"
	if m.folder {
		title = "New Folder"
	}

	parent := m.parentID
	if parent == "" {
		parent = "notes root"
	}

	return NewViewBuilder().
		Title(title).
		Subtitle("In " + parent + ". Leave fields empty for defaults.").
		Raw(m.form.Render()).
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("create")).
		String()
}
