package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chroninotes/internal/application"
	"chroninotes/internal/application/commands"
	"chroninotes/internal/ports"
)

// RenameModel changes the title of an entry. The id and the file on disk
// stay the same.
type RenameModel struct {
	ViewState
	repo   ports.NotesRepository
	form   *InputForm
	target *application.TreeNode
}

// NewRenameModel creates a new rename view model
func NewRenameModel(repo ports.NotesRepository) *RenameModel {
	return &RenameModel{
		repo: repo,
		form: NewInputForm(NewInputField("Title:", "", 200)),
	}
}

// SetTarget prefills the form with the current title of node
func (m *RenameModel) SetTarget(node *application.TreeNode) {
	m.target = node
	m.ClearMessage()
	m.form.Reset()
	m.form.SetValue(0, node.Entry.Title)
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.rename()
		}
	}

	return m, m.form.Update(msg)
}

func (m *RenameModel) rename() tea.Cmd {
	if m.target == nil {
		return nil
	}
	id := m.target.Entry.ID
	title := m.form.Value(0)

	return func() tea.Msg {
		cmd := commands.NewUpdateCommand(m.repo, id, application.Patch{Title: &title})
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message, SelectID: id}
	}
}

// View renders the rename view
func (m *RenameModel) View() string {
	return NewViewBuilder().
		Title("Retitle " + kindName(m.target)).
		Subtitle(RenderEntry(m.target)).
		Raw(m.form.Render()).
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("save")).
		String()
}
