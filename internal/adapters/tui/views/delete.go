package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"chroninotes/internal/application/commands"
	"chroninotes/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	repo ports.NotesRepository
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(repo ports.NotesRepository) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		repo:              repo,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.TargetNode == nil {
		return ActionErrMsg{Err: fmt.Errorf("no target selected")}
	}

	entry := m.TargetNode.Entry
	result, err := commands.NewDeleteCommand(m.repo, entry.ID).Execute(context.Background())
	if err != nil {
		return ActionErrMsg{Err: err}
	}

	done := ActionDoneMsg{Message: result.Message}
	if entry.ParentID != nil {
		done.SelectID = *entry.ParentID
	}
	return done
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Confirmation").
		Message("This action cannot be undone!", true).
		Line(RenderTargetInfo(m.TargetNode, "Delete")).
		BlankLine()

	if m.TargetNode != nil && m.TargetNode.Entry.IsFolder {
		v.Muted("  All notes and folders inside will be deleted too.").BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Raw(RenderConfirmPrompt("Are you sure?")).
		String()
}
