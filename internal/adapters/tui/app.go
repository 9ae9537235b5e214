package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chroninotes/internal/adapters/tui/views"
	"chroninotes/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCreate
	ViewRename
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo   ports.NotesRepository
	editor ports.EditorOpener
	logger *zap.Logger

	state   ViewState
	browser *views.BrowserModel
	create  *views.CreateModel
	rename  *views.RenameModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed and opener may be nil, which
// disables the edit and open-root actions.
func NewApp(repo ports.NotesRepository, ed ports.EditorOpener, opener ports.FolderOpener, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		repo:    repo,
		editor:  ed,
		logger:  logger,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(repo, opener),
		create:  views.NewCreateModel(repo),
		rename:  views.NewRenameModel(repo),
		delete:  views.NewDeleteModel(repo),
		help:    views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.SetTarget(msg.ParentID, msg.Folder)
		return a, a.create.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetTarget(msg.Node)
		return a, a.rename.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Node)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Mutation results
	case views.ActionDoneMsg:
		a.logger.Debug("tui action done", zap.String("message", msg.Message))
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		if msg.SelectID != "" {
			a.browser.Select(msg.SelectID)
		}
		return a, a.browser.Reload()

	case views.ActionErrMsg:
		a.logger.Warn("tui action failed", zap.Error(msg.Err))
		switch a.state {
		case ViewCreate:
			a.create.SetMessage(msg.Err.Error(), true)
		case ViewRename:
			a.rename.SetMessage(msg.Err.Error(), true)
		case ViewDelete:
			a.delete.SetMessage(msg.Err.Error(), true)
		default:
			a.browser.SetMessage(msg.Err.Error(), true)
		}
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.logger.Warn("editor exited with error", zap.Error(msg.err))
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return views.StatusMsg{Message: path}
		}
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	a.logger.Debug("opening editor", zap.String("path", path))
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewRename:
		return a.rename.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
