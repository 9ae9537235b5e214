package views

import "chroninotes/internal/application"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToCreateMsg struct {
	ParentID string
	Folder   bool
}

type SwitchToRenameMsg struct {
	Node *application.TreeNode
}

type SwitchToDeleteMsg struct {
	Node *application.TreeNode
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// ActionDoneMsg reports a finished mutation. The browser reloads and,
// when SelectID is set, moves the cursor to that entry.
type ActionDoneMsg struct {
	Message  string
	SelectID string
}

// ActionErrMsg reports a failed mutation to the form that started it
type ActionErrMsg struct {
	Err error
}

// OpenEditorMsg requests opening a note file in the editor
type OpenEditorMsg struct {
	ID   string
	Path string
}

// StatusMsg shows a one-line message in the browser without reloading
type StatusMsg struct {
	Message string
	Err     error
}
