package ports

import "os/exec"

// EditorOpener builds the command that opens a note file in the user's editor.
// The TUI hands the command to bubbletea's ExecProcess.
type EditorOpener interface {
	Command(path string) (*exec.Cmd, error)
}
