package commands

import (
	"context"
	"fmt"

	"chroninotes/internal/ports"
)

// RootResult contains the notes root location
type RootResult struct {
	Path    string
	Opened  bool
	Message string
}

// RootCommand reports the notes root and optionally reveals it in the
// file explorer. The root is created if missing.
type RootCommand struct {
	repo   ports.NotesRepository
	opener ports.FolderOpener
	Open   bool
}

// NewRootCommand creates a new RootCommand. opener may be nil when Open is false.
func NewRootCommand(repo ports.NotesRepository, opener ports.FolderOpener, open bool) *RootCommand {
	return &RootCommand{
		repo:   repo,
		opener: opener,
		Open:   open,
	}
}

// Execute runs the root command
func (c *RootCommand) Execute(ctx context.Context) (*RootResult, error) {
	root, err := c.repo.Root()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare notes root: %w", err)
	}

	if !c.Open {
		return &RootResult{Path: root, Message: root}, nil
	}
	if c.opener == nil {
		return nil, fmt.Errorf("no file explorer configured")
	}
	if err := c.opener.OpenFolder(root); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}

	return &RootResult{
		Path:    root,
		Opened:  true,
		Message: fmt.Sprintf("Opened %s", root),
	}, nil
}
