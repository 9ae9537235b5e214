package commands

import (
	"context"

	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// ListCommand lists every entry under the notes root
type ListCommand struct {
	repo ports.NotesRepository
}

// NewListCommand creates a new ListCommand
func NewListCommand(repo ports.NotesRepository) *ListCommand {
	return &ListCommand{repo: repo}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) ([]domain.Entry, error) {
	return c.repo.List()
}

// BuildTreeCommand builds the nested tree from a fresh listing
type BuildTreeCommand struct {
	repo ports.NotesRepository
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(repo ports.NotesRepository) *BuildTreeCommand {
	return &BuildTreeCommand{repo: repo}
}

// Execute runs the build tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	entries, err := c.repo.List()
	if err != nil {
		return nil, err
	}
	return domain.BuildTree(entries), nil
}
