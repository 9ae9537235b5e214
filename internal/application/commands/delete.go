package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"chroninotes/internal/application"
	"chroninotes/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Existed   bool
	Message   string
}

// DeleteCommand deletes a note, or a folder with all its contents
type DeleteCommand struct {
	repo ports.NotesRepository
	ID   string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(repo ports.NotesRepository, id string) *DeleteCommand {
	return &DeleteCommand{
		repo: repo,
		ID:   id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the delete command. Deleting a missing id succeeds.
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	existed := true
	if _, err := c.repo.Path(c.ID); errors.Is(err, fs.ErrNotExist) {
		existed = false
	}

	if err := c.repo.Delete(c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.ID, err)
	}

	msg := fmt.Sprintf("Deleted %s", c.ID)
	if !existed {
		msg = fmt.Sprintf("Nothing to delete at %s", c.ID)
	}

	return &DeleteResult{
		DeletedID: c.ID,
		Existed:   existed,
		Message:   msg,
	}, nil
}
