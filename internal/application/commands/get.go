package commands

import (
	"context"
	"fmt"

	"chroninotes/internal/application"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// GetCommand reads one entry, including note content
type GetCommand struct {
	repo ports.NotesRepository
	ID   string
}

// NewGetCommand creates a new GetCommand
func NewGetCommand(repo ports.NotesRepository, id string) *GetCommand {
	return &GetCommand{
		repo: repo,
		ID:   id,
	}
}

// Validate checks if the get operation is valid
func (c *GetCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	return application.ValidateID("id", c.ID)
}

// Execute runs the get command. A missing id yields application.ErrNotFound.
func (c *GetCommand) Execute(ctx context.Context) (*domain.Entry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.repo.Get(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.ID, err)
	}
	if entry == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}
	return entry, nil
}
