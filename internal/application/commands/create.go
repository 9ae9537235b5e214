package commands

import (
	"context"
	"fmt"

	"chroninotes/internal/application"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// CreateResult contains the result of creating a note or folder
type CreateResult struct {
	Entry   *domain.Entry
	Message string
}

// CreateNoteCommand creates an empty note
type CreateNoteCommand struct {
	repo     ports.NotesRepository
	ParentID string
	Title    string
	Icon     string
}

// NewCreateNoteCommand creates a new CreateNoteCommand
func NewCreateNoteCommand(repo ports.NotesRepository, parentID, title, icon string) *CreateNoteCommand {
	return &CreateNoteCommand{
		repo:     repo,
		ParentID: parentID,
		Title:    title,
		Icon:     icon,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNoteCommand) Validate() error {
	return application.ValidateID("parentID", c.ParentID)
}

// Execute runs the create note command
func (c *CreateNoteCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.repo.Create(c.ParentID, c.Title, c.Icon)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return &CreateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Created note: %s %s", entry.ID, entry.Title),
	}, nil
}

// CreateFolderCommand creates a folder with its sidecar
type CreateFolderCommand struct {
	repo     ports.NotesRepository
	ParentID string
	Title    string
	Icon     string
}

// NewCreateFolderCommand creates a new CreateFolderCommand
func NewCreateFolderCommand(repo ports.NotesRepository, parentID, title, icon string) *CreateFolderCommand {
	return &CreateFolderCommand{
		repo:     repo,
		ParentID: parentID,
		Title:    title,
		Icon:     icon,
	}
}

// Validate checks if the create operation is valid
func (c *CreateFolderCommand) Validate() error {
	return application.ValidateID("parentID", c.ParentID)
}

// Execute runs the create folder command
func (c *CreateFolderCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entry, err := c.repo.CreateFolder(c.ParentID, c.Title, c.Icon)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return &CreateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Created folder: %s %s", entry.ID, entry.Title),
	}, nil
}
