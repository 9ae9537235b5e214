package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chroninotes/internal/application"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// UpdateResult contains the result of an update
type UpdateResult struct {
	Entry   *domain.Entry
	Message string
}

// UpdateCommand changes the title, icon or content of an entry.
// The id stays valid afterwards since nothing is renamed on disk.
type UpdateCommand struct {
	repo    ports.NotesRepository
	ID      string
	Title   *string
	Icon    *string
	Content json.RawMessage
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(repo ports.NotesRepository, id string, patch domain.Patch) *UpdateCommand {
	return &UpdateCommand{
		repo:    repo,
		ID:      id,
		Title:   patch.Title,
		Icon:    patch.Icon,
		Content: patch.Content,
	}
}

// Patch returns the fields of the command as a domain patch
func (c *UpdateCommand) Patch() domain.Patch {
	return domain.Patch{Title: c.Title, Icon: c.Icon, Content: c.Content}
}

// Validate checks if the update operation is valid
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	if err := application.ValidateID("id", c.ID); err != nil {
		return err
	}

	if c.Patch().IsEmpty() {
		return &application.ValidationError{
			Field:   "patch",
			Message: "nothing to update (set title, icon or content)",
		}
	}
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return &application.ValidationError{
			Field:   "title",
			Message: "title cannot be blank",
		}
	}

	return application.ValidateContent(c.Content)
}

// Execute runs the update command. A missing id yields application.ErrNotFound.
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	patch := c.Patch()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	entry, err := c.repo.Update(c.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.ID, err)
	}
	if entry == nil {
		return nil, &application.NotFoundError{ID: c.ID}
	}

	return &UpdateResult{
		Entry:   entry,
		Message: fmt.Sprintf("Updated %s", entry.ID),
	}, nil
}
