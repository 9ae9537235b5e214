package commands

import (
	"context"
	"fmt"

	"chroninotes/internal/application"
	"chroninotes/internal/domain"
	"chroninotes/internal/ports"
)

// GetSettingsCommand reads the timer preferences
type GetSettingsCommand struct {
	store ports.SettingsStore
}

// NewGetSettingsCommand creates a new GetSettingsCommand
func NewGetSettingsCommand(store ports.SettingsStore) *GetSettingsCommand {
	return &GetSettingsCommand{store: store}
}

// Execute runs the get settings command
func (c *GetSettingsCommand) Execute(ctx context.Context) (domain.PomodoroSettings, error) {
	settings, err := c.store.Get()
	if err != nil {
		return domain.PomodoroSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return settings, nil
}

// SetSettingsResult contains the stored preferences
type SetSettingsResult struct {
	Settings domain.PomodoroSettings
	Message  string
}

// SetSettingsCommand stores the timer preferences
type SetSettingsCommand struct {
	store        ports.SettingsStore
	WorkMinutes  int
	BreakMinutes int
}

// NewSetSettingsCommand creates a new SetSettingsCommand
func NewSetSettingsCommand(store ports.SettingsStore, workMinutes, breakMinutes int) *SetSettingsCommand {
	return &SetSettingsCommand{
		store:        store,
		WorkMinutes:  workMinutes,
		BreakMinutes: breakMinutes,
	}
}

// Validate checks if the durations are in range
func (c *SetSettingsCommand) Validate() error {
	if err := application.ValidateMinutes("workMinutes", c.WorkMinutes); err != nil {
		return err
	}
	return application.ValidateMinutes("breakMinutes", c.BreakMinutes)
}

// Execute runs the set settings command
func (c *SetSettingsCommand) Execute(ctx context.Context) (*SetSettingsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.store.Set(c.WorkMinutes, c.BreakMinutes); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	settings := domain.PomodoroSettings{WorkMinutes: c.WorkMinutes, BreakMinutes: c.BreakMinutes}
	return &SetSettingsResult{
		Settings: settings,
		Message:  fmt.Sprintf("Pomodoro: %d min work, %d min break", settings.WorkMinutes, settings.BreakMinutes),
	}, nil
}
