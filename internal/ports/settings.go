package ports

import "chroninotes/internal/domain"

// SettingsStore persists the timer preferences
type SettingsStore interface {
	Get() (domain.PomodoroSettings, error)
	Set(workMinutes, breakMinutes int) error
	Close() error
}
