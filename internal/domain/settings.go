package domain

// PomodoroSettings are the work/break durations used by the timer
type PomodoroSettings struct {
	WorkMinutes  int `json:"workMinutes"`
	BreakMinutes int `json:"breakMinutes"`
}

// DefaultPomodoroSettings is seeded into an empty settings store
var DefaultPomodoroSettings = PomodoroSettings{WorkMinutes: 25, BreakMinutes: 5}
