package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"chroninotes/internal/adapters/editor"
	"chroninotes/internal/adapters/explorer"
	"chroninotes/internal/adapters/filesystem"
	"chroninotes/internal/adapters/tui"
	"chroninotes/internal/config"
	"chroninotes/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootFlag := flag.String("root", cfg.Root, "path to the notes root")
	flag.Parse()

	// the alt screen owns the terminal, so only file logging is allowed
	logger := zap.NewNop()
	if !cfg.LogsToTerminal() {
		logger, err = logging.New(logging.Config{
			Level:      cfg.LogLevel,
			Format:     cfg.LogFormat,
			OutputPath: cfg.LogOutput,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	repo := filesystem.NewRepository(*rootFlag, filesystem.WithLogger(logger))
	if _, err := repo.Root(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(repo, editor.NewOpener(), explorer.NewOpener(), logger)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
