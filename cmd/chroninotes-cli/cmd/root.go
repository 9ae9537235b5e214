package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chroninotes/internal/adapters/filesystem"
	"chroninotes/internal/adapters/sqlite"
	"chroninotes/internal/config"
	"chroninotes/internal/logging"
	"chroninotes/internal/ports"
)

var (
	rootPath string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
	repo   ports.NotesRepository
	store  ports.SettingsStore
)

var rootCmd = &cobra.Command{
	Use:   "chroninotes-cli",
	Short: "CLI for managing ChroniNotes notes and folders",
	Long: `chroninotes-cli manages a ChroniNotes notes root from the command line.

Notes are JSON files and folders are directories with a _folder.json
sidecar. Every entry is addressed by its path relative to the root,
without the .json extension (e.g. "projects/roadmap").`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		// a failed previous run skips the post-run hook
		if store != nil {
			_ = store.Close()
			store = nil
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if rootPath != "" {
			loaded.Root = rootPath
		}
		if dbPath != "" {
			loaded.Database = dbPath
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		loaded.Expand()
		cfg = loaded

		logger, err = logging.New(logging.Config{
			Level:      cfg.LogLevel,
			Format:     cfg.LogFormat,
			OutputPath: cfg.LogOutput,
		})
		if err != nil {
			return err
		}

		repo = filesystem.NewRepository(cfg.Root, filesystem.WithLogger(logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if store == nil {
			return nil
		}
		err := store.Close()
		store = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "path to the notes root (default from config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the settings database (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// GetRepo returns the initialized repository
func GetRepo() ports.NotesRepository {
	return repo
}

// GetStore opens the settings database on first use
func GetStore() (ports.SettingsStore, error) {
	if store != nil {
		return store, nil
	}
	s, err := sqlite.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened settings database", zap.String("path", s.Path()))
	store = s
	return store, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
