package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chroninotes/internal/application/commands"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the pomodoro timer settings",
	Long: `Show or change the pomodoro work and break durations.

Examples:
  chroninotes-cli settings get
  chroninotes-cli settings set 50 10`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the pomodoro durations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := GetStore()
		if err != nil {
			return err
		}

		settings, err := commands.NewGetSettingsCommand(s).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pomodoro: %d min work, %d min break\n",
			settings.WorkMinutes, settings.BreakMinutes)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <work-minutes> <break-minutes>",
	Short: "Change the pomodoro durations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		work, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid work minutes %q: %w", args[0], err)
		}
		brk, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid break minutes %q: %w", args[1], err)
		}

		s, err := GetStore()
		if err != nil {
			return err
		}

		result, err := commands.NewSetSettingsCommand(s, work, brk).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
