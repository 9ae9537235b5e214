package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chroninotes/internal/adapters/explorer"
	"chroninotes/internal/application/commands"
)

var openRoot bool

var notesRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the notes root directory",
	Long: `Print the notes root directory, creating it if it does not exist.

Examples:
  chroninotes-cli root
  chroninotes-cli root --open    # reveal it in the file explorer`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		result, err := commands.NewRootCommand(GetRepo(), explorer.NewOpener(), openRoot).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	notesRootCmd.Flags().BoolVar(&openRoot, "open", false, "open the directory in the file explorer")
	rootCmd.AddCommand(notesRootCmd)
}
