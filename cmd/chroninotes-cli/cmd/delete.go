package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chroninotes/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note or folder",
	Long: `Delete a note, or a folder with everything inside it.

Warning: This operation cannot be undone. Deleting an id that does
not exist succeeds without changing anything.

Examples:
  chroninotes-cli delete projects/roadmap    # Delete note
  chroninotes-cli delete projects            # Delete folder and contents`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		result, err := commands.NewDeleteCommand(GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
