package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chroninotes/internal/application/commands"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a note or folder",
	Long: `Show one note or folder. Notes include their content.

Examples:
  chroninotes-cli get projects/roadmap
  chroninotes-cli get projects --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		entry, err := commands.NewGetCommand(GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if getJSON {
			return printJSON(out, entry)
		}

		kind := "note"
		if entry.IsFolder {
			kind = "folder"
		}
		fmt.Fprintf(out, "%s %s\n", entry.Icon, entry.Title)
		fmt.Fprintf(out, "id:      %s\n", entry.ID)
		fmt.Fprintf(out, "kind:    %s\n", kind)
		fmt.Fprintf(out, "created: %s\n", entry.CreatedAt)
		fmt.Fprintf(out, "updated: %s\n", entry.UpdatedAt)
		if !entry.IsFolder {
			content := "null"
			if entry.Content != nil {
				content = string(entry.Content)
			}
			fmt.Fprintf(out, "content: %s\n", content)
		}
		return nil
	},
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "print the entry as JSON")
	rootCmd.AddCommand(getCmd)
}
