package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chroninotes/internal/application"
	"chroninotes/internal/application/commands"
)

var (
	listJSON   bool
	listNested bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every note and folder",
	Long: `List every note and folder under the notes root.

The flat listing is sorted by id. Content is never included.

Examples:
  chroninotes-cli list
  chroninotes-cli list --json
  chroninotes-cli list --json --nested`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		entries, err := commands.NewListCommand(GetRepo()).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			if listNested {
				return printJSON(out, application.Nest(entries))
			}
			return printJSON(out, entries)
		}

		if listNested {
			printTree(out, application.BuildTree(entries), 0)
			return nil
		}
		for _, e := range entries {
			kind := "note"
			if e.IsFolder {
				kind = "folder"
			}
			fmt.Fprintf(out, "%-6s %s %s  %s\n", kind, e.Icon, e.Title, e.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print entries as JSON")
	listCmd.Flags().BoolVar(&listNested, "nested", false, "nest entries under their folders")
	rootCmd.AddCommand(listCmd)
}
