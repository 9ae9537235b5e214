package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chroninotes/internal/application"
	"chroninotes/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the notes tree",
	Long: `Display every folder and note as an indented tree.
Folders come first, then notes, each sorted by title.

Example:
  chroninotes-cli tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		root, err := commands.NewBuildTreeCommand(GetRepo()).Execute(ctx)
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), root, 0)
		return nil
	},
}

func printTree(w io.Writer, node *application.TreeNode, depth int) {
	if node == nil {
		return
	}

	if !node.IsRoot() {
		indent := strings.Repeat("  ", depth-1)
		fmt.Fprintf(w, "%s%s %s  (%s)\n", indent, node.Entry.Icon, node.Entry.Title, node.Entry.ID)
	}

	for _, child := range node.Children {
		printTree(w, child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
