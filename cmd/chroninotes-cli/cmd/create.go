package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chroninotes/internal/application/commands"
)

var (
	createParent string
	createIcon   string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new note",
	Long: `Create an empty note. The file name is derived from the title and
made unique within the parent folder.

Examples:
  chroninotes-cli create "Meeting notes"
  chroninotes-cli create --parent projects --icon ★ Roadmap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := strings.Join(args, " ")

		result, err := commands.NewCreateNoteCommand(GetRepo(), createParent, title, createIcon).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [title]",
	Short: "Create a new folder",
	Long: `Create a folder with its _folder.json sidecar.

Examples:
  chroninotes-cli mkdir Projects
  chroninotes-cli mkdir --parent projects Archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := strings.Join(args, " ")

		result, err := commands.NewCreateFolderCommand(GetRepo(), createParent, title, createIcon).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, mkdirCmd} {
		c.Flags().StringVarP(&createParent, "parent", "p", "", "id of the parent folder (default: root)")
		c.Flags().StringVar(&createIcon, "icon", "", "icon (default depends on the kind)")
		rootCmd.AddCommand(c)
	}
}
