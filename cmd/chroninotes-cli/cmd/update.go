package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chroninotes/internal/application"
	"chroninotes/internal/application/commands"
)

var (
	updateTitle       string
	updateIcon        string
	updateContent     string
	updateContentFile string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the title, icon or content of an entry",
	Long: `Change the title, icon or content of a note or folder.
The id does not change: files are never renamed on disk.

Content must be a JSON value. Folders ignore content.

Examples:
  chroninotes-cli update projects/roadmap --title "Roadmap 2026"
  chroninotes-cli update projects --icon ★
  chroninotes-cli update projects/roadmap --content-file doc.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var patch application.Patch
		if cmd.Flags().Changed("title") {
			patch.Title = &updateTitle
		}
		if cmd.Flags().Changed("icon") {
			patch.Icon = &updateIcon
		}

		switch {
		case cmd.Flags().Changed("content") && cmd.Flags().Changed("content-file"):
			return fmt.Errorf("use either --content or --content-file, not both")
		case cmd.Flags().Changed("content"):
			patch.Content = json.RawMessage(updateContent)
		case cmd.Flags().Changed("content-file"):
			data, err := os.ReadFile(updateContentFile)
			if err != nil {
				return fmt.Errorf("failed to read content: %w", err)
			}
			patch.Content = json.RawMessage(data)
		}

		result, err := commands.NewUpdateCommand(GetRepo(), args[0], patch).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateIcon, "icon", "", "new icon")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "new content as inline JSON")
	updateCmd.Flags().StringVar(&updateContentFile, "content-file", "", "read new content from a JSON file")
	rootCmd.AddCommand(updateCmd)
}
