package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a document",
	Long: `Print a document, rendered as markdown when stdout is a terminal.

Examples:
  taskmark show inbox
  taskmark show projects/Launch.md --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openService()
		if err != nil {
			return err
		}
		path, err := resolveDocument(store, args[0])
		if err != nil {
			return err
		}
		content, err := store.ReadDocument(path)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "content": content}, nil)
			return nil
		}

		display := ui.NewDisplayContext(os.Stdout)
		if showRaw || !display.IsTTY {
			fmt.Print(content)
			return nil
		}
		rendered, err := ui.RenderMarkdown(content, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			logger.Debug("markdown render failed", "path", path, "error", err)
			fmt.Print(content)
			return nil
		}
		fmt.Println(ui.Header(path))
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the document source without rendering")
	rootCmd.AddCommand(showCmd)
}
