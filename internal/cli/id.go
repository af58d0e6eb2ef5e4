package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var idCmd = &cobra.Command{
	Use:   "id <file> <line>",
	Short: "Give a task an id",
	Long: `Print the id of the task on a 1-based line, assigning a new ULID first when
the task has none. Other tasks reference the id from their depends-on field.

Examples:
  taskmark id inbox.md 7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, svc, err := openService()
		if err != nil {
			return err
		}
		path, err := resolveDocument(store, args[0])
		if err != nil {
			return err
		}
		target, err := parseTaskTarget(path, args[1])
		if err != nil {
			return err
		}
		if target.isFileTask() {
			return withCode(ErrInvalidInput, fmt.Errorf("ids can only be assigned to checkbox tasks"))
		}

		id, err := svc.AssignID(path, target.Line)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":   id,
				"path": path,
				"line": target.Line + 1,
			}, nil)
			return nil
		}
		fmt.Println(id)
		logger.Debug("task id", "path", path, "line", target.Line+1, "id", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idCmd)
}
