package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/tasks"
	"github.com/aidanlsb/taskmark/internal/ui"
	"github.com/aidanlsb/taskmark/internal/vault"
)

var listOpenOnly bool

var listCmd = &cobra.Command{
	Use:   "list [file|dir]",
	Short: "List the tasks of a document or directory",
	Long: `List checkbox tasks and file-level tasks.

A file argument lists one document. A directory argument, or no argument,
lists every markdown document below it, skipping hidden directories and the
ignore prefixes of the vault's .taskmark.yaml.

Examples:
  taskmark list inbox.md
  taskmark list projects --open
  taskmark list --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, svc, err := openService()
	if err != nil {
		return err
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	var results []tasks.ListResult
	var warnings []Warning

	isDir, err := isDirectory(store, target)
	if err != nil {
		return err
	}
	if isDir {
		results, warnings, err = listDirectory(store, svc, target)
		if err != nil {
			return err
		}
	} else {
		path, err := resolveDocument(store, target)
		if err != nil {
			return err
		}
		res, err := svc.ListTasks(path)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	var all []model.Task
	for _, res := range results {
		warnings = append(warnings, fieldErrorWarnings(res.Path, res.Errors)...)
		for _, task := range res.Tasks {
			if listOpenOnly && isFinished(task.Status) {
				continue
			}
			all = append(all, task)
		}
	}

	if isJSONOutput() {
		if all == nil {
			all = []model.Task{}
		}
		outputSuccessWithWarnings(map[string]interface{}{"tasks": all}, warnings, &Meta{Count: len(all)})
		return nil
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, ui.Warningf("%s: %s", w.Path, w.Message))
	}
	if len(all) == 0 {
		fmt.Println(ui.Hint("No tasks found."))
		return nil
	}
	display := ui.NewDisplayContext(os.Stdout)
	fmt.Println(ui.RenderTasks(display, cfg, all, taskLocationLink))
	return nil
}

func isDirectory(store *vault.Store, target string) (bool, error) {
	if target == "" {
		return true, nil
	}
	abs, err := store.Abs(target)
	if err != nil {
		return false, withCode(ErrFileOutsideVault, err)
	}
	info, err := os.Stat(abs)
	return err == nil && info.IsDir(), nil
}

// listDirectory lists every markdown document below dir. Unreadable
// documents become warnings.
func listDirectory(store *vault.Store, svc *tasks.Service, dir string) ([]tasks.ListResult, []Warning, error) {
	var results []tasks.ListResult
	var warnings []Warning

	err := store.Walk(dir, func(result vault.WalkResult) error {
		if vaultCfg.IsIgnored(result.RelativePath) {
			return nil
		}
		res, err := svc.ListTasks(result.RelativePath)
		if err != nil {
			logger.Warn("skipping document", "path", result.RelativePath, "error", err)
			warnings = append(warnings, Warning{
				Code:    WarnFileSkipped,
				Message: err.Error(),
				Path:    result.RelativePath,
			})
			return nil
		}
		results = append(results, res)
		return nil
	})
	return results, warnings, err
}

func isFinished(status string) bool {
	switch cfg.Kind(status) {
	case config.StatusCompleted, config.StatusCancelled:
		return true
	}
	return false
}

func init() {
	listCmd.Flags().BoolVar(&listOpenOnly, "open", false, "Hide completed and cancelled tasks")
	rootCmd.AddCommand(listCmd)
}
