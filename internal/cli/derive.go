package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/ui"
	"github.com/aidanlsb/taskmark/internal/vault"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [file|dir]",
	Short: "Show the file-level tasks derived from front matter",
	Long: `Show the tasks synthesized from document front matter fields and tags.

Fields named like "todo", "status" or "done" become tasks whose dates,
priority and project come from the other front matter fields. Fields that
cannot be read are reported as warnings and left out of the task.

A directory argument, or no argument, derives tasks for every document
below it.

Examples:
  taskmark derive "projects/Launch.md"
  taskmark derive projects --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDerive,
}

func runDerive(cmd *cobra.Command, args []string) error {
	store, svc, err := openService()
	if err != nil {
		return err
	}
	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	var docs []model.DocumentMeta
	var warnings []Warning

	isDir, err := isDirectory(store, target)
	if err != nil {
		return err
	}
	if isDir {
		var failed []vault.WalkResult
		docs, failed, err = store.CollectDocuments(target, vaultCfg.IsIgnored)
		if err != nil {
			return err
		}
		for _, f := range failed {
			logger.Warn("skipping document", "path", f.RelativePath, "error", f.Error)
			warnings = append(warnings, Warning{Code: WarnFileSkipped, Message: f.Error.Error(), Path: f.RelativePath})
		}
	} else {
		path, err := resolveDocument(store, target)
		if err != nil {
			return err
		}
		meta, err := store.ReadFrontMatter(path)
		if err != nil {
			return err
		}
		docs = append(docs, meta)
	}

	derived := []model.Task{}
	for _, doc := range docs {
		res := svc.Deriver().Derive(doc)
		derived = append(derived, res.Tasks...)
		warnings = append(warnings, fieldErrorWarnings(doc.Path, res.Errors)...)
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]interface{}{"tasks": derived}, warnings, &Meta{Count: len(derived)})
		return nil
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, ui.Warningf("%s: %s", w.Path, w.Message))
	}
	if len(derived) == 0 {
		fmt.Println(ui.Hint("No file-level tasks."))
		return nil
	}
	display := ui.NewDisplayContext(os.Stdout)
	fmt.Println(ui.RenderTasks(display, cfg, derived, deriveSource))
	return nil
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}

func deriveSource(t model.Task) string {
	if t.Metadata.SourceTag != "" {
		return "#" + t.Metadata.SourceTag
	}
	return t.Metadata.SourceField
}
