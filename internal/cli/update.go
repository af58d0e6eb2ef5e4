package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/mutate"
	"github.com/aidanlsb/taskmark/internal/recurrence"
	"github.com/aidanlsb/taskmark/internal/ui"
)

var (
	updateStatus   string
	updateContent  string
	updateDone     bool
	updateReopen   bool
	updateMetadata metadataFlags
)

var updateCmd = &cobra.Command{
	Use:   "update <file> <line|task-id>",
	Short: "Change the status, text or metadata of a task",
	Long: `Update one task in place.

The task is addressed by its 1-based line number, or by the id of a
file-level task ("#file-metadata:todo" or the full id from 'list --json').
Completing a recurring task inserts its next occurrence below it.

Metadata flags replace the named fields; an empty value removes the field,
as does --clear.

Examples:
  taskmark update inbox.md 7 --done
  taskmark update inbox.md 7 --due tomorrow --priority 4
  taskmark update inbox.md 7 --clear due,tags
  taskmark update "notes/Write docs.md" "#file-metadata:todo" --status /`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := mutate.Update{}
		if cmd.Flags().Changed("status") {
			u.Status = &updateStatus
		}
		if cmd.Flags().Changed("content") {
			u.Content = &updateContent
		}
		switch {
		case updateDone && updateReopen:
			return withCode(ErrInvalidInput, fmt.Errorf("--done and --reopen are mutually exclusive"))
		case updateDone:
			completed := true
			u.Completed = &completed
		case updateReopen:
			completed := false
			u.Completed = &completed
		}

		md, fields, err := updateMetadata.build(cmd.Flags(), now())
		if err != nil {
			return err
		}
		u.Metadata = md
		u.Fields = fields

		return runUpdate(args[0], args[1], u)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <file> <line|task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed := true
		return runUpdate(args[0], args[1], mutate.Update{Completed: &completed})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <file> <line|task-id> <mark>",
	Short: "Set the checkbox mark of a task",
	Long: `Set the checkbox mark of a task, e.g. "x" (done), "-" (cancelled),
"/" (in progress) or " " (not started).`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mark := args[2]
		if mark == "" {
			mark = " "
		}
		return runUpdate(args[0], args[1], mutate.Update{Status: &mark})
	},
}

type nextOccurrence struct {
	Date   string `json:"date"`
	Base   string `json:"base"`
	Method string `json:"method"`
}

type updateOutput struct {
	Path    string          `json:"path"`
	Changed bool            `json:"changed"`
	Task    *model.Task     `json:"task,omitempty"`
	Lines   []string        `json:"lines,omitempty"`
	Next    *nextOccurrence `json:"next,omitempty"`
}

func runUpdate(fileArg, taskArg string, u mutate.Update) error {
	store, svc, err := openService()
	if err != nil {
		return err
	}
	path, err := resolveDocument(store, fileArg)
	if err != nil {
		return err
	}
	target, err := parseTaskTarget(path, taskArg)
	if err != nil {
		return err
	}

	var out updateOutput
	var warnings []Warning

	if target.isFileTask() {
		if len(u.Fields) > 0 {
			return withCode(ErrInvalidInput, fmt.Errorf("file-level tasks only take --status, --done, --reopen and --content"))
		}
		res, err := svc.UpdateFileTask(path, target.TaskID, u)
		if err != nil {
			return err
		}
		task := res.Task
		out = updateOutput{Path: res.Path, Changed: res.Changed, Task: &task}
	} else {
		res, err := svc.UpdateTask(path, target.Line, u)
		if err != nil {
			return err
		}
		out = updateOutput{Path: res.Path, Changed: res.Changed, Lines: res.Lines}
		if len(res.Lines) > 0 {
			out.Task = lineTask(svc, res.Path, res.Lines[0], res.Line)
		}
		if res.Next != nil {
			out.Next = nextOutput(*res.Next)
			if res.Next.Method == recurrence.MethodDefault {
				warnings = append(warnings, Warning{
					Code:    WarnRecurrence,
					Message: "recurrence not understood; next occurrence set to tomorrow",
					Path:    res.Path,
				})
			}
		}
	}

	if isJSONOutput() {
		outputSuccessWithWarnings(out, warnings, nil)
		return nil
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, ui.Warning(w.Message))
	}
	if !out.Changed {
		fmt.Println(ui.Hint("No change."))
		return nil
	}
	fmt.Println(ui.Successf("Updated %s", ui.FilePath(out.Path)))
	for _, line := range out.Lines {
		fmt.Printf("  %s\n", strings.TrimSpace(line))
	}
	if out.Next != nil {
		fmt.Printf("  %s\n", ui.Hint("next occurrence "+out.Next.Date))
	}
	return nil
}

func nextOutput(r recurrence.Resolution) *nextOccurrence {
	return &nextOccurrence{
		Date:   r.Date.Format(dates.DateLayout),
		Base:   r.BaseDate.Format(dates.DateLayout),
		Method: string(r.Method),
	}
}

func init() {
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "Checkbox mark (single character)")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "Replace the task text")
	updateCmd.Flags().BoolVar(&updateDone, "done", false, "Mark the task completed")
	updateCmd.Flags().BoolVar(&updateReopen, "reopen", false, "Mark a completed task not started")
	updateMetadata.register(updateCmd.Flags(), true)

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statusCmd)
}
