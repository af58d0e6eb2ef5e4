package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/codec"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/tasks"
	"github.com/aidanlsb/taskmark/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse [line]",
	Short: "Decode task lines into structured tasks",
	Long: `Decode a task line and print its status, content and metadata.

With no argument, every line read from stdin is decoded and lines that are
not tasks are skipped.

Examples:
  taskmark parse "- [ ] Buy milk 📅 2024-01-15 ⏫"
  cat inbox.md | taskmark parse --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	c := codec.New(cfg)

	var parsed []model.Task
	if len(args) == 1 {
		task, ok := c.ParseTask(args[0], 0)
		if !ok {
			return withCode(tasks.CodeNotATask, fmt.Errorf("not a task line: %q", args[0]))
		}
		parsed = append(parsed, task)
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for i := 0; scanner.Scan(); i++ {
			line := strings.TrimRight(scanner.Text(), "\r")
			if task, ok := c.ParseTask(line, i); ok {
				parsed = append(parsed, task)
			}
		}
		if err := scanner.Err(); err != nil {
			return withCode(ErrInvalidInput, fmt.Errorf("read stdin: %w", err))
		}
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"tasks": parsed}, &Meta{Count: len(parsed)})
		return nil
	}

	display := ui.NewDisplayContext(os.Stdout)
	loc := cfg.Location()
	for _, task := range parsed {
		fmt.Printf("%s %s\n", ui.StatusSymbol(cfg, task.Status), ui.TaskText(display, cfg, task))
		if summary := ui.TaskSummary(task, loc); summary != "" {
			fmt.Printf("  %s\n", display.Render(ui.Muted, summary))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
