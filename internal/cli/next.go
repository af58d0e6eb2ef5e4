package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/recurrence"
	"github.com/aidanlsb/taskmark/internal/ui"
)

var (
	nextBase      string
	nextDue       string
	nextScheduled string
	nextToday     string
)

var nextCmd = &cobra.Command{
	Use:   "next <recurrence>",
	Short: "Compute the next occurrence of a recurrence",
	Long: `Compute the next occurrence of a recurrence expression, the way completing
a recurring task would.

The expression may be an RRULE ("FREQ=WEEKLY;BYDAY=MO"), a five-field cron
schedule, or a phrase such as "every 2 weeks", "every month when done" or
"3d". The base date follows --base (default: recurrence_date_base).

Examples:
  taskmark next "every week" --due 2024-01-15
  taskmark next "FREQ=MONTHLY;BYMONTHDAY=31" --base current --today 2024-01-31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := recurrence.New(cfg)
		resolver.Logger = logger

		if cmd.Flags().Changed("base") {
			switch nextBase {
			case config.BaseCurrent, config.BaseScheduled, config.BaseDue:
				resolver.Policy = nextBase
			default:
				return withCode(ErrInvalidInput, fmt.Errorf("--base must be current, scheduled or due, got %q", nextBase))
			}
		}

		clock := now()
		if nextToday != "" {
			today, err := parseDay("today", nextToday, clock)
			if err != nil {
				return err
			}
			clock = today
		}
		resolver.Now = func() time.Time { return clock }

		var md model.TaskMetadata
		if nextDue != "" {
			due, err := parseDay("due", nextDue, clock)
			if err != nil {
				return err
			}
			md.DueDate = due.UnixMilli()
		}
		if nextScheduled != "" {
			scheduled, err := parseDay("scheduled", nextScheduled, clock)
			if err != nil {
				return err
			}
			md.ScheduledDate = scheduled.UnixMilli()
		}

		res := resolver.Resolve(args[0], md)
		out := nextOutput(res)

		if isJSONOutput() {
			var warnings []Warning
			if res.Method == recurrence.MethodDefault {
				warnings = append(warnings, Warning{Code: WarnRecurrence, Message: "recurrence not understood; defaulted to tomorrow"})
			}
			outputSuccessWithWarnings(out, warnings, nil)
			return nil
		}

		fmt.Println(out.Date)
		fmt.Println(ui.Hint(fmt.Sprintf("base %s, via %s", out.Base, out.Method)))
		return nil
	},
}

func init() {
	nextCmd.Flags().StringVar(&nextBase, "base", "", "Base date policy: current, scheduled or due")
	nextCmd.Flags().StringVar(&nextDue, "due", "", "Due date of the task")
	nextCmd.Flags().StringVar(&nextScheduled, "scheduled", "", "Scheduled date of the task")
	nextCmd.Flags().StringVar(&nextToday, "today", "", "Evaluate as if today were this date")
	rootCmd.AddCommand(nextCmd)
}
