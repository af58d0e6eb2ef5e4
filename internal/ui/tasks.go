package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/dates"
	"github.com/aidanlsb/taskmark/internal/model"
)

// Status symbols
const (
	SymbolOpen       = "○"
	SymbolDone       = "✓"
	SymbolCancelled  = "✗"
	SymbolInProgress = "◐"
	SymbolPlanned    = "?"
	SymbolUnknown    = "•"
)

// StatusSymbol returns the symbol for a checkbox mark under cfg.
func StatusSymbol(cfg config.Config, mark string) string {
	switch cfg.Kind(mark) {
	case config.StatusNotStarted:
		return SymbolOpen
	case config.StatusCompleted:
		return SymbolDone
	case config.StatusCancelled:
		return SymbolCancelled
	case config.StatusInProgress:
		return SymbolInProgress
	case config.StatusPlanned:
		return SymbolPlanned
	}
	return SymbolUnknown
}

// TaskText renders task content, struck through once the task is finished.
func TaskText(d *DisplayContext, cfg config.Config, task model.Task) string {
	switch cfg.Kind(task.Status) {
	case config.StatusCompleted, config.StatusCancelled:
		return d.Render(Done, task.Content)
	}
	return task.Content
}

// TaskSummary lists the task's metadata as short "key value" pairs, in
// encoding order, for the meta column.
func TaskSummary(task model.Task, loc *time.Location) string {
	md := task.Metadata
	var parts []string
	for _, f := range model.CanonicalFields {
		if !md.Has(f) {
			continue
		}
		switch {
		case f.IsDate():
			parts = append(parts, f.String()+" "+dates.FormatMillis(md.Date(f), loc))
		case f == model.FieldTags:
			parts = append(parts, "#"+strings.Join(md.Tags, " #"))
		case f == model.FieldPriority:
			parts = append(parts, "p"+strconv.Itoa(md.Priority))
		case f == model.FieldProject:
			parts = append(parts, "+"+md.Project)
		case f == model.FieldContext:
			parts = append(parts, "@"+md.Context)
		case f == model.FieldRecurrence:
			parts = append(parts, "repeats "+md.Recurrence)
		case f == model.FieldDependsOn:
			parts = append(parts, "after "+strings.Join(md.DependsOn, ","))
		case f == model.FieldOnCompletion:
			parts = append(parts, "then "+md.OnCompletion)
		case f == model.FieldID:
			parts = append(parts, "id "+md.ID)
		}
	}
	return strings.Join(parts, "  ")
}

// TaskLocation returns the short location shown in the file column.
func TaskLocation(task model.Task) string {
	if task.IsFileTask() {
		return task.FilePath + " (" + string(task.Metadata.Source) + ")"
	}
	return task.GetLocation()
}

// RenderTasks renders tasks in the numbered task layout. location renders
// the file column; nil means TaskLocation.
func RenderTasks(d *DisplayContext, cfg config.Config, tasks []model.Task, location func(model.Task) string) string {
	if len(tasks) == 0 {
		return ""
	}
	if location == nil {
		location = TaskLocation
	}
	loc := cfg.Location()
	tbl := newTaskTable(d)
	contentWidth := tbl.width(colContent)
	for _, numbered := range model.Number(tasks) {
		task := numbered.Task
		tbl.add(
			rowNumber(numbered.Num, len(tasks)),
			StatusSymbol(cfg, task.Status),
			TaskText(d, cfg, model.Task{
				Status:  task.Status,
				Content: TruncateWithEllipsis(task.Content, contentWidth),
			}),
			TaskSummary(task, loc),
			location(task),
		)
	}
	return tbl.render()
}
