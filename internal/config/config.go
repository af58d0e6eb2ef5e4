// Package config handles taskmark configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Metadata formats (dialects).
const (
	FormatTasks    = "tasks"
	FormatDataview = "dataview"
)

// Recurrence base-date policies.
const (
	BaseCurrent   = "current"
	BaseScheduled = "scheduled"
	BaseDue       = "due"
)

// Config is the immutable task configuration passed to every codec, mutator,
// resolver and deriver call. Load it once; do not mutate it afterwards.
type Config struct {
	// PreferMetadataFormat selects the inline metadata dialect: "tasks" or "dataview".
	PreferMetadataFormat string `toml:"prefer_metadata_format"`

	// DefaultTaskStatus is the mark used for new and synthesized tasks.
	DefaultTaskStatus string `toml:"default_task_status"`

	// TaskStatusCompletedMark is the canonical "done" mark written on completion.
	TaskStatusCompletedMark string `toml:"task_status_completed_mark"`

	// RecurrenceDateBase is one of current, scheduled, due.
	RecurrenceDateBase string `toml:"recurrence_date_base"`

	// Timezone is an IANA zone name used for date tokens. Empty means local time.
	Timezone string `toml:"timezone"`

	// StateFile overrides where machine-local state is kept. Relative paths
	// are resolved against the config file's directory.
	StateFile string `toml:"state_file,omitempty"`

	ProjectTagPrefix DialectStrings   `toml:"project_tag_prefix"`
	ContextTagPrefix DialectStrings   `toml:"context_tag_prefix"`
	TaskStatuses     TaskStatuses     `toml:"task_statuses"`
	AutoDateManager  AutoDateManager  `toml:"auto_date_manager"`
	FileParsing      FileParsing      `toml:"file_parsing"`
	ProjectDetection ProjectDetection `toml:"project_detection"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// DialectStrings holds one string per metadata dialect.
type DialectStrings struct {
	Tasks    string `toml:"tasks"`
	Dataview string `toml:"dataview"`
}

// For returns the value for the given format.
func (d DialectStrings) For(format string) string {
	if format == FormatDataview {
		return d.Dataview
	}
	return d.Tasks
}

// TaskStatuses lists the checkbox marks of each status, '|' separated.
type TaskStatuses struct {
	Completed  string `toml:"completed"`
	Cancelled  string `toml:"cancelled"`
	InProgress string `toml:"in_progress"`
	Planned    string `toml:"planned"`
	NotStarted string `toml:"not_started"`
}

// AutoDateManager controls automatic date stamping on status transitions.
type AutoDateManager struct {
	ManageCompletedDate bool `toml:"manage_completed_date"`
	ManageStartDate     bool `toml:"manage_start_date"`
	ManageCancelledDate bool `toml:"manage_cancelled_date"`
}

// FileParsing configures synthetic tasks from front matter and tags.
type FileParsing struct {
	EnableFileMetadataParsing    bool     `toml:"enable_file_metadata_parsing"`
	MetadataFieldsToParseAsTasks []string `toml:"metadata_fields_to_parse_as_tasks"`
	EnableTagBasedTaskParsing    bool     `toml:"enable_tag_based_task_parsing"`
	TagsToParseAsTasks           []string `toml:"tags_to_parse_as_tasks"`
	TaskContentFromMetadata      string   `toml:"task_content_from_metadata"`
	DefaultTaskStatus            string   `toml:"default_task_status"`
}

// ProjectDetection configures project inference for synthetic tasks.
// Empty strings disable the corresponding method.
type ProjectDetection struct {
	// MetadataKey is a front-matter field whose value names the project.
	MetadataKey string `toml:"metadata_key"`

	// Tag marks a document as a project note when present in its tags.
	Tag string `toml:"tag"`

	// LinkFilter marks a document as a project member when an outbound link contains it.
	LinkFilter string `toml:"link_filter"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme"`

	// Editor picks the URL scheme of task location hyperlinks ("code", "cursor", "zed", ...).
	Editor string `toml:"editor"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PreferMetadataFormat:    FormatTasks,
		DefaultTaskStatus:       " ",
		TaskStatusCompletedMark: "x",
		RecurrenceDateBase:      BaseDue,
		ProjectTagPrefix:        DialectStrings{Tasks: "project", Dataview: "project"},
		ContextTagPrefix:        DialectStrings{Tasks: "@", Dataview: "context"},
		TaskStatuses: TaskStatuses{
			Completed:  "x|X",
			Cancelled:  "-",
			InProgress: ">|/",
			Planned:    "?",
			NotStarted: " ",
		},
		AutoDateManager: AutoDateManager{
			ManageCompletedDate: true,
			ManageStartDate:     true,
			ManageCancelledDate: true,
		},
		FileParsing: FileParsing{
			EnableFileMetadataParsing:    false,
			MetadataFieldsToParseAsTasks: []string{"dueDate", "todo", "complete", "task"},
			EnableTagBasedTaskParsing:    false,
			TagsToParseAsTasks:           []string{"todo", "task"},
			TaskContentFromMetadata:      "title",
			DefaultTaskStatus:            " ",
		},
	}
}

// Validate reports configuration values the codec cannot work with.
func (c Config) Validate() error {
	switch c.PreferMetadataFormat {
	case FormatTasks, FormatDataview:
	default:
		return fmt.Errorf("invalid prefer_metadata_format %q (want %q or %q)", c.PreferMetadataFormat, FormatTasks, FormatDataview)
	}
	switch c.RecurrenceDateBase {
	case BaseCurrent, BaseScheduled, BaseDue:
	default:
		return fmt.Errorf("invalid recurrence_date_base %q (want current, scheduled or due)", c.RecurrenceDateBase)
	}
	if len([]rune(c.TaskStatusCompletedMark)) != 1 {
		return fmt.Errorf("task_status_completed_mark must be a single character, got %q", c.TaskStatusCompletedMark)
	}
	if len([]rune(c.DefaultTaskStatus)) != 1 {
		return fmt.Errorf("default_task_status must be a single character, got %q", c.DefaultTaskStatus)
	}
	if strings.TrimSpace(c.ProjectTagPrefix.For(c.PreferMetadataFormat)) == "" {
		return fmt.Errorf("project_tag_prefix.%s must not be empty", c.PreferMetadataFormat)
	}
	if strings.TrimSpace(c.ContextTagPrefix.For(c.PreferMetadataFormat)) == "" {
		return fmt.Errorf("context_tag_prefix.%s must not be empty", c.PreferMetadataFormat)
	}
	if _, err := c.loadLocation(); err != nil {
		return err
	}
	return nil
}

// Location returns the timezone used for date tokens.
func (c Config) Location() *time.Location {
	loc, err := c.loadLocation()
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) loadLocation() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load loads the configuration from the default location.
// Returns the default config if the file doesn't exist.
func Load() (Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/taskmark/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "taskmark", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "taskmark", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}
