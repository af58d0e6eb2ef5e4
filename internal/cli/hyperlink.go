package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/aidanlsb/taskmark/internal/model"
	"github.com/aidanlsb/taskmark/internal/ui"
)

// editorSchemes maps editor command fragments to URL templates taking the
// absolute path and a 1-based line. The first matching entry wins.
var editorSchemes = []struct {
	names    []string
	template string
}{
	{[]string{"cursor"}, "cursor://file%s:%d:1"},
	{[]string{"code", "vscode"}, "vscode://file%s:%d:1"},
	{[]string{"subl", "sublime"}, "subl://open?url=file://%s&line=%d"},
	{[]string{"idea", "goland", "webstorm", "pycharm"}, "idea://open?file=%s&line=%d"},
	{[]string{"zed"}, "zed://file%s:%d"},
}

var (
	hyperlinkOnce    sync.Once
	hyperlinkEnabled bool
)

// shouldEmitHyperlinks reports whether locations are wrapped in OSC 8
// hyperlinks: only for text output to a terminal.
func shouldEmitHyperlinks() bool {
	if jsonOutput {
		return false
	}
	hyperlinkOnce.Do(func() {
		hyperlinkEnabled = isatty.IsTerminal(os.Stdout.Fd())
	})
	return hyperlinkEnabled
}

// buildEditorURL returns a URL opening absPath at line in editor. Editors
// without a URL scheme get a plain file URL.
func buildEditorURL(editor, absPath string, line int) string {
	editor = strings.ToLower(editor)
	for _, s := range editorSchemes {
		for _, name := range s.names {
			if strings.Contains(editor, name) {
				return fmt.Sprintf(s.template, absPath, line)
			}
		}
	}
	return "file://" + absPath
}

// configuredEditor returns ui.editor, falling back to $VISUAL and $EDITOR.
func configuredEditor() string {
	if cfg.UI.Editor != "" {
		return cfg.UI.Editor
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// taskLocationLink renders a task's location as a link into the editor.
func taskLocationLink(task model.Task) string {
	location := ui.TaskLocation(task)
	if resolvedRoot == "" || !shouldEmitHyperlinks() {
		return location
	}

	line := 1
	if !task.IsFileTask() {
		line = task.Line + 1
	}
	abs := filepath.Join(resolvedRoot, filepath.FromSlash(task.FilePath))
	return "\x1b]8;;" + buildEditorURL(configuredEditor(), abs, line) + "\x07" + location + "\x1b]8;;\x07"
}
