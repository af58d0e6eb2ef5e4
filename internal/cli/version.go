package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/taskmark"

type versionInfo struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taskmark version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		line := "taskmark " + info.Version
		if info.Commit != "" {
			commit := info.Commit
			if len(commit) > 12 {
				commit = commit[:12]
			}
			if info.Dirty {
				commit += "-dirty"
			}
			line += " (" + commit + ")"
		}
		fmt.Println(line)
		fmt.Printf("%s %s\n", info.GoVersion, info.Platform)
		return nil
	},
}

// buildVersionInfo reads the embedded build info. Release builds stamp
// buildinfo through ldflags, which fills what the module info lacks.
func buildVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		Module:    defaultModulePath,
		GoVersion: runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.BuiltAt = s.Value
			case "vcs.modified":
				info.Dirty = strings.EqualFold(s.Value, "true")
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
	}
	info.Platform = goos + "/" + goarch

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.BuiltAt == "" {
		info.BuiltAt = buildinfo.Date
	}
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
