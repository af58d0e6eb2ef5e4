package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/ui"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage the active vault",
}

var vaultUseCmd = &cobra.Command{
	Use:         "use <dir>",
	Short:       "Make a directory the active vault",
	Long:        `Record a directory as the vault used when --root is not given.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationSkipVault: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return withCode(ErrVaultNotFound, fmt.Errorf("not a directory: %s", abs))
		}

		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return withCode(ErrConfigInvalid, err)
		}
		state.Remember(abs)
		if err := config.SaveState(resolvedStatePath, state); err != nil {
			return err
		}
		logger.Debug("active vault saved", "root", abs, "state", resolvedStatePath)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"root": abs, "state_file": resolvedStatePath}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Active vault: %s", ui.FilePath(abs)))
		return nil
	},
}

var vaultCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the vault commands run against",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"root":     resolvedRoot,
				"ignore":   vaultCfg.Ignore,
				"timezone": cfg.Timezone,
				"recent":   recentRoots(),
			}, nil)
			return nil
		}
		fmt.Println(resolvedRoot)
		for _, r := range recentRoots() {
			if r != resolvedRoot {
				fmt.Println(ui.Hint("  " + r))
			}
		}
		return nil
	},
}

var vaultInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .taskmark.yaml override file into the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefaultVaultConfig(resolvedRoot)
		if err != nil {
			return err
		}
		path := filepath.Join(resolvedRoot, config.VaultConfigFile)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}
		if !created {
			fmt.Println(ui.Hint(fmt.Sprintf("%s already exists", path)))
			return nil
		}
		fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		return nil
	},
}

var vaultIgnoreCmd = &cobra.Command{
	Use:   "ignore <dir>...",
	Short: "Skip directories when listing the vault",
	Long: `Add directory prefixes to the ignore list of the vault's .taskmark.yaml.

Examples:
  taskmark vault ignore templates archive/2023`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vc, err := config.LoadVaultConfig(resolvedRoot)
		if err != nil {
			return withCode(ErrConfigInvalid, err)
		}
		var added []string
		for _, arg := range args {
			prefix := strings.Trim(filepath.ToSlash(strings.TrimSpace(arg)), "/")
			if prefix == "" {
				return withCode(ErrInvalidInput, fmt.Errorf("empty directory"))
			}
			prefix += "/"
			if vc.IsIgnored(prefix) {
				continue
			}
			vc.Ignore = append(vc.Ignore, prefix)
			added = append(added, prefix)
		}
		if len(added) > 0 {
			if err := config.SaveVaultConfig(resolvedRoot, vc); err != nil {
				return err
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"added": added, "ignore": vc.Ignore}, nil)
			return nil
		}
		if len(added) == 0 {
			fmt.Println(ui.Hint("Already ignored."))
			return nil
		}
		fmt.Println(ui.Successf("Ignoring %s", strings.Join(added, ", ")))
		return nil
	},
}

// recentRoots returns the recently active vaults, or nil when the state
// file cannot be read.
func recentRoots() []string {
	state, err := config.LoadState(resolvedStatePath)
	if err != nil {
		logger.Debug("state unreadable", "path", resolvedStatePath, "error", err)
		return nil
	}
	return state.RecentRoots
}

func init() {
	vaultCmd.AddCommand(vaultUseCmd)
	vaultCmd.AddCommand(vaultCurrentCmd)
	vaultCmd.AddCommand(vaultInitCmd)
	vaultCmd.AddCommand(vaultIgnoreCmd)
	rootCmd.AddCommand(vaultCmd)
}
