// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/tasks"
	"github.com/aidanlsb/taskmark/internal/ui"
	"github.com/aidanlsb/taskmark/internal/vault"
)

var (
	// Global flags
	rootFlag      string
	configPath    string
	statePathFlag string
	verbose       bool

	// Resolved values
	resolvedRoot       string
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                config.Config
	vaultCfg           *config.VaultConfig
	logger             *slog.Logger
)

// annotationSkipVault marks commands that run without resolving a vault.
const annotationSkipVault = "skip-vault"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taskmark",
	Short: "taskmark - tasks in plain markdown",
	Long: `taskmark reads and edits tasks kept as checkbox lines in markdown notes.

Trailing metadata (dates, priority, recurrence, tags) is written in either the
emoji dialect or the [key:: value] dataview dialect. Documents can also become
tasks through their front matter or tags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, verbose)
		slog.SetDefault(logger)
		// In JSON mode Execute reports the error in the envelope.
		cmd.Root().SilenceErrors = jsonOutput

		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return &cliError{code: ErrConfigInvalid, err: fmt.Errorf("failed to load config: %w", err)}
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, &cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		if cmd.Annotations[annotationSkipVault] == "true" {
			return nil
		}

		// Resolve vault root: explicit flag > active state > working directory
		resolvedRoot, err = resolveRoot()
		if err != nil {
			return err
		}

		vaultCfg, err = config.LoadVaultConfig(resolvedRoot)
		if err != nil {
			return &cliError{code: ErrConfigInvalid, err: err}
		}
		cfg, err = vaultCfg.Apply(cfg)
		if err != nil {
			return &cliError{code: ErrConfigInvalid, err: err}
		}
		logger.Debug("configuration loaded", "config", resolvedConfigPath, "root", resolvedRoot)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && jsonOutput {
		outputErrorFromErr(errorCode(err), err, "")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Vault directory (default: active vault, then the working directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug details to stderr")
}

func resolveRoot() (string, error) {
	root := strings.TrimSpace(rootFlag)
	if root == "" {
		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return "", fmt.Errorf("failed to load state: %w", err)
		}
		root = state.ActiveRoot
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", &cliError{code: ErrVaultNotFound, err: fmt.Errorf("vault not found: %s", abs)}
	}
	return abs, nil
}

func loadGlobalConfigWithPath() (config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	if strings.TrimSpace(configPath) != "" {
		loaded, err := config.LoadFrom(configPath)
		return loaded, resolvedPath, err
	}
	loaded, err := config.Load()
	return loaded, resolvedPath, err
}

// openService opens the vault store and a task service over it.
func openService() (*vault.Store, *tasks.Service, error) {
	store, err := vault.Open(resolvedRoot)
	if err != nil {
		return nil, nil, &cliError{code: ErrVaultNotFound, err: err}
	}
	return store, tasks.New(store, cfg, logger), nil
}

// resolveDocument resolves a document argument to a vault-relative path.
func resolveDocument(store *vault.Store, ref string) (string, error) {
	rel, err := store.Resolve(ref)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return "", &cliError{code: tasks.CodeDocumentNotFound, err: err}
		}
		return "", err
	}
	return rel, nil
}
