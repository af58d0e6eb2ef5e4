package cli

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/config"
	"github.com/aidanlsb/taskmark/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the global config file",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the default config file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipVault: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return err
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": resolvedConfigPath, "created": created}, nil)
			return nil
		}
		if !created {
			fmt.Println(ui.Hint(fmt.Sprintf("%s already exists", resolvedConfigPath)))
			return nil
		}
		fmt.Println(ui.Successf("Created %s", ui.FilePath(resolvedConfigPath)))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config and state file paths",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipVault: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_file": resolvedConfigPath,
				"state_file":  resolvedStatePath,
			}, nil)
			return nil
		}
		fmt.Println(resolvedConfigPath)
		fmt.Println(ui.Hint("state: " + resolvedStatePath))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration commands run with: the global config file with the
active vault's .taskmark.yaml overrides applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_file": resolvedConfigPath,
				"root":        resolvedRoot,
				"config":      cfg,
			}, nil)
			return nil
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Print(buf.String())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
