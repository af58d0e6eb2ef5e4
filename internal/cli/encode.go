package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/taskmark/internal/codec"
)

var encodeFlags metadataFlags

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the metadata token string for the given fields",
	Long: `Encode metadata flags into the trailing token string of a task line, in
the configured dialect and canonical field order.

Examples:
  taskmark encode --due 2024-01-15 --priority 4
  taskmark encode --tag home --recurrence "every week" --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		md, _, err := encodeFlags.build(cmd.Flags(), now())
		if err != nil {
			return err
		}
		encoded := codec.New(cfg).Encode(md)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"tokens":   encoded,
				"format":   cfg.PreferMetadataFormat,
				"metadata": md,
			}, nil)
			return nil
		}
		fmt.Println(encoded)
		return nil
	},
}

func init() {
	encodeFlags.register(encodeCmd.Flags(), false)
	rootCmd.AddCommand(encodeCmd)
}
