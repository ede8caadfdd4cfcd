package cli

import (
	"errors"

	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/preset"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var styleCmd = &cobra.Command{
	Use:   "style <file> <range>",
	Short: "Apply a named style preset to a range",
	Long: `Build the preset --name from the YAML file --presets and attach it to every
cell in the range. All cells share the one style.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		presetsPath, err := stringFlag(cmd, "presets")
		if err != nil {
			return err
		}
		name, err := stringFlag(cmd, "name")
		if err != nil {
			return err
		}
		if presetsPath == "" || name == "" {
			return errors.New("--presets and --name are required")
		}

		presets, err := preset.Load(fileArg(cmd, presetsPath))
		if err != nil {
			return err
		}
		result, err := workbook.ApplyPreset(fileArg(cmd, args[0]), sheet, args[1], presets, name, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	styleCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	styleCmd.Flags().String("presets", "", "YAML file of named styles")
	styleCmd.Flags().StringP("name", "n", "", "Preset to apply")
	rootCmd.AddCommand(styleCmd)
}
