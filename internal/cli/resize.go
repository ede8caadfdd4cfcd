package cli

import (
	"fmt"

	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var resizeCmd = &cobra.Command{
	Use:   "resize <file>",
	Short: "Set column widths, row heights and sheet defaults",
	Long: `Set column widths in characters (--width B=12), row heights in points
(--height 3=24.5) and the sheet's default width and height. Reported widths
are in 1/256 characters and heights in twips.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		widths, err := cmd.Flags().GetStringArray("width")
		if err != nil {
			return fmt.Errorf("failed to get width flag: %w", err)
		}
		heights, err := cmd.Flags().GetStringArray("height")
		if err != nil {
			return fmt.Errorf("failed to get height flag: %w", err)
		}

		rz, err := workbook.ParseResize(widths, heights)
		if err != nil {
			return err
		}
		if rz.DefaultWidth, err = cmd.Flags().GetInt("default-width"); err != nil {
			return fmt.Errorf("failed to get default-width flag: %w", err)
		}
		if rz.DefaultHeight, err = cmd.Flags().GetInt("default-height"); err != nil {
			return fmt.Errorf("failed to get default-height flag: %w", err)
		}

		result, err := workbook.ApplyResize(fileArg(cmd, args[0]), sheet, rz, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	resizeCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	resizeCmd.Flags().StringArray("width", nil, "Column width as COL=CHARS (repeatable)")
	resizeCmd.Flags().StringArray("height", nil, "Row height as ROW=POINTS (repeatable)")
	resizeCmd.Flags().Int("default-width", 0, "Default column width in characters")
	resizeCmd.Flags().Int("default-height", 0, "Default row height in points")
	rootCmd.AddCommand(resizeCmd)
}
