package cli

import (
	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <file> <address> <value>",
	Short: "Write a value to a cell",
	Long: `Write a value to a specific cell. Use --sheet to pick the sheet; a missing
sheet is created. Dates take --pattern as their number format.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		typ, err := typeFlag(cmd)
		if err != nil {
			return err
		}
		pattern, err := stringFlag(cmd, "pattern")
		if err != nil {
			return err
		}

		result, err := workbook.WriteCell(fileArg(cmd, args[0]), sheet, args[1], args[2], typ, pattern, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	writeCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	writeCmd.Flags().StringP("type", "t", "auto", "Value type: auto, string, number, bool, date, datetime, formula")
	writeCmd.Flags().StringP("pattern", "p", "", "Date format pattern (default yyyy-MM-dd, or yyyy-MM-dd HH:mm:ss for datetime)")
	rootCmd.AddCommand(writeCmd)
}
