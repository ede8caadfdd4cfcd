package cli

import (
	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var autosizeCmd = &cobra.Command{
	Use:   "autosize <file>",
	Short: "Fit column widths to their content",
	Long:  "Fit one column (--column C) or every column with a value in the first row. Merged cells are ignored.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		column, err := stringFlag(cmd, "column")
		if err != nil {
			return err
		}
		result, err := workbook.AutoSize(fileArg(cmd, args[0]), sheet, column, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	autosizeCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	autosizeCmd.Flags().StringP("column", "c", "", "Column letters (default: all columns in the first row)")
	rootCmd.AddCommand(autosizeCmd)
}
