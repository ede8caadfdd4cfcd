package cli

import (
	"fmt"
	"strconv"

	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <file> <row> <header>",
	Short: "Read a cell by its column header",
	Long: `Find the column whose header cell text equals <header> exactly and read
that column in <row>. Rows are 1-based. Header is row 1 unless --header-row
says otherwise.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid row %q: %w", args[1], err)
		}
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		headerRow, err := cmd.Flags().GetInt("header-row")
		if err != nil {
			return fmt.Errorf("failed to get header-row flag: %w", err)
		}
		typ, err := typeFlag(cmd)
		if err != nil {
			return err
		}

		result, err := workbook.Lookup(fileArg(cmd, args[0]), sheet, row, args[2], headerRow, typ, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	lookupCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	lookupCmd.Flags().Int("header-row", 1, "1-based row holding the column headers")
	lookupCmd.Flags().StringP("type", "t", "auto", "Value type: auto, string, number, bool, date, datetime, formula")
	rootCmd.AddCommand(lookupCmd)
}
