package cli

import (
	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var cellCmd = &cobra.Command{
	Use:   "cell <file> <address>",
	Short: "Read a single cell value",
	Long: `Read a single cell with a typed reader. With --type auto the stored kind
picks the reader, and date-formatted numbers come back as date-times.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		typ, err := typeFlag(cmd)
		if err != nil {
			return err
		}

		result, err := workbook.ReadCell(fileArg(cmd, args[0]), sheet, args[1], typ, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	cellCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	cellCmd.Flags().StringP("type", "t", "auto", "Value type: auto, string, number, bool, date, datetime, formula")
	rootCmd.AddCommand(cellCmd)
}
