package cli

import (
	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file> <range>",
	Short: "Merge a rectangular range of cells",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		result, err := workbook.Merge(fileArg(cmd, args[0]), sheet, args[1], documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	mergeCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
	rootCmd.AddCommand(mergeCmd)
}
