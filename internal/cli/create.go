package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/elex-project/xelhua/internal/output"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create a new workbook",
	Long:  "Create a new xlsx file with optional headers and initial data. A name without an extension gets .xlsx.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheetName, err := stringFlag(cmd, "sheet")
		if err != nil {
			return err
		}
		headersStr, err := stringFlag(cmd, "headers")
		if err != nil {
			return err
		}
		overwrite, err := cmd.Flags().GetBool("overwrite")
		if err != nil {
			return fmt.Errorf("failed to get overwrite flag: %w", err)
		}
		dataFile, err := stringFlag(cmd, "data")
		if err != nil {
			return err
		}

		var headers []string
		if headersStr != "" {
			headers = strings.Split(headersStr, ",")
		}

		var rows [][]any
		if dataFile != "" {
			data, err := os.ReadFile(fileArg(cmd, dataFile))
			if err != nil {
				return fmt.Errorf("failed to read data file: %w", err)
			}
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("failed to parse data file as JSON array: %w", err)
			}
		}

		result, err := workbook.Create(fileArg(cmd, args[0]), sheetName, headers, rows, overwrite, documentOptions(cmd)...)
		if err != nil {
			return err
		}
		return output.Print(result, GetFormatFromCmd(cmd))
	},
}

func init() {
	createCmd.Flags().StringP("sheet", "s", "Sheet1", "Name for the first sheet")
	createCmd.Flags().StringP("headers", "H", "", "Comma-separated header row")
	createCmd.Flags().BoolP("overwrite", "o", false, "Overwrite existing file")
	createCmd.Flags().StringP("data", "d", "", "JSON file with initial data (array of arrays)")
	rootCmd.AddCommand(createCmd)
}
