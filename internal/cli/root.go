package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/fang"
	"github.com/elex-project/xelhua/internal/logging"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/elex-project/xelhua/pkg/xelhua"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "xelhua",
	Short: "xelhua - spreadsheet access from the command line",
	Long: `xelhua reads and writes xlsx workbooks cell by cell: typed values, header
lookups, merges, column widths, row heights and shared styles. Legacy .xls
files are read and saved back as .xlsx.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; a malformed one is not.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, date string) error {
	versionStr := version
	if versionStr == "" {
		versionStr = "dev"
	}
	if commit != "" {
		versionStr += fmt.Sprintf(" (commit: %s)", commit)
	}
	if date != "" {
		versionStr += fmt.Sprintf(" built: %s", date)
	}

	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(versionStr),
	)
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", "json", "Output format (json, csv, tsv)")
	rootCmd.PersistentFlags().StringP("basepath", "b", "", "Directory relative file paths are resolved against (env: XELHUA_BASEPATH)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug events to stderr")
	rootCmd.PersistentFlags().String("charset", "", "Text encoding of legacy .xls files (default utf-8)")
}

// GetFormatFromCmd returns the output format flag value
func GetFormatFromCmd(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("format")
	if err != nil || format == "" {
		return "json"
	}
	return format
}

// documentOptions builds the access-layer options from the persistent flags.
func documentOptions(cmd *cobra.Command) []xelhua.Option {
	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := []xelhua.Option{xelhua.WithLogger(logging.Stderr(verbose))}
	if charset, _ := cmd.Flags().GetString("charset"); charset != "" {
		opts = append(opts, xelhua.WithCharset(charset))
	}
	return opts
}

// stringFlag reads a string flag registered by the command itself.
func stringFlag(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

// typeFlag reads and validates the --type flag.
func typeFlag(cmd *cobra.Command) (workbook.ValueType, error) {
	v, err := stringFlag(cmd, "type")
	if err != nil {
		return "", err
	}
	return workbook.ParseValueType(v)
}
