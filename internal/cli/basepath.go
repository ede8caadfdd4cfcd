package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// BasepathEnv is read when --basepath is empty.
const BasepathEnv = "XELHUA_BASEPATH"

// basepath returns the --basepath flag, falling back to BasepathEnv when
// the flag is empty or the command does not carry it.
func basepath(cmd *cobra.Command) string {
	if b, err := cmd.Flags().GetString("basepath"); err == nil && b != "" {
		return b
	}
	return os.Getenv(BasepathEnv)
}

// fileArg resolves a path given on the command line, workbook or data file
// alike. Relative paths are joined to the basepath. Absolute paths, empty
// paths and an unset basepath pass through unchanged.
func fileArg(cmd *cobra.Command, file string) string {
	base := basepath(cmd)
	if base == "" || file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}
