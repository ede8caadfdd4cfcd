package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestFileArg(t *testing.T) {
	withFlag := func(value string) *cobra.Command {
		cmd := &cobra.Command{Use: "cell"}
		cmd.Flags().String("basepath", "", "")
		if value != "" {
			if err := cmd.Flags().Set("basepath", value); err != nil {
				t.Fatal(err)
			}
		}
		return cmd
	}

	tests := []struct {
		name string
		cmd  *cobra.Command
		env  string
		file string
		want string
	}{
		{"no basepath", withFlag(""), "", "book.xlsx", "book.xlsx"},
		{"flag joins relative", withFlag("/data"), "", "q1/book.xlsx", filepath.Join("/data", "q1/book.xlsx")},
		{"flag beats env", withFlag("/data"), "/env", "book.xlsx", filepath.Join("/data", "book.xlsx")},
		{"env when flag empty", withFlag(""), "/env", "book.xlsx", filepath.Join("/env", "book.xlsx")},
		{"env when flag missing", &cobra.Command{Use: "bare"}, "/env", "book.xlsx", filepath.Join("/env", "book.xlsx")},
		{"absolute untouched", withFlag("/data"), "", "/abs/book.xlsx", "/abs/book.xlsx"},
		{"empty untouched", withFlag("/data"), "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(BasepathEnv, tt.env)
			if got := fileArg(tt.cmd, tt.file); got != tt.want {
				t.Errorf("fileArg(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestCommandsResolveAgainstBasepath(t *testing.T) {
	testFile := createTestFile(t)
	dir := filepath.Dir(testFile)
	name := filepath.Base(testFile)

	out := mustRun(t, "--basepath", dir, "cell", name, "C3")
	if got := decodeJSON(t, out)["value"]; got != "Boston" {
		t.Errorf("C3 = %v, want Boston", got)
	}

	t.Setenv(BasepathEnv, dir)
	out = mustRun(t, "lookup", name, "2", "Name")
	if got := decodeJSON(t, out)["value"]; got != "Alice" {
		t.Errorf("Name in row 2 = %v, want Alice", got)
	}

	if _, err := run(t, "--basepath", t.TempDir(), "cell", name, "A1"); err == nil {
		t.Error("expected the file to be missing under another basepath")
	}
}

func TestCreateResolvesDataFileAgainstBasepath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rows.json"), []byte(`[["x", 1], ["y", true]]`), 0644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "--basepath", dir, "create", "out/made", "--headers", "Key,Value", "--data", "rows.json")
	m := decodeJSON(t, out)
	want := filepath.Join(dir, "out", "made.xlsx")
	if m["file"] != want || m["rows_written"] != 2.0 {
		t.Errorf("unexpected create result: %v", m)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("created file missing: %v", err)
	}

	out = mustRun(t, "--basepath", dir, "cell", "out/made.xlsx", "B3", "--type", "bool")
	if got := decodeJSON(t, out)["value"]; got != true {
		t.Errorf("B3 = %v, want true", got)
	}
}
