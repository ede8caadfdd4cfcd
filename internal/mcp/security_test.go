package mcp

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withAllowed sets AllowedBasePaths for the duration of a test.
func withAllowed(t *testing.T, paths ...string) {
	t.Helper()
	original := AllowedBasePaths
	AllowedBasePaths = paths
	t.Cleanup(func() { AllowedBasePaths = original })
}

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return real
}

func TestValidateFilePath(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()
	inside := touch(t, filepath.Join(allowed, "in.xlsx"))
	outsideFile := touch(t, filepath.Join(outside, "out.xlsx"))
	withAllowed(t, allowed)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{"empty", "", "", "cannot be empty"},
		{"inside", inside, inside, ""},
		{"outside", outsideFile, "", "access denied"},
		{"traversal", filepath.Join(allowed, "..", filepath.Base(outside), "out.xlsx"), "", "access denied"},
		{"missing", filepath.Join(allowed, "none.xlsx"), "", "file not found"},
		{"allowed dir itself", allowed, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFilePath(tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ValidateFilePath(%q) error = %v, want %q", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateFilePath(%q) failed: %v", tt.path, err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("ValidateFilePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidateFilePathSymlinks(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()
	target := touch(t, filepath.Join(outside, "target.xlsx"))

	link := filepath.Join(allowed, "link.xlsx")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	withAllowed(t, allowed)
	if _, err := ValidateFilePath(link); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("symlink escaping the allowed dir: error = %v, want ErrAccessDenied", err)
	}

	withAllowed(t, allowed, outside)
	got, err := ValidateFilePath(link)
	if err != nil {
		t.Fatalf("ValidateFilePath failed: %v", err)
	}
	if got != target {
		t.Errorf("expected resolved target %s, got %s", target, got)
	}
}

func TestValidateWritePath(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()
	existing := touch(t, filepath.Join(allowed, "old.xlsx"))
	withAllowed(t, allowed)

	if _, err := ValidateWritePath(filepath.Join(allowed, "new.xlsx"), false); err != nil {
		t.Errorf("new file in allowed dir: %v", err)
	}
	if _, err := ValidateWritePath(existing, false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("existing file without overwrite: error = %v", err)
	}
	if got, err := ValidateWritePath(existing, true); err != nil || got != existing {
		t.Errorf("existing file with overwrite = %q, %v", got, err)
	}
	if _, err := ValidateWritePath(filepath.Join(outside, "new.xlsx"), true); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("outside dir: error = %v, want ErrAccessDenied", err)
	}
	if _, err := ValidateWritePath(filepath.Join(allowed, "missing", "new.xlsx"), true); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestInitAllowedPaths(t *testing.T) {
	withAllowed(t)
	extra := t.TempDir()

	if err := InitAllowedPaths([]string{extra, " "}); err != nil {
		t.Fatalf("InitAllowedPaths failed: %v", err)
	}
	cwd, _ := os.Getwd()
	if len(AllowedBasePaths) != 2 || AllowedBasePaths[0] != cwd || AllowedBasePaths[1] != extra {
		t.Errorf("unexpected allowed paths: %v", AllowedBasePaths)
	}

	file := touch(t, filepath.Join(extra, "f.txt"))
	if err := InitAllowedPaths([]string{file}); err == nil {
		t.Error("expected error for a file entry")
	}
	if err := InitAllowedPaths([]string{filepath.Join(extra, "none")}); err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestLoadAllowedPathsFromEnv(t *testing.T) {
	withAllowed(t)
	a, b := t.TempDir(), t.TempDir()

	t.Setenv(AllowedPathsEnv, "")
	if err := LoadAllowedPathsFromEnv(); err != nil || AllowedBasePaths != nil {
		t.Errorf("empty env changed paths: %v, %v", AllowedBasePaths, err)
	}

	t.Setenv(AllowedPathsEnv, a+","+b)
	if err := LoadAllowedPathsFromEnv(); err != nil {
		t.Fatalf("LoadAllowedPathsFromEnv failed: %v", err)
	}
	if len(AllowedBasePaths) != 3 {
		t.Errorf("expected cwd plus 2 paths, got %v", AllowedBasePaths)
	}
}
