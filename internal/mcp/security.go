package mcp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AllowedPathsEnv names the comma-separated list of extra allowed directories.
const AllowedPathsEnv = "XELHUA_ALLOWED_PATHS"

var ErrAccessDenied = errors.New("access denied: path outside allowed directories")

// AllowedBasePaths contains directories in which files can be accessed.
// If empty, defaults to current working directory.
var AllowedBasePaths []string

// InitAllowedPaths allows the working directory plus paths. Every entry must
// be an existing directory.
func InitAllowedPaths(paths []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}
	allowed := []string{cwd}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid allowed path %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("invalid allowed path %q: %w", p, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("invalid allowed path %q: not a directory", p)
		}
		allowed = append(allowed, abs)
	}
	AllowedBasePaths = allowed
	return nil
}

// LoadAllowedPathsFromEnv applies AllowedPathsEnv when it is set.
func LoadAllowedPathsFromEnv() error {
	v := os.Getenv(AllowedPathsEnv)
	if v == "" {
		return nil
	}
	return InitAllowedPaths(strings.Split(v, ","))
}

// ValidateFilePath ensures an existing file is safe to access and returns its
// resolved path.
func ValidateFilePath(requestedPath string) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// Resolve symlinks to prevent bypass
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", requestedPath)
		}
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	if err := checkAllowed(realPath); err != nil {
		return "", err
	}
	return realPath, nil
}

// ValidateWritePath checks a file that may not exist yet. Its directory must
// exist inside the allowed directories, and an existing file is refused
// unless overwrite is set.
func ValidateWritePath(requestedPath string, overwrite bool) (string, error) {
	if requestedPath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	absPath, err := filepath.Abs(requestedPath)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	dir, err := filepath.EvalSymlinks(filepath.Dir(absPath))
	if err != nil {
		return "", fmt.Errorf("cannot resolve directory: %w", err)
	}
	realPath := filepath.Join(dir, filepath.Base(absPath))

	if info, err := os.Lstat(realPath); err == nil {
		if !overwrite {
			return "", fmt.Errorf("file already exists: %s", requestedPath)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if realPath, err = filepath.EvalSymlinks(realPath); err != nil {
				return "", fmt.Errorf("cannot resolve path: %w", err)
			}
		}
	}

	if err := checkAllowed(realPath); err != nil {
		return "", err
	}
	return realPath, nil
}

func checkAllowed(realPath string) error {
	basePaths := AllowedBasePaths
	if len(basePaths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		basePaths = []string{cwd}
	}

	for _, base := range basePaths {
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		realBase, err := filepath.EvalSymlinks(absBase)
		if err != nil {
			continue
		}
		if strings.HasPrefix(realPath, realBase+string(os.PathSeparator)) || realPath == realBase {
			return nil
		}
	}
	return ErrAccessDenied
}
