package xelhua

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ResolveSavePath appends the format's extension to name unless name already
// ends with it.
func ResolveSavePath(name string, f Format) string {
	if strings.HasSuffix(name, f.Extension()) {
		return name
	}
	return name + f.Extension()
}

// Write flushes pending style changes and writes the document to w. Closing
// w is left to the caller.
func (d *Document) Write(w io.Writer) error {
	if d.format == FormatLegacy {
		return fmt.Errorf("%w: cannot write xls, call Upgrade to save as xlsx", ErrUnsupportedFormat)
	}
	if err := d.flushStyles(); err != nil {
		return err
	}
	if err := d.file.Write(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// SaveAs writes the document to exactly path.
func (d *Document) SaveAs(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.Write(fh); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Save writes the document to name, adding the format extension if missing
// and creating parent directories. The file is written to a temporary
// sibling first and renamed into place. It returns the path written.
func (d *Document) Save(name string) (string, error) {
	if d.format == FormatLegacy {
		return "", fmt.Errorf("%w: cannot write xls, call Upgrade to save as xlsx", ErrUnsupportedFormat)
	}
	path := ResolveSavePath(name, d.format)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	// CreateTemp opens with 0600.
	_ = tmp.Chmod(0644)

	if err := d.Write(tmp); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	d.log.Debug().Str("path", path).Msg("document saved")
	return path, nil
}
