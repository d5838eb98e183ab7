package jddiff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

const (
	// ExportFileName is the name of the downloaded matrix.
	ExportFileName = "jd_diff.csv"
	// ContentType is the media type of the exported matrix.
	ContentType = "text/csv;charset=utf-8"
)

// Exporter offers the two export actions. Both are no-ops without a matrix.
type Exporter struct {
	// WriteClipboard defaults to the system clipboard.
	WriteClipboard func(text string) error
}

// Copy puts the CSV text on the clipboard. It reports whether anything was copied.
func (e *Exporter) Copy(m *Matrix) (bool, error) {
	text := m.CSV()
	if text == "" {
		return false, nil
	}

	write := e.WriteClipboard
	if write == nil {
		write = clipboard.WriteAll
	}

	if err := write(text); err != nil {
		return false, fmt.Errorf("copy csv to clipboard: %w", err)
	}
	return true, nil
}

// Download writes dir/jd_diff.csv prefixed with a UTF-8 byte order mark and
// returns its path. It returns "" when there is nothing to export.
func (e *Exporter) Download(m *Matrix, dir string) (string, error) {
	text := m.CSV()
	if text == "" {
		return "", nil
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(path, []byte(utf8BOM+text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", ExportFileName, err)
	}
	return path, nil
}
