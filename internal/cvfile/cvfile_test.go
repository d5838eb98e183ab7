package cvfile

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte("<w:document><w:t>Go developer</w:t></w:document>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestLoadEmptyPath(t *testing.T) {
	f, err := Load("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil file for empty path")
	}
}

func TestLoadDetectsType(t *testing.T) {
	pdfPath := writeFile(t, "cv.pdf", []byte("%PDF-1.4 fake"))
	f, err := Load(pdfPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ContentType != MIMEPDF || f.Name != "cv.pdf" {
		t.Fatalf("unexpected file: %+v", f)
	}

	docxPath := writeFile(t, "cv.docx", zipBytes(t))
	f, err = Load(docxPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ContentType != MIMEDOCX {
		t.Fatalf("unexpected content type: %s", f.ContentType)
	}
}

func TestLoadRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "cv.txt", data: []byte("plain text")},
		{name: "cv.pdf", data: []byte("not really a pdf")},
		{name: "cv.docx", data: []byte("not a zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.name, tt.data))
			var unsupported *UnsupportedFileError
			if !errors.As(err, &unsupported) {
				t.Fatalf("expected UnsupportedFileError, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<w:p><w:t>Senior</w:t><w:t>Go</w:t></w:p>")
	if words := len(bytes.Fields([]byte(got))); words != 2 {
		t.Fatalf("expected 2 words, got %d (%q)", words, got)
	}
}
