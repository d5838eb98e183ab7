// Package cvfile loads résumé files for upload and checks they are readable documents.
package cvfile

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// File is a résumé ready to be sent as a multipart part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Preview summarises the document text. Used for debug logging only.
type Preview struct {
	Pages int
	Words int
}

// UnsupportedFileError is returned for anything other than PDF or DOCX.
type UnsupportedFileError struct {
	Name   string
	Detail string
}

func (e *UnsupportedFileError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cv file %q is not a PDF or DOCX document: %s", e.Name, e.Detail)
	}
	return fmt.Sprintf("cv file %q is not a PDF or DOCX document", e.Name)
}

// Load reads the file at path. An empty path returns nil, nil so callers can
// distinguish "no file" from a broken one.
func Load(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cv file: %w", err)
	}

	name := filepath.Base(path)
	contentType, err := detect(name, data)
	if err != nil {
		return nil, err
	}

	return &File{Name: name, ContentType: contentType, Data: data}, nil
}

// Inspect parses the document and counts pages and words.
func (f *File) Inspect() (*Preview, error) {
	switch f.ContentType {
	case MIMEPDF:
		return inspectPDF(f.Data)
	case MIMEDOCX:
		return inspectDOCX(f.Data)
	default:
		return nil, &UnsupportedFileError{Name: f.Name, Detail: f.ContentType}
	}
}

func detect(name string, data []byte) (string, error) {
	sniffed := http.DetectContentType(data)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return "", &UnsupportedFileError{Name: name, Detail: "missing %PDF header"}
		}
		return MIMEPDF, nil
	case ".docx":
		// docx is a zip container
		if sniffed != "application/zip" {
			return "", &UnsupportedFileError{Name: name, Detail: "not a zip container"}
		}
		return MIMEDOCX, nil
	default:
		return "", &UnsupportedFileError{Name: name, Detail: "unknown extension"}
	}
}

func inspectPDF(data []byte) (*Preview, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	preview := &Preview{Pages: reader.NumPage()}

	text, err := reader.GetPlainText()
	if err != nil {
		return preview, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return preview, fmt.Errorf("extract pdf text: %w", err)
	}
	preview.Words = len(strings.Fields(buf.String()))

	return preview, nil
}

func inspectDOCX(data []byte) (*Preview, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	content := stripTags(doc.Editable().GetContent())

	return &Preview{Pages: 1, Words: len(strings.Fields(content))}, nil
}

// stripTags drops the WordprocessingML markup around text runs.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
