// Package textextract pulls plain text out of uploaded resume files.
package textextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MIME types accepted for resume uploads.
const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType wraps the MIME type of a file we cannot extract.
type ErrUnsupportedType struct {
	Mime string
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("textextract: unsupported file type: %s", e.Mime)
}

// SupportedTypes lists the accepted MIME types for error responses.
func SupportedTypes() []string {
	return []string{MimePlain, MimePDF, MimeDocx}
}

// Supported reports whether the MIME type can be extracted.
func Supported(mime string) bool {
	switch mime {
	case MimePlain, MimePDF, MimeDocx:
		return true
	}
	return false
}

// Extract dispatches on MIME type and returns the file's plain text.
func Extract(mime string, data []byte) (string, error) {
	switch mime {
	case MimePlain:
		return string(data), nil
	case MimePDF:
		return extractPDF(data)
	case MimeDocx:
		return extractDocx(data)
	default:
		return "", &ErrUnsupportedType{Mime: mime}
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("textextract: read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		b.WriteString(text)
	}
	return b.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("textextract: parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
