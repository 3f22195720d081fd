// Package docextract turns uploaded resume documents into plain text.
package docextract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/peoplehub/pkg/fsx"
)

// Format is the declared type of a document
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// SupportedFormats lists every format Extract accepts
var SupportedFormats = []Format{FormatPDF, FormatDOCX}

// ParseFormat normalizes a declared type tag such as "PDF" or ".docx".
// Unknown tags are returned as-is so Extract can report them.
func ParseFormat(tag string) Format {
	return Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "."))
}

// FormatFromPath derives the format from a file extension
func FormatFromPath(path string) Format {
	return ParseFormat(filepath.Ext(path))
}

// IsSupported reports whether f can be extracted
func (f Format) IsSupported() bool {
	return f == FormatPDF || f == FormatDOCX
}

// Extractor reads documents from storage and extracts their text
type Extractor struct {
	files fsx.FileReader
}

// NewExtractor creates an extractor reading through files
func NewExtractor(files fsx.FileReader) *Extractor {
	return &Extractor{files: files}
}

// ExtractFile reads path from storage and extracts its text
func (e *Extractor) ExtractFile(ctx context.Context, path string, format Format) (string, error) {
	if !format.IsSupported() {
		return "", ErrUnsupportedFormat().
			WithDetail("format", string(format)).
			WithDetail("path", path)
	}

	data, err := e.files.ReadFile(ctx, path)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("path", path).
			WithDetail("stage", "read")
	}

	return e.Extract(ctx, data, format)
}

// Extract returns the text of every page or paragraph in document order
func (e *Extractor) Extract(ctx context.Context, data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	default:
		return "", ErrUnsupportedFormat().WithDetail("format", string(format))
	}

	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", string(format))
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrExtractionFailed().
			WithDetail("format", string(format)).
			WithDetail("reason", "document contains no extractable text")
	}

	return text, nil
}
