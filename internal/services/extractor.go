package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ExtractedText is the raw output of a document reader.
type ExtractedText struct {
	Text      string
	PageCount int
}

// ParseError reports an unreadable, corrupt or empty document.
type ParseError struct {
	File   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s: %s: %v", filepath.Base(e.File), e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %s", filepath.Base(e.File), e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnsupportedFormat is returned for files that are neither PDF nor DOCX.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

type DocumentExtractor interface {
	Extract(filePath string) (*ExtractedText, error)
}

type documentExtractor struct {
	pdf  PDFParserService
	docx DOCXParserService
}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{
		pdf:  NewPDFParserService(),
		docx: NewDOCXParserService(),
	}
}

// Extract dispatches on the file extension.
func (d *documentExtractor) Extract(filePath string) (*ExtractedText, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return d.pdf.ExtractText(filePath)
	case ".docx":
		return d.docx.ExtractText(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
}
