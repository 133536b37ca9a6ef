package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filePath string) (*ExtractedText, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText reads the plain text of every page. Pages that fail to decode are
// skipped; a document with no text at all is a ParseError.
func (p *pdfParserService) ExtractText(filePath string) (result *ExtractedText, err error) {
	if _, statErr := os.Stat(filePath); statErr != nil {
		return nil, &ParseError{File: filePath, Reason: "file not readable", Err: statErr}
	}

	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{File: filePath, Reason: fmt.Sprintf("corrupt PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, &ParseError{File: filePath, Reason: "failed to open PDF", Err: err}
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{File: filePath, Reason: "no text content found in PDF"}
	}

	return &ExtractedText{
		Text:      text,
		PageCount: totalPage,
	}, nil
}
