package services

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"
)

// charsPerPage approximates how much text fits on one DOCX page.
const charsPerPage = 3000

type DOCXParserService interface {
	ExtractText(filePath string) (*ExtractedText, error)
}

type docxParserService struct{}

func NewDOCXParserService() DOCXParserService {
	return &docxParserService{}
}

// documentXML mirrors the parts of word/document.xml that carry text.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// ExtractText joins the paragraphs of the document body with newlines. DOCX
// has no fixed pagination, so the page count is estimated from the length.
func (d *docxParserService) ExtractText(filePath string) (*ExtractedText, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, &ParseError{File: filePath, Reason: "not a valid DOCX archive", Err: err}
	}
	defer reader.Close()

	var body []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, &ParseError{File: filePath, Reason: "failed to open document.xml", Err: err}
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ParseError{File: filePath, Reason: "failed to read document.xml", Err: err}
		}
		break
	}
	if body == nil {
		return nil, &ParseError{File: filePath, Reason: "word/document.xml missing"}
	}

	var doc documentXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{File: filePath, Reason: "malformed document.xml", Err: err}
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				sb.WriteString(t.Content)
			}
		}
		lines = append(lines, sb.String())
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{File: filePath, Reason: "no text content found in DOCX"}
	}

	pages := utf8.RuneCountInString(text) / charsPerPage
	if pages < 1 {
		pages = 1
	}

	return &ExtractedText{Text: text, PageCount: pages}, nil
}
