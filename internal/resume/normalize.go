package resume

// Normalize turns extracted text into the ParsedDocument consumed by the scorers.
func Normalize(fullText string, pageCount int) *ParsedDocument {
	return &ParsedDocument{
		FullText:  fullText,
		Sections:  ClassifySections(fullText),
		Contact:   ExtractContact(fullText),
		Links:     ExtractLinks(fullText),
		PageCount: pageCount,
	}
}
