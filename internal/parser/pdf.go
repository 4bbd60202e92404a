package parser

import (
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor reads PDFs with ledongthuc/pdf. Reading order is whatever the
// library produces; no column reordering is attempted.
type PDFExtractor struct{}

func (e *PDFExtractor) ExtractPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, nil
}
