package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is the per-page text of the source PDF. Numbers are 1-based and
// preserved verbatim from the reader; they are never recomputed downstream.
type Page struct {
	Number int
	Text   string
}

// ParsePDF extracts plain text from every page of the PDF at filePath.
// Pages whose extracted text is empty after trimming are skipped.
func ParsePDF(filePath string) ([]Page, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %v", err)
	}

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %v", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, Page{Number: i, Text: pageText})
	}
	return pages, nil
}
