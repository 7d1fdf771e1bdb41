package index

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// page is one parsed document page with its 1-based number.
type page struct {
	Number int
	Text   string
}

// extractPages parses PDF bytes into normalized page texts. Pages whose
// content is empty or whitespace-only are discarded; pages that fail to
// decode are skipped rather than failing the whole document.
func extractPages(raw []byte) ([]page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	totalPages := reader.NumPage()
	var pages []page
	for i := 1; i <= totalPages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = normalizeText(text)
		if text == "" {
			continue
		}
		pages = append(pages, page{Number: i, Text: text})
	}

	if len(pages) == 0 {
		return nil, ErrEmptyDocument
	}
	return pages, nil
}
