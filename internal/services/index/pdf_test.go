package index

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal uncompressed PDF with one page per entry of
// texts, each drawn as a single Helvetica text run. Object offsets are
// recorded while writing so the xref table is always consistent.
func buildPDF(texts ...string) []byte {
	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(texts))
	for i := range texts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(texts)))
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	escaper := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	for i, text := range texts {
		pageObj := 4 + 2*i
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageObj, pageObj+1))

		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escaper.Replace(text))
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			pageObj+1, len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)
	return buf.Bytes()
}

func TestExtractPages(t *testing.T) {
	want := []string{"first page text", "second page text", "third page text"}

	pages, err := extractPages(buildPDF(want...))
	if err != nil {
		t.Fatalf("extractPages() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("extractPages() returned %d pages, want 3", len(pages))
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("pages[%d].Number = %d, want %d", i, p.Number, i+1)
		}
		if p.Text != want[i] {
			t.Errorf("pages[%d].Text = %q, want %q", i, p.Text, want[i])
		}
	}
}

func TestExtractPages_SkipsBlankPages(t *testing.T) {
	pages, err := extractPages(buildPDF("real content", "   "))
	if err != nil {
		t.Fatalf("extractPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("extractPages() returned %d pages, want 1", len(pages))
	}
	if pages[0].Number != 1 || pages[0].Text != "real content" {
		t.Errorf("pages[0] = %+v", pages[0])
	}
}

func TestExtractPages_AllBlank(t *testing.T) {
	if _, err := extractPages(buildPDF("   ", " ")); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("extractPages(blank pages) error = %v, want ErrEmptyDocument", err)
	}
}

func TestExtractPages_NotPDF(t *testing.T) {
	if _, err := extractPages([]byte("plain text, not a document")); err == nil {
		t.Fatal("extractPages(non-pdf) expected error")
	}
}
