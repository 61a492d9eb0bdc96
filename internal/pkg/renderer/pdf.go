package renderer

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live. In the Docker
	// runtime fonts are copied to ./ttf next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/renderer/ttf/DejaVuSans.ttf"

	pdfParagraphGap = 3.0
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

// Format lays out the sheet on A4 pages, one block per paragraph,
// top to bottom. gofpdf inserts page breaks automatically when a
// block overflows the page.
func (pf *PDFFormatter) Format(title, text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Use the UTF-8 capable DejaVuSans font when bundled, otherwise
	// fall back to the built-in Arial. Arial only covers cp1252, so
	// the translator maps accented text into it; characters outside
	// cp1252 need ttf/DejaVuSans.ttf shipped next to the binary.
	fontName := "Arial"
	translate := func(s string) string { return s }
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	if title != "" {
		pdf.SetFont(fontName, "B", 18)
		pdf.MultiCell(0, 9, translate(title), "", "", false)
		pdf.Ln(6)
	}

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	for _, paragraph := range splitParagraphs(text) {
		pdf.MultiCell(0, lineHeight*1.5, translate(paragraph), "", "", false)
		pdf.Ln(pdfParagraphGap)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
