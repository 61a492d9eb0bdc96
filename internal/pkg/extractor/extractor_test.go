package extractor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/memomaster/backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"go.uber.org/zap"
)

func newTestExtractor() *Extractor {
	return New(zap.NewNop())
}

func uploaded(name string, data []byte) entity.UploadedDocument {
	return entity.UploadedDocument{
		Filename: name,
		Data:     data,
		Format:   FormatFromFilename(name),
	}
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, entity.FormatText, FormatFromFilename("notes.txt"))
	assert.Equal(t, entity.FormatText, FormatFromFilename("NOTES.TXT"))
	assert.Equal(t, entity.FormatPDF, FormatFromFilename("course.pdf"))
	assert.Equal(t, entity.FormatWord, FormatFromFilename("course.DocX"))
	assert.Equal(t, entity.FormatUnknown, FormatFromFilename("course.md"))
	assert.Equal(t, entity.FormatUnknown, FormatFromFilename("course"))
}

func TestExtractPlainText(t *testing.T) {
	e := newTestExtractor()

	text := e.Extract(uploaded("mechanics.txt", []byte("Newton's second law: F = ma.")))
	assert.Equal(t, "Newton's second law: F = ma.", text)
}

func TestExtractUnknownExtensionTreatedAsText(t *testing.T) {
	e := newTestExtractor()

	text := e.Extract(uploaded("notes.org", []byte("photosynthesis")))
	assert.Equal(t, "photosynthesis", text)
}

func TestExtractInvalidUTF8Substituted(t *testing.T) {
	e := newTestExtractor()

	text := e.Extract(uploaded("raw.txt", []byte{'o', 'k', 0xff, 0xfe, '!'}))
	assert.True(t, strings.HasPrefix(text, "ok"))
	assert.True(t, strings.HasSuffix(text, "!"))
	assert.Contains(t, text, "�")
}

func TestExtractPDF(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, "Thermodynamics first principle", "", "", false)
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	e := newTestExtractor()
	text := e.Extract(uploaded("course.pdf", buf.Bytes()))

	assert.NotEqual(t, FailurePlaceholder, text)
	assert.Contains(t, text, "Thermodynamics")
}

func TestExtractCorruptPDFReturnsPlaceholder(t *testing.T) {
	e := newTestExtractor()

	text := e.Extract(uploaded("broken.pdf", []byte("this is not a pdf")))
	assert.Equal(t, FailurePlaceholder, text)
}

func TestExtractDOCX(t *testing.T) {
	doc := document.New()
	defer doc.Close()
	doc.AddParagraph().AddRun().AddText("First paragraph")
	doc.AddParagraph() // empty, must be skipped
	doc.AddParagraph().AddRun().AddText("Second paragraph")
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	e := newTestExtractor()
	text := e.Extract(uploaded("course.docx", buf.Bytes()))

	require.NotEqual(t, FailurePlaceholder, text)
	lines := strings.Split(text, "\n")
	assert.Equal(t, []string{"First paragraph", "Second paragraph"}, lines)
}

func TestExtractCorruptDOCXReturnsPlaceholder(t *testing.T) {
	e := newTestExtractor()

	text := e.Extract(uploaded("broken.docx", []byte{0x00, 0x01, 0x02}))
	assert.Equal(t, FailurePlaceholder, text)
}

func TestExtractIsIdempotent(t *testing.T) {
	e := newTestExtractor()
	doc := uploaded("mechanics.txt", []byte("F = ma"))

	first := e.Extract(doc)
	second := e.Extract(doc)
	assert.Equal(t, first, second)
}
