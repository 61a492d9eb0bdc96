// Package extractor turns uploaded course documents into plain text.
// Extraction never fails past this boundary: unreadable or corrupt
// documents yield an explanatory placeholder string that downstream
// code can show to the user as-is.
package extractor

import (
	"path/filepath"
	"strings"

	"github.com/memomaster/backend/internal/entity"
	"go.uber.org/zap"
)

// FailurePlaceholder is returned when a document cannot be read.
const FailurePlaceholder = "Unable to read the document (try a plain .txt file)."

type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// FormatFromFilename infers the document format from the filename
// extension, case-insensitively. Anything unrecognized is treated as
// plain text by Extract.
func FormatFromFilename(filename string) entity.DocumentFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return entity.FormatText
	case ".pdf":
		return entity.FormatPDF
	case ".docx":
		return entity.FormatWord
	default:
		return entity.FormatUnknown
	}
}

// Extract returns the textual content of doc. A failed extraction
// returns FailurePlaceholder, never an error.
func (e *Extractor) Extract(doc entity.UploadedDocument) (text string) {
	// The PDF library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("extraction panic recovered",
				zap.String("filename", doc.Filename),
				zap.Any("panic", r),
			)
			text = FailurePlaceholder
		}
	}()

	switch doc.Format {
	case entity.FormatPDF:
		extracted, err := extractPDF(doc.Data)
		if err != nil {
			e.logger.Warn("pdf extraction failed",
				zap.String("filename", doc.Filename),
				zap.Error(err),
			)
			return FailurePlaceholder
		}
		return extracted
	case entity.FormatWord:
		extracted, err := extractDOCX(doc.Data)
		if err != nil {
			e.logger.Warn("docx extraction failed",
				zap.String("filename", doc.Filename),
				zap.Error(err),
			)
			return FailurePlaceholder
		}
		return extracted
	default:
		return extractText(doc.Data)
	}
}

// extractText decodes bytes as UTF-8, substituting the replacement
// character for invalid sequences. It cannot fail.
func extractText(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
