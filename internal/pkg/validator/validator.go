package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
)

// Validator validates upload and session requests
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload validates one uploaded course document. Any extension
// is accepted: unrecognized formats are extracted as plain text.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil || fh.Filename == "" {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateResultFormat checks the requested output document format.
func (v *Validator) ValidateResultFormat(format string) (entity.ResultFormat, error) {
	switch entity.ResultFormat(strings.ToLower(format)) {
	case entity.ResultFormatPDF, "":
		return entity.ResultFormatPDF, nil
	case entity.ResultFormatDOCX:
		return entity.ResultFormatDOCX, nil
	case entity.ResultFormatMarkdown:
		return entity.ResultFormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: format %q (allowed: pdf, docx, md)", entity.ErrInvalidParameter, format)
	}
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
