// Package renderer turns generated sheet text into downloadable
// documents. Paragraph segmentation is blank-line-delimited: one or
// more empty lines terminate a paragraph, single newlines stay inside
// the same block.
package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/memomaster/backend/internal/entity"
	"go.uber.org/zap"
)

// Formatter renders sheet text into one output document type.
type Formatter interface {
	Format(title, text string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.ResultFormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.ResultFormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.ResultFormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// Renderer formats sheets and writes them under outputDir with a
// unique name per invocation. Writes are all-or-nothing: the document
// is staged in a temporary file and renamed into place, so a failed
// write never leaves a partial file at the final path.
type Renderer struct {
	outputDir string
	factory   *Factory
	logger    *zap.Logger
}

func New(outputDir string, logger *zap.Logger) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		factory:   NewFactory(),
		logger:    logger,
	}
}

// Render produces a document of the requested format from the sheet
// text. Any failure is reported wrapped in entity.ErrRender.
func (r *Renderer) Render(title, text string, format entity.ResultFormat) (*entity.RenderedDocument, error) {
	formatter, err := r.factory.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrRender, err)
	}

	data, err := formatter.Format(title, text)
	if err != nil {
		return nil, fmt.Errorf("%w: format document: %v", entity.ErrRender, err)
	}

	fileName := uuid.New().String() + formatter.FileExtension()
	path := filepath.Join(r.outputDir, fileName)
	if err := writeAtomic(r.outputDir, path, data); err != nil {
		return nil, fmt.Errorf("%w: write document: %v", entity.ErrRender, err)
	}

	r.logger.Info("document rendered",
		zap.String("file", fileName),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	return &entity.RenderedDocument{
		FileName:    fileName,
		Path:        path,
		ContentType: formatter.ContentType(),
		Size:        int64(len(data)),
	}, nil
}

func writeAtomic(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sheet-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// splitParagraphs segments text on blank lines. Lines inside one
// paragraph are rejoined with single newlines; leading and trailing
// whitespace on each paragraph is dropped.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()

	return paragraphs
}
