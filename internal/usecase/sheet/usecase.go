// Package sheet orchestrates revision sheet generation: quota gating,
// text extraction, prompt construction, the generation call, and
// document rendering.
package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/pkg/extractor"
	"github.com/memomaster/backend/internal/pkg/prompt"
	"github.com/memomaster/backend/internal/pkg/renderer"
	"github.com/memomaster/backend/internal/repository"
	"go.uber.org/zap"
)

// SheetUsecase implements revision sheet generation
type SheetUsecase struct {
	extractor *extractor.Extractor
	prompts   *prompt.Builder
	renderer  *renderer.Renderer
	completer Completer
	cfg       config.SheetConfig
	logger    *zap.Logger
}

// NewUsecase creates a new sheet use case
func NewUsecase(
	ext *extractor.Extractor,
	prompts *prompt.Builder,
	rend *renderer.Renderer,
	completer Completer,
	cfg config.SheetConfig,
	logger *zap.Logger,
) *SheetUsecase {
	return &SheetUsecase{
		extractor: ext,
		prompts:   prompts,
		renderer:  rend,
		completer: completer,
		cfg:       cfg,
		logger:    logger,
	}
}

// GenerateSheet produces a revision sheet from an uploaded course
// document. A quota unit is spent exactly once per call that reaches
// the generation service, whether or not that call succeeds; rejected
// and invalid-input calls spend nothing.
//
// A rendering failure is reported wrapped in entity.ErrRender alongside
// a result that still carries the generated text.
func (uc *SheetUsecase) GenerateSheet(
	ctx context.Context,
	sess *repository.StudySession,
	doc entity.UploadedDocument,
	title string,
	format entity.ResultFormat,
) (*entity.SheetResult, error) {
	if sess.Quota.Remaining() == 0 {
		ctxzap.Info(ctx, "generation rejected by quota",
			zap.String("session_id", sess.ID),
			zap.Int("limit", sess.Quota.Limit()),
		)
		return nil, entity.ErrQuotaExceeded
	}

	content := uc.extractor.Extract(doc)

	messages, err := uc.prompts.BuildSheet(content, title, uc.language(sess))
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	// The admission and the generation attempt belong together: once
	// TryConsume admits, the unit is spent even if the call fails.
	if !sess.Quota.TryConsume() {
		return nil, entity.ErrQuotaExceeded
	}

	text, err := uc.completer.Complete(ctx, messages, entity.GenerationOptions{
		Model:       sess.Model,
		Temperature: uc.cfg.Temperature,
		MaxTokens:   uc.cfg.MaxTokens,
	})
	if err != nil {
		ctxzap.Error(ctx, "generation call failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("generate sheet: %w", err)
	}

	renderTitle := strings.TrimSpace(title)
	if renderTitle == "" {
		renderTitle = prompt.DefaultTitle
	}

	rendered, err := uc.renderer.Render(renderTitle, text, format)
	if err != nil {
		ctxzap.Error(ctx, "sheet rendering failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		// The generated text is still usable without the document.
		return &entity.SheetResult{Text: text}, err
	}

	ctxzap.Info(ctx, "sheet generated",
		zap.String("session_id", sess.ID),
		zap.String("document", rendered.FileName),
		zap.Int("quota_used", sess.Quota.Count()),
	)

	return &entity.SheetResult{
		Text:     text,
		Document: rendered,
	}, nil
}

func (uc *SheetUsecase) language(sess *repository.StudySession) string {
	if sess.Language != "" {
		return sess.Language
	}
	return uc.cfg.Language
}
