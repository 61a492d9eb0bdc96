package sheet

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/pkg/extractor"
	"github.com/memomaster/backend/internal/pkg/prompt"
	"github.com/memomaster/backend/internal/pkg/renderer"
	"github.com/memomaster/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompleter struct {
	calls        int
	reply        string
	err          error
	lastMessages []entity.ChatMessage
	lastOpts     entity.GenerationOptions
}

func (s *stubCompleter) Complete(_ context.Context, messages []entity.ChatMessage, opts entity.GenerationOptions) (string, error) {
	s.calls++
	s.lastMessages = messages
	s.lastOpts = opts
	return s.reply, s.err
}

func newTestUsecase(t *testing.T, completer Completer) *SheetUsecase {
	t.Helper()
	cfg := config.SheetConfig{
		FreeLimit:       5,
		MaxContentRunes: 24000,
		Language:        "English",
		Temperature:     0.4,
		OutputDir:       t.TempDir(),
	}
	return NewUsecase(
		extractor.New(zap.NewNop()),
		prompt.NewBuilder(cfg.MaxContentRunes),
		renderer.New(cfg.OutputDir, zap.NewNop()),
		completer,
		cfg,
		zap.NewNop(),
	)
}

func newSession(limit int) *repository.StudySession {
	store := repository.NewSessionStore(config.SessionConfig{
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	}, zap.NewNop())
	return store.Create(entity.Session{ID: "test-session", Limit: limit})
}

func txtDocument(content string) entity.UploadedDocument {
	return entity.UploadedDocument{
		Filename: "course.txt",
		Data:     []byte(content),
		Format:   entity.FormatText,
	}
}

func TestGenerateSheetEndToEnd(t *testing.T) {
	completer := &stubCompleter{reply: "# Mechanics\n- F=ma"}
	uc := newTestUsecase(t, completer)
	sess := newSession(5)

	result, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("Newton's second law: F = ma."), "Mechanics", entity.ResultFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "# Mechanics\n- F=ma", result.Text)
	require.NotNil(t, result.Document)

	info, err := os.Stat(result.Document.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// One system message fixing the persona, one user message with
	// title and content.
	require.Len(t, completer.lastMessages, 2)
	assert.Equal(t, entity.RoleSystem, completer.lastMessages[0].Role)
	assert.Contains(t, completer.lastMessages[1].Content, "Mechanics")
	assert.Contains(t, completer.lastMessages[1].Content, "Newton's second law: F = ma.")

	assert.Equal(t, 1, sess.Quota.Count())
}

func TestGenerateSheetEmptyContentDoesNotConsumeQuota(t *testing.T) {
	completer := &stubCompleter{reply: "unused"}
	uc := newTestUsecase(t, completer)
	sess := newSession(5)

	_, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("   \n\t  "), "Mechanics", entity.ResultFormatPDF)

	assert.ErrorIs(t, err, entity.ErrEmptyContent)
	assert.Equal(t, 0, sess.Quota.Count())
	assert.Equal(t, 0, completer.calls)
}

func TestGenerateSheetQuotaExhausted(t *testing.T) {
	completer := &stubCompleter{reply: "sheet"}
	uc := newTestUsecase(t, completer)
	sess := newSession(1)

	_, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "T", entity.ResultFormatMarkdown)
	require.NoError(t, err)

	_, err = uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "T", entity.ResultFormatMarkdown)
	assert.ErrorIs(t, err, entity.ErrQuotaExceeded)

	// The rejected attempt never reached the generation service.
	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, 1, sess.Quota.Count())
}

func TestGenerateSheetServiceErrorConsumesQuota(t *testing.T) {
	completer := &stubCompleter{err: errors.New("service unavailable")}
	uc := newTestUsecase(t, completer)
	sess := newSession(5)

	_, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "T", entity.ResultFormatPDF)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service unavailable")
	assert.Equal(t, 1, sess.Quota.Count())
}

func TestGenerateSheetRenderFailureStillReturnsText(t *testing.T) {
	completer := &stubCompleter{reply: "the sheet text"}
	uc := newTestUsecase(t, completer)
	sess := newSession(5)

	result, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "T", entity.ResultFormat("rtf"))

	require.ErrorIs(t, err, entity.ErrRender)
	require.NotNil(t, result)
	assert.Equal(t, "the sheet text", result.Text)
	assert.Nil(t, result.Document)
	assert.Equal(t, 1, sess.Quota.Count())
}

func TestGenerateSheetDefaultTitle(t *testing.T) {
	completer := &stubCompleter{reply: "sheet"}
	uc := newTestUsecase(t, completer)
	sess := newSession(5)

	_, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "", entity.ResultFormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, completer.lastMessages[1].Content, prompt.DefaultTitle)
}

func TestGenerateSheetUsesSessionModel(t *testing.T) {
	completer := &stubCompleter{reply: "sheet"}
	uc := newTestUsecase(t, completer)

	store := repository.NewSessionStore(config.SessionConfig{
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	}, zap.NewNop())
	sess := store.Create(entity.Session{ID: "s", Limit: 5, Model: "gpt-4o"})

	_, err := uc.GenerateSheet(context.Background(), sess,
		txtDocument("content"), "T", entity.ResultFormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", completer.lastOpts.Model)
	assert.InDelta(t, 0.4, completer.lastOpts.Temperature, 0.001)
}
