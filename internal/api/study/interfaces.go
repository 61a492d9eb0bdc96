package study

import (
	"context"

	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/repository"
)

type SheetUsecase interface {
	GenerateSheet(ctx context.Context, sess *repository.StudySession, doc entity.UploadedDocument, title string, format entity.ResultFormat) (*entity.SheetResult, error)
}

type ChatUsecase interface {
	Respond(ctx context.Context, sess *repository.StudySession, message string) (string, error)
}
