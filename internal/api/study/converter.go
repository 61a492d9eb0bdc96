package study

import (
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/repository"
)

func toSessionResponse(sess *repository.StudySession) entity.SessionResponse {
	return entity.SessionResponse{
		ID:        sess.ID,
		Model:     sess.Model,
		Language:  sess.Language,
		Limit:     sess.Quota.Limit(),
		Used:      sess.Quota.Count(),
		Remaining: sess.Quota.Remaining(),
		Turns:     sess.TurnCount(),
	}
}

func toSheetResponse(result *entity.SheetResult, sess *repository.StudySession) entity.SheetResponse {
	resp := entity.SheetResponse{
		Text:      result.Text,
		Remaining: sess.Quota.Remaining(),
	}
	if result.Document != nil {
		resp.FileName = result.Document.FileName
		resp.DocumentURL = "/documents/" + result.Document.FileName
	}
	return resp
}
