package study

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/entity"
	"github.com/memomaster/backend/internal/pkg/extractor"
	"github.com/memomaster/backend/internal/pkg/logger"
	"github.com/memomaster/backend/internal/pkg/validator"
	"github.com/memomaster/backend/internal/repository"
	"go.uber.org/zap"
)

type Handler struct {
	sessions  *repository.SessionStore
	sheets    SheetUsecase
	chats     ChatUsecase
	validator *validator.Validator
	sheetCfg  config.SheetConfig
	openAICfg config.OpenAIConfig
	uploadCfg config.FileUploadConfig
}

func NewHandler(
	sessions *repository.SessionStore,
	sheets SheetUsecase,
	chats ChatUsecase,
	validator *validator.Validator,
	sheetCfg config.SheetConfig,
	openAICfg config.OpenAIConfig,
	uploadCfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		sessions:  sessions,
		sheets:    sheets,
		chats:     chats,
		validator: validator,
		sheetCfg:  sheetCfg,
		openAICfg: openAICfg,
		uploadCfg: uploadCfg,
	}
}

// CreateSession handles POST /study-session - start a new study session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	var req entity.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	model := req.Model
	if model == "" {
		model = h.openAICfg.Model
	}
	language := req.Language
	if language == "" {
		language = h.sheetCfg.Language
	}

	sess := h.sessions.Create(entity.Session{
		ID:        uuid.New().String(),
		Model:     model,
		Language:  language,
		Limit:     h.sheetCfg.FreeLimit,
		CreatedAt: time.Now(),
	})

	ctxzap.Info(ctx, "study session created", zap.String("session_id", sess.ID))

	h.respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// GetSession handles GET /study-session/{id} - session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")

	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// GenerateSheet handles POST /study-session/{id}/sheet - upload a course
// document and generate a revision sheet
func (h *Handler) GenerateSheet(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateSheet")

	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.WithSession(ctx, sess.ID)

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "missing file field", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	format, err := h.validator.ValidateResultFormat(r.FormValue("format"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.uploadCfg.MaxFileSize+1))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "read uploaded file", err)
		return
	}
	if int64(len(data)) > h.uploadCfg.MaxFileSize {
		h.handleUsecaseError(ctx, w, entity.ErrFileTooLarge)
		return
	}

	doc := entity.UploadedDocument{
		Filename: validator.SanitizeFilename(header.Filename),
		Data:     data,
		Format:   extractor.FormatFromFilename(header.Filename),
	}

	result, err := h.sheets.GenerateSheet(ctx, sess, doc, r.FormValue("title"), format)
	if err != nil && !errors.Is(err, entity.ErrRender) {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	if err != nil {
		// Rendering failed but the sheet text is still worth returning.
		ctxzap.Warn(ctx, "sheet rendered without document", zap.Error(err))
	}

	h.respondJSON(w, http.StatusOK, toSheetResponse(result, sess))
}

// Chat handles POST /study-session/{id}/chat - one tutoring exchange
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	sess, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.WithSession(ctx, sess.ID)

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reply, err := h.chats.Respond(ctx, sess, req.Message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.ChatResponse{
		Reply: reply,
		Turns: sess.TurnCount(),
	})
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrQuotaExceeded):
		h.respondError(ctx, w, http.StatusTooManyRequests, "free generation limit reached for this session", err)
	case errors.Is(err, entity.ErrEmptyContent):
		h.respondError(ctx, w, http.StatusBadRequest, "the document contains no extractable text", err)
	case errors.Is(err, entity.ErrEmptyMessage):
		h.respondError(ctx, w, http.StatusBadRequest, "message must not be empty", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request", err)
	default:
		h.respondError(ctx, w, http.StatusBadGateway, "generation service failed", err)
	}
}
