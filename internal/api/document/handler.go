// Package document serves rendered sheets for download.
package document

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/memomaster/backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	outputDir string
}

func NewHandler(outputDir string) *Handler {
	return &Handler{outputDir: outputDir}
}

// Download handles GET /documents/{name} - download a rendered sheet
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Download")

	name := chi.URLParam(r, "name")
	// File names are server-generated; anything with path structure is
	// not one of ours.
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		ctxzap.Info(ctx, "document not found", zap.String("name", name))
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

// RegisterRoutes registers document download routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/documents/{name}", h.Download)
}
