package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(outputDir string) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(outputDir))
	return r
}

func TestDownloadServesRenderedDocument(t *testing.T) {
	dir := t.TempDir()
	content := []byte("%PDF-1.4 revision sheet")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sheet.pdf"), content, 0o644))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/sheet.pdf", nil)
	newTestRouter(dir).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sheet.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestDownloadUnknownDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/missing.pdf", nil)
	newTestRouter(t.TempDir()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadRejectsDotfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-test"), 0o644))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/.env", nil)
	newTestRouter(dir).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-test")
}

func TestDownloadRejectsEncodedTraversal(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "documents")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("outside"), 0o644))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/documents/..%2fsecret.txt", nil)
	newTestRouter(dir).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "outside")
}

func TestDownloadRejectsPathStructureInName(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "documents")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("outside"), 0o644))

	h := NewHandler(dir)

	for _, name := range []string{"../secret.txt", "sub/secret.txt", ""} {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("name", name)

		req := httptest.NewRequest(http.MethodGet, "/documents/x", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rec := httptest.NewRecorder()
		h.Download(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "name %q", name)
		assert.NotContains(t, rec.Body.String(), "outside")
	}
}
