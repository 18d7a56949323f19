package tests

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/projectkeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"
)

// Статус по умолчанию и размер
func TestResponseWriter_Write_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &middleware.ResponseWriter{ResponseWriter: rr}

	body := []byte("hello")
	n, err := w.Write(body)

	require.NoError(t, err)
	require.Equal(t, len(body), n)
	require.Equal(t, http.StatusOK, w.Status)
	require.Equal(t, len(body), w.Size)
	require.Equal(t, rr, w.Unwrap())
}

// вспомогательная функция
func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// проверка корректного прохода статуса и тела через мидлу и записи в лог
func TestLoggerMiddleware(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.Options{Dir: dir, FileName: "http.log", Format: "json"})

	handler := chimw.RequestID(middleware.LoggerMiddleware(log)(testHandler(http.StatusTeapot, "tea")))

	req := httptest.NewRequest(http.MethodGet, "/test?x=1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = log.Sync()

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "tea", rr.Body.String())

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	require.NoError(t, err)
	s := string(b)
	require.Contains(t, s, `"uri":"/test?x=1"`)
	require.Contains(t, s, `"status":418`)
	require.Contains(t, s, `"response_size":3`)
	require.Contains(t, s, `"request_id"`)
}

// Хендлер ничего не записал: в лог уходит 200
func TestLoggerMiddleware_EmptyResponse(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.Options{Dir: dir, FileName: "http.log", Format: "json"})

	handler := middleware.LoggerMiddleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_ = log.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	require.NoError(t, err)
	require.Contains(t, string(b), `"status":200`)
}
