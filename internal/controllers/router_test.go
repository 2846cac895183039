package controllers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/services"
)

// newInMemoryRouter собирает роутер поверх настоящего сервиса и хранилища в памяти.
func newInMemoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newInMemoryRouterWithConf(t, config.Config{BaseURL: "http://sho.rt"})
}

func newInMemoryRouterWithConf(t *testing.T, conf config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := services.Factory(services.FactoryParams{
		Conn:        db.NewMemStorage(),
		ServiceType: services.ServiceTypeInMemory,
	})
	require.NoError(t, err)

	return MustSetupRouter(RouterParams{
		ShortLinkService: svc.ShortLinkService,
		PingService:      svc.PingService,
		AppConf:          conf,
	})
}

func postShorten(t *testing.T, router http.Handler, body string) (int, map[string]any) {
	t.Helper()
	res := doRequest(t, router, requestFields{
		Method:      http.MethodPost,
		URL:         "/shorten",
		Body:        strings.NewReader(body),
		ContentType: "application/json",
	})
	defer res.Body.Close()

	var decoded map[string]any
	raw, _ := io.ReadAll(res.Body)
	require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	return res.StatusCode, decoded
}

func visit(router http.Handler, path string, ip string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.RemoteAddr = ip + ":5555"
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_ShortLinkLifecycle(t *testing.T) {
	router := newInMemoryRouter(t)
	originalURL := "https://example.com/" + gofakeit.LetterN(12)

	status, body := postShorten(t, router, fmt.Sprintf(`{"originalUrl":%q}`, originalURL))
	require.Equal(t, http.StatusOK, status)
	shortURL, ok := body["shortUrl"].(string)
	require.True(t, ok)
	require.Regexp(t, `^http://sho\.rt/[0-9a-f]{6}$`, shortURL)
	code := strings.TrimPrefix(shortURL, "http://sho.rt/")

	ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5", "10.0.0.6"}
	for _, ip := range ips {
		rec := visit(router, "/"+code, ip)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, originalURL, rec.Header().Get("Location"))
	}

	rec := visit(router, "/info/"+code, "10.0.0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	var info infoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, originalURL, info.OriginalURL)
	assert.Equal(t, int64(len(ips)), info.ClickCount)
	assert.Nil(t, info.ExpiresAt)

	rec = visit(router, "/analytics/"+code, "10.0.0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"clickCount":6,"recentIps":["10.0.0.2","10.0.0.3","10.0.0.4","10.0.0.5","10.0.0.6"]}`,
		rec.Body.String())

	request := httptest.NewRequest(http.MethodDelete, "/delete/"+code, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, http.StatusNotFound, visit(router, "/"+code, "10.0.0.1").Code)
	assert.Equal(t, http.StatusNotFound, visit(router, "/info/"+code, "10.0.0.1").Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/delete/"+code, nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRouter_Alias(t *testing.T) {
	router := newInMemoryRouter(t)

	status, body := postShorten(t, router, `{"originalUrl":"https://example.com/a","alias":"my-link"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "http://sho.rt/my-link", body["shortUrl"])

	status, body = postShorten(t, router, `{"originalUrl":"https://example.com/b","alias":"my-link"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Alias already in use", body["error"])

	rec := visit(router, "/my-link", "10.0.0.1")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/a", rec.Header().Get("Location"))
}

func TestRouter_ExpiredLink(t *testing.T) {
	router := newInMemoryRouter(t)

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	status, _ := postShorten(t, router,
		fmt.Sprintf(`{"originalUrl":"https://example.com","alias":"gone","expiresAt":%q}`, past))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, http.StatusGone, visit(router, "/gone", "10.0.0.1").Code)
	assert.Equal(t, http.StatusGone, visit(router, "/info/gone", "10.0.0.1").Code)
	assert.Equal(t, http.StatusGone, visit(router, "/analytics/gone", "10.0.0.1").Code)

	// удаление работает и для истекших ссылок
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/delete/gone", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, http.StatusNotFound, visit(router, "/gone", "10.0.0.1").Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newInMemoryRouter(t)

	rec := visit(router, "/a/b/c", "10.0.0.1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = visit(router, "/ping", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MultibyteAlias(t *testing.T) {
	router := newInMemoryRouter(t)
	alias := strings.Repeat("é", 11)

	status, body := postShorten(t, router,
		fmt.Sprintf(`{"originalUrl":"https://example.com/fr","alias":%q}`, alias))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "http://sho.rt/"+alias, body["shortUrl"])

	rec := visit(router, "/"+url.PathEscape(alias), "10.0.0.1")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/fr", rec.Header().Get("Location"))

	status, body = postShorten(t, router,
		fmt.Sprintf(`{"originalUrl":"https://example.com","alias":%q}`, strings.Repeat("é", 21)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "errors")
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newInMemoryRouter(t)

	request := httptest.NewRequest(http.MethodOptions, "/shorten", nil)
	request.Header.Set("Origin", "http://client.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<form></form>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o600))

	router := newInMemoryRouterWithConf(t, config.Config{BaseURL: "http://sho.rt", StaticDir: dir})

	rec := visit(router, "/", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<form></form>", rec.Body.String())

	// файл перекрывает маршрут короткого кода
	rec = visit(router, "/style.css", "10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	status, body := postShorten(t, router, `{"originalUrl":"https://example.com","alias":"promo"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "http://sho.rt/promo", body["shortUrl"])

	rec = visit(router, "/promo", "10.0.0.1")
	assert.Equal(t, http.StatusFound, rec.Code)
}
