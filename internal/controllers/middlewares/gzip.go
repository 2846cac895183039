package middlewares

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// gzipWriter обертка над gin.ResponseWriter для сжатия ответов в формате gzip.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

// Write записывает сжатые данные.
func (g *gzipWriter) Write(data []byte) (int, error) {
	return g.writer.Write(data) //nolint:wrapcheck
}

// WriteString записывает сжатую строку.
func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.writer.Write([]byte(s)) //nolint:wrapcheck
}

// GzipMiddleware создает middleware для автоматического сжатия ответов
// и распаковки запросов в формате gzip.
//
// Для ответов:
//   - Проверяет поддержку gzip в заголовке Accept-Encoding
//   - При поддержке сжимает ответ и устанавливает заголовки Content-Encoding: gzip и Vary: Accept-Encoding
//
// Для запросов:
//   - Обрабатывает только POST, PUT, PATCH запросы с заголовком Content-Encoding: gzip
//   - Битое тело отклоняется с 400 {"error": "Invalid request body"}
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := readGzip(ctx); err != nil {
			_ = ctx.Error(err)
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if !strings.Contains(ctx.Request.Header.Get("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}
		writeGzip(ctx)
	}
}

// writeGzip подменяет writer ответа на сжимающий и выполняет оставшиеся обработчики.
func writeGzip(ctx *gin.Context) {
	ctx.Header("Content-Encoding", "gzip")
	ctx.Header("Vary", "Accept-Encoding")

	gzw := gzip.NewWriter(ctx.Writer)
	defer func() {
		if closeErr := gzw.Close(); closeErr != nil {
			_ = ctx.Error(errors.Wrap(closeErr, "close gzip writer"))
		}
	}()

	ctx.Writer = &gzipWriter{
		ResponseWriter: ctx.Writer,
		writer:         gzw,
	}
	ctx.Next()
}

// readGzip распаковывает сжатое тело запроса и подменяет его на распакованное.
func readGzip(ctx *gin.Context) error {
	if !slices.Contains([]string{http.MethodPost, http.MethodPut, http.MethodPatch}, ctx.Request.Method) {
		return nil
	}
	if !strings.Contains(ctx.Request.Header.Get("Content-Encoding"), "gzip") {
		return nil
	}

	gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
	if gzErr != nil {
		return errors.Wrap(gzErr, "read gzip")
	}
	defer gzReader.Close()

	bodyBytes, err := io.ReadAll(gzReader)
	if err != nil {
		return errors.Wrap(err, "read gzip")
	}

	ctx.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	return nil
}
