package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/fsdevblog/shortlink/internal/services"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// errorResponse отвечает статусом по типу ошибки сервиса. Детали ошибки уходят только в лог.
func errorResponse(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, services.ErrExpired):
		ctx.JSON(http.StatusGone, gin.H{"error": msgExpired})
	case errors.Is(err, services.ErrConflict):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msgAliasInUse})
	case errors.Is(err, services.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "alias", Message: validationMessages["alias"]}}})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
	}
}

// getShortURL создает полную короткую ссылку. Без базового адреса берутся схема и хост запроса.
func getShortURL(r *http.Request, baseURL string, shortURL string) string {
	if baseURL != "" {
		return fmt.Sprintf("%s/%s", baseURL, shortURL)
	}
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, r.Host, shortURL)
}
