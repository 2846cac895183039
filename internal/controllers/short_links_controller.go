package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/fsdevblog/shortlink/internal/services"
)

type ShortLinkController struct {
	linkService ShortLinkStore
	baseURL     string
}

func NewShortLinkController(linkService ShortLinkStore, baseURL string) *ShortLinkController {
	return &ShortLinkController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

type shortenRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required,absurl"`
	Alias       string `json:"alias" binding:"omitempty,max=20,alias"`
	ExpiresAt   string `json:"expiresAt" binding:"omitempty,iso8601"`
}

type shortenResponse struct {
	ShortURL string `json:"shortUrl"`
}

type infoResponse struct {
	OriginalURL string     `json:"originalUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClickCount  int64      `json:"clickCount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

type analyticsResponse struct {
	ClickCount int64    `json:"clickCount"`
	RecentIPs  []string `json:"recentIps"`
}

// Shorten обрабатывает POST /shorten.
//
// Тело запроса: {"originalUrl": "...", "alias": "...", "expiresAt": "..."}, alias и expiresAt необязательны.
//
// Ответы:
//   - 200 {"shortUrl": "..."}
//   - 400 {"errors": [{"field": "...", "message": "..."}]} при ошибках валидации
//   - 400 {"error": "Alias already in use"}
//   - 500 {"error": "Server error"}
func (s *ShortLinkController) Shorten(ctx *gin.Context) {
	var req shortenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(err)
		if fieldErrs, ok := toFieldErrors(err); ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	params := services.CreateParams{
		OriginalURL: req.OriginalURL,
		Alias:       req.Alias,
	}
	if req.ExpiresAt != "" {
		// формат уже проверен тегом iso8601
		expiresAt, _ := parseISO8601(req.ExpiresAt)
		params.ExpiresAt = &expiresAt
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := s.linkService.Create(reqCtx, params)
	if err != nil {
		errorResponse(ctx, errors.Wrap(err, "create short link"))
		return
	}

	ctx.JSON(http.StatusOK, shortenResponse{ShortURL: getShortURL(ctx.Request, s.baseURL, link.ShortURL)})
}

// Redirect обрабатывает GET /:shortUrl. Регистрирует переход и перенаправляет на исходный адрес (302).
func (s *ShortLinkController) Redirect(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := s.linkService.Visit(reqCtx, ctx.Param("shortUrl"), ctx.ClientIP())
	if err != nil {
		errorResponse(ctx, errors.Wrap(err, "visit short link"))
		return
	}

	ctx.Redirect(http.StatusFound, link.OriginalURL)
}

// Info обрабатывает GET /info/:shortUrl.
func (s *ShortLinkController) Info(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := s.linkService.Info(reqCtx, ctx.Param("shortUrl"))
	if err != nil {
		errorResponse(ctx, errors.Wrap(err, "short link info"))
		return
	}

	ctx.JSON(http.StatusOK, infoResponse{
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		ClickCount:  link.ClickCount,
		ExpiresAt:   link.ExpiresAt,
	})
}

// Analytics обрабатывает GET /analytics/:shortUrl.
func (s *ShortLinkController) Analytics(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	stats, err := s.linkService.Analytics(reqCtx, ctx.Param("shortUrl"))
	if err != nil {
		errorResponse(ctx, errors.Wrap(err, "short link analytics"))
		return
	}

	ctx.JSON(http.StatusOK, analyticsResponse{
		ClickCount: stats.ClickCount,
		RecentIPs:  stats.RecentIPs,
	})
}

// Delete обрабатывает DELETE /delete/:shortUrl. Истекшие ссылки тоже удаляются.
func (s *ShortLinkController) Delete(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	if err := s.linkService.Delete(reqCtx, ctx.Param("shortUrl")); err != nil {
		errorResponse(ctx, errors.Wrap(err, "delete short link"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": msgLinkDeleted})
}
