package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
)

// RouterParams зависимости роутера.
type RouterParams struct {
	ShortLinkService ShortLinkStore
	PingService      ConnectionChecker
	AppConf          config.Config
	Logger           *zap.Logger
}

// SetupRouter создает gin роутер со всеми маршрутами сервиса.
//
// Маршруты:
//   - POST /shorten
//   - GET /:shortUrl
//   - GET /info/:shortUrl
//   - GET /analytics/:shortUrl
//   - DELETE /delete/:shortUrl
//   - GET /ping
//   - GET /metrics
//
// Если задан AppConf.StaticDir, файлы из него отдаются раньше маршрутов.
func SetupRouter(params RouterParams) (*gin.Engine, error) {
	registerValidators()

	r := gin.New()
	if err := r.SetTrustedProxies(params.AppConf.TrustedProxies); err != nil {
		return nil, errors.Wrap(err, "set trusted proxies")
	}

	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware(params.AppConf.CORSAllowOrigins))
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.MetricsMiddleware())

	pingController := NewPingController(params.PingService)
	r.GET("/ping", pingController.Ping)
	// promhttp сам сжимает ответ, поэтому маршрут регистрируется до gzip middleware.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middlewares.GzipMiddleware())
	if params.AppConf.StaticDir != "" {
		r.Use(middlewares.StaticMiddleware(params.AppConf.StaticDir))
	}
	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": msgNotFoundRoute})
	})

	shortLinkController := NewShortLinkController(params.ShortLinkService, params.AppConf.BaseURL)
	r.POST("/shorten", shortLinkController.Shorten)
	r.GET("/info/:shortUrl", shortLinkController.Info)
	r.GET("/analytics/:shortUrl", shortLinkController.Analytics)
	r.DELETE("/delete/:shortUrl", shortLinkController.Delete)
	r.GET("/:shortUrl", shortLinkController.Redirect)

	return r, nil
}

// MustSetupRouter аналогичен SetupRouter, но паникует при ошибке.
func MustSetupRouter(params RouterParams) *gin.Engine {
	r, err := SetupRouter(params)
	if err != nil {
		panic(err)
	}
	return r
}
