package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/app"
	"github.com/fsdevblog/shortlink/internal/bmeta"
	"github.com/fsdevblog/shortlink/internal/config"
)

// Задаются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=... -X main.buildCommit=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	appConf := config.MustLoadConfig(os.Args[1:])

	meta := bmeta.New(buildVersion, buildDate, buildCommit)
	a := app.Must(app.New(*appConf, meta))

	bmeta.Print(a.Logger, meta)
	a.Logger.Info("Starting server",
		zap.String("address", appConf.ServerAddress),
		zap.String("storage", string(appConf.StorageType)),
		zap.String("baseUrl", appConf.BaseURL),
		zap.Int("maxAttempts", appConf.MaxAttempts),
	)
	if err := a.Run(); err != nil {
		a.Logger.Fatal("server stopped with error", zap.Error(err))
	}
}
