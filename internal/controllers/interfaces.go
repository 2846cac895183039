package controllers

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

type ShortLinkStore interface {
	// Create создает короткую ссылку. Алиас и срок жизни необязательны.
	Create(ctx context.Context, params services.CreateParams) (*models.ShortLink, error)
	// Visit регистрирует переход и возвращает запись для редиректа.
	Visit(ctx context.Context, shortURL string, ip string) (*models.ShortLink, error)
	Info(ctx context.Context, shortURL string) (*models.ShortLink, error)
	Analytics(ctx context.Context, shortURL string) (*services.Analytics, error)
	Delete(ctx context.Context, shortURL string) error
}
