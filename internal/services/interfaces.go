package services

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// ShortLinkRepository описывает хранилище коротких ссылок.
// Все операции затрагивают ровно один документ.
type ShortLinkRepository interface {
	// Create сохраняет новую запись. Нарушение уникальности shortUrl или alias -
	// repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.ShortLink) error
	// GetByShortURL находит запись по короткому коду.
	GetByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error)
	// GetByAlias находит запись по пользовательскому алиасу.
	GetByAlias(ctx context.Context, alias string) (*models.ShortLink, error)
	// RegisterClick атомарно увеличивает clickCount и добавляет клик в журнал.
	RegisterClick(ctx context.Context, shortURL string, click models.Click) error
	// DeleteByShortURL удаляет запись и возвращает ее.
	DeleteByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
