package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/db/memory"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
)

// ShortLinkRepo репозиторий коротких ссылок в памяти. Ключом хранилища служит shortUrl,
// уникальность alias проверяется перебором.
type ShortLinkRepo struct {
	s *db.MemoryStorage
	// mu сериализует многошаговые изменения (проверка alias + вставка, чтение + запись клика).
	mu sync.Mutex
}

// NewShortLinkRepo создает новый экземпляр репозитория.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *ShortLinkRepo: инициализированный репозиторий
func NewShortLinkRepo(store *db.MemoryStorage) *ShortLinkRepo {
	return &ShortLinkRepo{
		s: store,
	}
}

// Create сохраняет новую ссылку. Занятый shortUrl или alias дает repositories.ErrDuplicateKey.
func (r *ShortLinkRepo) Create(ctx context.Context, link *models.ShortLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if link.Alias != nil {
		taken, err := r.filterByAlias(ctx, *link.Alias)
		if err != nil {
			return fmt.Errorf("failed to check alias %s: %w", *link.Alias, convertErrorType(err))
		}
		if len(taken) > 0 {
			return fmt.Errorf("alias %s: %w", *link.Alias, repositories.ErrDuplicateKey)
		}
	}

	if err := memory.Set[models.ShortLink](ctx, link.ShortURL, link, r.s.MStorage); err != nil {
		return fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	return nil
}

// GetByShortURL получает ссылку по короткому коду.
func (r *ShortLinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	link, err := memory.Get[models.ShortLink](ctx, shortURL, r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by short url %s: %w",
			shortURL, convertErrorType(err),
		)
	}
	return link, nil
}

// GetByAlias получает ссылку по пользовательскому алиасу.
func (r *ShortLinkRepo) GetByAlias(ctx context.Context, alias string) (*models.ShortLink, error) {
	data, err := r.filterByAlias(ctx, alias)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by alias %s: %w", alias, convertErrorType(err))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("alias %s: %w", alias, repositories.ErrNotFound)
	}
	return &data[0], nil
}

// RegisterClick добавляет клик и увеличивает счетчик под одной блокировкой.
func (r *ShortLinkRepo) RegisterClick(ctx context.Context, shortURL string, click models.Click) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := memory.Get[models.ShortLink](ctx, shortURL, r.s.MStorage)
	if err != nil {
		return fmt.Errorf("failed to get record by short url %s: %w", shortURL, convertErrorType(err))
	}
	link.Clicks = append(link.Clicks, click)
	link.ClickCount++

	if err = memory.Set[models.ShortLink](ctx, shortURL, link, r.s.MStorage, memory.WithOverwrite()); err != nil {
		return fmt.Errorf("failed to save click for %s: %w", shortURL, convertErrorType(err))
	}
	return nil
}

// DeleteByShortURL удаляет ссылку и возвращает удаленную запись.
func (r *ShortLinkRepo) DeleteByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := memory.Delete[models.ShortLink](ctx, shortURL, r.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to delete record %s: %w", shortURL, convertErrorType(err))
	}
	return link, nil
}

func (r *ShortLinkRepo) filterByAlias(ctx context.Context, alias string) ([]models.ShortLink, error) {
	return memory.FilterAll[models.ShortLink](ctx, r.s.MStorage, func(val models.ShortLink) bool { //nolint:wrapcheck
		return val.Alias != nil && *val.Alias == alias
	})
}
