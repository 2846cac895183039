package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/shortlink/internal/models"
)

type ShortLinkRepo struct {
	*BaseRepository
	logger *logrus.Entry
}

func NewShortLinkRepo(db *gorm.DB, logger *logrus.Logger) *ShortLinkRepo {
	return &ShortLinkRepo{
		BaseRepository: &BaseRepository{db: db},
		logger:         logger.WithField("module", "repository/sqlite/shortlink"),
	}
}

func (r *ShortLinkRepo) Create(ctx context.Context, link *models.ShortLink) error {
	if err := r.GetDB().WithContext(ctx).Create(link).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.WithError(err).Errorf("failed to create record %s", link.ShortURL)
		}
		return fmt.Errorf("failed to create record %s: %w", link.ShortURL, convertErrorType(err))
	}
	return nil
}

func (r *ShortLinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	return r.first(ctx, "short_url = ?", shortURL)
}

func (r *ShortLinkRepo) GetByAlias(ctx context.Context, alias string) (*models.ShortLink, error) {
	return r.first(ctx, "alias = ?", alias)
}

// RegisterClick чтение и запись журнала кликов выполняются в одной транзакции.
func (r *ShortLinkRepo) RegisterClick(ctx context.Context, shortURL string, click models.Click) error {
	err := r.ExecuteTransaction(func(tx *gorm.DB) error {
		var link models.ShortLink
		if err := tx.WithContext(ctx).Where("short_url = ?", shortURL).First(&link).Error; err != nil {
			return err //nolint:wrapcheck
		}
		link.Clicks = append(link.Clicks, click)
		link.ClickCount++
		return tx.WithContext(ctx).Save(&link).Error //nolint:wrapcheck
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).Errorf("failed to register click for %s", shortURL)
		}
		return fmt.Errorf("failed to register click for %s: %w", shortURL, convertErrorType(err))
	}
	return nil
}

func (r *ShortLinkRepo) DeleteByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.ExecuteTransaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("short_url = ?", shortURL).First(&link).Error; err != nil {
			return err //nolint:wrapcheck
		}
		return tx.WithContext(ctx).Delete(&link).Error //nolint:wrapcheck
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete record %s: %w", shortURL, convertErrorType(err))
	}
	return &link, nil
}

func (r *ShortLinkRepo) first(ctx context.Context, query string, arg string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := r.GetDB().WithContext(ctx).Where(query, arg).First(&link).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WithError(err).Errorf("failed to get record where %s %s", query, arg)
		}
		return nil, fmt.Errorf("failed to get record where %s %s: %w", query, arg, convertErrorType(err))
	}
	return &link, nil
}

