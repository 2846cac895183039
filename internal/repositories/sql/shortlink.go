package sql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsdevblog/shortlink/internal/models"
)

const selectColumns = `original_url, short_url, alias, created_at, expires_at, click_count, clicks`

// ShortLinkRepo репозиторий коротких ссылок в PostgreSQL.
type ShortLinkRepo struct {
	conn *pgxpool.Pool
}

func NewShortLinkRepo(conn *pgxpool.Pool) *ShortLinkRepo {
	return &ShortLinkRepo{conn: conn}
}

func (r *ShortLinkRepo) Create(ctx context.Context, link *models.ShortLink) error {
	clicks := link.Clicks
	if clicks == nil {
		clicks = []models.Click{}
	}
	_, err := r.conn.Exec(ctx,
		`INSERT INTO short_links (original_url, short_url, alias, created_at, expires_at, click_count, clicks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		link.OriginalURL, link.ShortURL, link.Alias, link.CreatedAt, link.ExpiresAt, link.ClickCount, clicks,
	)
	if err != nil {
		return fmt.Errorf("failed to create record %s: %w", link.ShortURL, convertErrType(err))
	}
	return nil
}

func (r *ShortLinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+selectColumns+` FROM short_links WHERE short_url = $1`, shortURL)
	link, err := scanShortLink(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by short url %s: %w", shortURL, convertErrType(err))
	}
	return link, nil
}

func (r *ShortLinkRepo) GetByAlias(ctx context.Context, alias string) (*models.ShortLink, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+selectColumns+` FROM short_links WHERE alias = $1`, alias)
	link, err := scanShortLink(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by alias %s: %w", alias, convertErrType(err))
	}
	return link, nil
}

// RegisterClick счетчик и журнал кликов меняются одним атомарным UPDATE.
func (r *ShortLinkRepo) RegisterClick(ctx context.Context, shortURL string, click models.Click) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE short_links
		SET click_count = click_count + 1,
		    clicks = clicks || jsonb_build_array(jsonb_build_object('timestamp', $2::timestamptz, 'ip', $3::text))
		WHERE short_url = $1`,
		shortURL, click.Timestamp, click.IP,
	)
	if err != nil {
		return fmt.Errorf("failed to register click for %s: %w", shortURL, convertErrType(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to register click for %s: %w", shortURL, convertErrType(pgx.ErrNoRows))
	}
	return nil
}

func (r *ShortLinkRepo) DeleteByShortURL(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	row := r.conn.QueryRow(ctx, `DELETE FROM short_links WHERE short_url = $1 RETURNING `+selectColumns, shortURL)
	link, err := scanShortLink(row)
	if err != nil {
		return nil, fmt.Errorf("failed to delete record %s: %w", shortURL, convertErrType(err))
	}
	return link, nil
}

func scanShortLink(row pgx.Row) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := row.Scan(
		&link.OriginalURL,
		&link.ShortURL,
		&link.Alias,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.ClickCount,
		&link.Clicks,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &link, nil
}
