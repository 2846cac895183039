package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/metrics"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
)

// DefaultMaxAttempts сколько раз генерируется новый код при коллизиях.
const DefaultMaxAttempts = 10

// ShortLinkServiceOptions настройки сервиса.
type ShortLinkServiceOptions struct {
	// Generator генератор кандидатов на короткий код.
	Generator CodeGenerator
	// MaxAttempts ограничение числа кандидатов. Значение <= 0 означает перебор без ограничений.
	MaxAttempts int
	// Clock источник текущего времени.
	Clock  func() time.Time
	Logger *zap.Logger
}

// CreateParams параметры создания короткой ссылки.
type CreateParams struct {
	OriginalURL string
	Alias       string // Пустая строка - алиас не задан
	ExpiresAt   *time.Time
}

// Analytics статистика переходов по ссылке.
type Analytics struct {
	ClickCount int64
	RecentIPs  []string
}

// ShortLinkService выдает короткие коды, проверяет срок жизни ссылок и ведет статистику переходов.
type ShortLinkService struct {
	repo        ShortLinkRepository
	generator   CodeGenerator
	maxAttempts int
	now         func() time.Time
	logger      *zap.Logger
}

// NewShortLinkService создает сервис поверх переданного хранилища.
//
// Параметры:
//   - repo: хранилище коротких ссылок
//   - opts: функции настройки сервиса
//
// Возвращает:
//   - *ShortLinkService: сервис
func NewShortLinkService(repo ShortLinkRepository, opts ...func(*ShortLinkServiceOptions)) *ShortLinkService {
	options := ShortLinkServiceOptions{
		Generator:   GenerateHexCode,
		MaxAttempts: DefaultMaxAttempts,
		Clock:       time.Now,
		Logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &ShortLinkService{
		repo:        repo,
		generator:   options.Generator,
		maxAttempts: options.MaxAttempts,
		now:         options.Clock,
		logger:      options.Logger.With(zap.String("module", "services/shortlink")),
	}
}

// Create создает короткую ссылку.
//
// Ошибки:
//   - ErrValidation: алиас длиннее models.AliasMaxLength
//   - ErrConflict: алиас уже используется другой записью
//   - ErrAllocationExhausted: не удалось подобрать свободный код
//   - ErrUnknown: ошибка хранилища, в т.ч. проигранная гонка за уникальный индекс
func (s *ShortLinkService) Create(ctx context.Context, params CreateParams) (*models.ShortLink, error) {
	if utf8.RuneCountInString(params.Alias) > models.AliasMaxLength {
		return nil, errors.Wrapf(ErrValidation, "alias must be at most %d characters", models.AliasMaxLength)
	}

	if params.Alias != "" {
		_, err := s.repo.GetByAlias(ctx, params.Alias)
		if err == nil {
			return nil, errors.Wrapf(ErrConflict, "alias %s", params.Alias)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error("failed to check alias", zap.String("alias", params.Alias), zap.Error(err))
			return nil, errors.Wrap(ErrUnknown, err.Error())
		}
	}

	shortURL, allocErr := s.allocate(ctx, params.Alias)
	if allocErr != nil {
		return nil, allocErr
	}

	link := &models.ShortLink{
		OriginalURL: params.OriginalURL,
		ShortURL:    shortURL,
		CreatedAt:   s.now().UTC(),
		ExpiresAt:   params.ExpiresAt,
		ClickCount:  0,
		Clicks:      []models.Click{},
	}
	if params.Alias != "" {
		alias := params.Alias
		link.Alias = &alias
	}

	if err := s.repo.Create(ctx, link); err != nil {
		s.logger.Error("failed to create short link", zap.String("shortUrl", shortURL), zap.Error(err))
		return nil, errors.Wrap(ErrUnknown, err.Error())
	}

	metrics.ShortLinksCreated.Inc()
	return link, nil
}

// allocate подбирает свободный shortUrl. Алиас используется как есть, без повторной генерации.
func (s *ShortLinkService) allocate(ctx context.Context, alias string) (string, error) {
	for attempt := 1; ; attempt++ {
		if s.maxAttempts > 0 && attempt > s.maxAttempts {
			return "", errors.Wrapf(ErrAllocationExhausted, "after %d attempts", s.maxAttempts)
		}

		candidate := alias
		if candidate == "" {
			code, genErr := s.generator()
			if genErr != nil {
				return "", errors.Wrap(ErrUnknown, genErr.Error())
			}
			candidate = code
		}

		_, err := s.repo.GetByShortURL(ctx, candidate)
		if errors.Is(err, repositories.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			s.logger.Error("failed to check short url", zap.String("shortUrl", candidate), zap.Error(err))
			return "", errors.Wrap(ErrUnknown, err.Error())
		}

		if alias != "" {
			// Алиас совпал с чужим сгенерированным кодом, повтор дал бы тот же результат.
			return "", errors.Wrapf(ErrConflict, "alias %s is used as short url", alias)
		}
		metrics.AllocationCollisions.Inc()
		s.logger.Debug("short url collision", zap.String("shortUrl", candidate), zap.Int("attempt", attempt))
	}
}

// Visit регистрирует переход по ссылке и возвращает запись для редиректа.
// Истекшая ссылка не изменяется.
func (s *ShortLinkService) Visit(ctx context.Context, shortURL string, ip string) (*models.ShortLink, error) {
	link, err := s.getActive(ctx, shortURL)
	if err != nil {
		metrics.Redirects.WithLabelValues(redirectResult(err)).Inc()
		return nil, err
	}

	click := models.Click{Timestamp: s.now().UTC(), IP: ip}
	if clickErr := s.repo.RegisterClick(ctx, shortURL, click); clickErr != nil {
		metrics.Redirects.WithLabelValues("error").Inc()
		// Запись могли удалить между чтением и обновлением.
		if errors.Is(clickErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short url %s", shortURL)
		}
		s.logger.Error("failed to register click", zap.String("shortUrl", shortURL), zap.Error(clickErr))
		return nil, errors.Wrap(ErrUnknown, clickErr.Error())
	}

	link.Clicks = append(link.Clicks, click)
	link.ClickCount++
	metrics.Redirects.WithLabelValues("ok").Inc()
	return link, nil
}

// Info возвращает запись без изменения статистики.
func (s *ShortLinkService) Info(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	return s.getActive(ctx, shortURL)
}

// Analytics возвращает число переходов и IP адреса последних models.RecentIPsLimit переходов.
func (s *ShortLinkService) Analytics(ctx context.Context, shortURL string) (*Analytics, error) {
	link, err := s.getActive(ctx, shortURL)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		ClickCount: link.ClickCount,
		RecentIPs:  link.RecentIPs(models.RecentIPsLimit),
	}, nil
}

// Delete удаляет ссылку независимо от срока ее жизни.
func (s *ShortLinkService) Delete(ctx context.Context, shortURL string) error {
	if _, err := s.repo.DeleteByShortURL(ctx, shortURL); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "short url %s", shortURL)
		}
		s.logger.Error("failed to delete short link", zap.String("shortUrl", shortURL), zap.Error(err))
		return errors.Wrap(ErrUnknown, err.Error())
	}
	return nil
}

// getActive находит запись и отсекает истекшие.
func (s *ShortLinkService) getActive(ctx context.Context, shortURL string) (*models.ShortLink, error) {
	link, err := s.repo.GetByShortURL(ctx, shortURL)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short url %s", shortURL)
		}
		s.logger.Error("failed to get short link", zap.String("shortUrl", shortURL), zap.Error(err))
		return nil, errors.Wrap(ErrUnknown, err.Error())
	}
	if link.IsExpired(s.now()) {
		return nil, errors.Wrapf(ErrExpired, "short url %s expired at %s", shortURL, link.ExpiresAt)
	}
	return link, nil
}

func redirectResult(err error) string {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, ErrExpired):
		return "expired"
	default:
		return "error"
	}
}
