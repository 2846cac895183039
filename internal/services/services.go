package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/repositories/memstore"
	"github.com/fsdevblog/shortlink/internal/repositories/mongostore"
	"github.com/fsdevblog/shortlink/internal/repositories/sql"
	"github.com/fsdevblog/shortlink/internal/repositories/sqlite"
)

type ServiceType string

const (
	ServiceTypeMongo    ServiceType = "mongo"
	ServiceTypePostgres ServiceType = "postgres"
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	ShortLinkService *ShortLinkService
	PingService      *PingService
}

// FactoryParams параметры сборки сервисного слоя.
type FactoryParams struct {
	Conn        any
	ServiceType ServiceType
	Logger      *zap.Logger
	// SQLLogger логгер репозитория sqlite.
	SQLLogger *logrus.Logger
	// ServiceOptions дополнительные настройки ShortLinkService.
	ServiceOptions []func(*ShortLinkServiceOptions)
}

// Factory связывает подключение к хранилищу с соответствующим репозиторием.
func Factory(params FactoryParams) (*Services, error) {
	repo, pinger, err := buildRepository(params)
	if err != nil {
		return nil, err
	}

	opts := params.ServiceOptions
	if params.Logger != nil {
		opts = append([]func(*ShortLinkServiceOptions){func(o *ShortLinkServiceOptions) {
			o.Logger = params.Logger
		}}, opts...)
	}

	return &Services{
		ShortLinkService: NewShortLinkService(repo, opts...),
		PingService:      NewPingService(pinger),
	}, nil
}

func buildRepository(params FactoryParams) (ShortLinkRepository, Pinger, error) {
	switch params.ServiceType {
	case ServiceTypeMongo:
		conn, ok := params.Conn.(*db.MongoConnection)
		if !ok {
			return nil, nil, errors.New("invalid connection type. expected *db.MongoConnection")
		}
		return mongostore.NewShortLinkRepo(conn.Database.Collection(db.ShortLinksCollection)), conn, nil
	case ServiceTypePostgres:
		pool, ok := params.Conn.(*pgxpool.Pool)
		if !ok {
			return nil, nil, errors.New("invalid connection type. expected *pgxpool.Pool")
		}
		return sql.NewShortLinkRepo(pool), pool, nil
	case ServiceTypeSQLite:
		conn, ok := params.Conn.(*db.SQLiteConnection)
		if !ok {
			return nil, nil, errors.New("invalid connection type. expected *db.SQLiteConnection")
		}
		logger := params.SQLLogger
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		return sqlite.NewShortLinkRepo(conn.DB, logger), conn, nil
	case ServiceTypeInMemory:
		store, ok := params.Conn.(*db.MemoryStorage)
		if !ok {
			return nil, nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return memstore.NewShortLinkRepo(store), store, nil
	default:
		return nil, nil, fmt.Errorf("unknown service type: %s", params.ServiceType)
	}
}
