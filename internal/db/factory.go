package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type StorageType string

const (
	StorageTypeMongo    StorageType = "mongo"
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType  StorageType
	MongoURI     string
	PostgresDSN  string
	SqliteDBPath string
	// Logger используется драйвером gorm.
	Logger *logrus.Logger
}

// NewConnectionFactory открывает подключение к хранилищу выбранного типа.
// Тип возвращаемого значения зависит от StorageType:
// *MongoConnection, *pgxpool.Pool, *SQLiteConnection или *MemoryStorage.
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypeMongo:
		if config.MongoURI == "" {
			return nil, errors.New("mongo uri is empty")
		}
		return NewMongoConnection(ctx, config.MongoURI)
	case StorageTypePostgres:
		if config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		pool, err := NewPostgresConnection(ctx, config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}
		if migrateErr := migratePostgresSchema(ctx, pool); migrateErr != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
		}
		return pool, nil
	case StorageTypeSQLite:
		if config.SqliteDBPath == "" {
			return nil, errors.New("sqlite db path is empty")
		}
		return NewSQLite(config.SqliteDBPath, config.Logger)
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}
