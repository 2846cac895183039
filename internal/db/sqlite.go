package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fsdevblog/shortlink/internal/models"
)

const sqliteSlowThreshold = 200 * time.Millisecond

// SQLiteConnection обертка над *gorm.DB, добавляющая Ping и Close.
type SQLiteConnection struct {
	*gorm.DB
}

func NewSQLite(dbPath string, logger *logrus.Logger) (*SQLiteConnection, error) {
	conn, connErr := connectSQLite(dbPath, logger)
	if connErr != nil {
		return nil, fmt.Errorf("init database error: %w", connErr)
	}
	if migrateErr := migrateSQLite(conn); migrateErr != nil {
		return nil, fmt.Errorf("migrate database error: %w", migrateErr)
	}
	return &SQLiteConnection{DB: conn}, nil
}

func (c *SQLiteConnection) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx) //nolint:wrapcheck
}

func (c *SQLiteConnection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close() //nolint:wrapcheck
}

func connectSQLite(dbPath string, logger *logrus.Logger) (*gorm.DB, error) {
	conf := &gorm.Config{TranslateError: true}
	if logger != nil {
		// *logrus.Logger реализует gormlogger.Writer (Printf).
		conf.Logger = gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             sqliteSlowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	db, err := gorm.Open(sqlite.Open(dbPath), conf)
	if err != nil {
		return nil, fmt.Errorf("connect database with path %s error: %w", dbPath, err)
	}
	return db, nil
}

func migrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ShortLink{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
