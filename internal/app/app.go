package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fsdevblog/shortlink/internal/bmeta"
	"github.com/fsdevblog/shortlink/internal/config"
	"github.com/fsdevblog/shortlink/internal/controllers"
	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/logs"
	"github.com/fsdevblog/shortlink/internal/metrics"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/fsdevblog/shortlink/internal/sslcert"
)

// Таймауты http сервера.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	connectTimeout    = 10 * time.Second
)

type App struct {
	config     config.Config
	conn       any
	dbServices *services.Services
	Logger     *zap.Logger
}

// serviceName пишется в каждую запись лога.
const serviceName = "shortlink"

// New создает приложение: логгер с именем сервиса и версией сборки, подключение к хранилищу и сервисы.
func New(conf config.Config, meta bmeta.Meta) (*App, error) {
	logger, logErr := logs.New(
		logs.WithLevel(conf.LogLevel),
		logs.WithInitialFields(map[string]any{"service": serviceName, "version": meta.Version}),
	)
	if logErr != nil {
		return nil, fmt.Errorf("init logger: %w", logErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, dbServices, servicesErr := initServices(ctx, conf, logger)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	metrics.Init()

	return &App{
		config:     conf,
		conn:       conn,
		dbServices: dbServices,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и блокируется до сигнала завершения или ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, routerErr := controllers.SetupRouter(controllers.RouterParams{
		ShortLinkService: a.dbServices.ShortLinkService,
		PingService:      a.dbServices.PingService,
		AppConf:          a.config,
		Logger:           a.Logger,
	})
	if routerErr != nil {
		return fmt.Errorf("setup router: %w", routerErr)
	}

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	if a.config.EnableHTTPS {
		if err := a.ensureCertificate(); err != nil {
			return err
		}
	}

	errChan := make(chan error, 1)
	go func() {
		a.Logger.Info("Server started",
			zap.String("address", a.config.ServerAddress),
			zap.Bool("https", a.config.EnableHTTPS),
		)
		var err error
		if a.config.EnableHTTPS {
			err = server.ListenAndServeTLS(a.config.TLSCertPath, a.config.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.Error("server error", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown error", zap.Error(err))
	}
	if err := closeConnection(shutdownCtx, a.conn); err != nil {
		a.Logger.Error("close storage connection error", zap.Error(err))
	} else {
		a.Logger.Info("Storage connection closed")
	}
	_ = a.Logger.Sync()

	return serverErr
}

// ensureCertificate выписывает самоподписанный сертификат, если действующего нет.
func (a *App) ensureCertificate() error {
	var hosts []string
	if a.config.BaseURL != "" {
		if u, err := url.Parse(a.config.BaseURL); err == nil && u.Hostname() != "" {
			hosts = append(hosts, u.Hostname())
		}
	}
	generated, err := sslcert.New(sslcert.WithHosts(hosts...)).EnsureFiles(a.config.TLSCertPath, a.config.TLSKeyPath)
	if err != nil {
		return fmt.Errorf("prepare tls certificate: %w", err)
	}
	if generated {
		a.Logger.Warn("Self-signed certificate generated",
			zap.String("cert", a.config.TLSCertPath),
			zap.String("key", a.config.TLSKeyPath),
		)
	}
	return nil
}

// initServices создает подключение к хранилищу и возвращает сервисный слой приложения.
func initServices(
	ctx context.Context,
	appConf config.Config,
	logger *zap.Logger,
) (any, *services.Services, error) {
	sqlLogger := logs.NewLogrus(os.Stdout, appConf.LogLevel)

	dbConn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  db.StorageType(appConf.StorageType),
		MongoURI:     appConf.MongoURI,
		PostgresDSN:  appConf.DatabaseDSN,
		SqliteDBPath: appConf.SQLitePath,
		Logger:       sqlLogger,
	})
	if connErr != nil {
		return nil, nil, connErr //nolint:wrapcheck
	}

	dbServices, dbServErr := services.Factory(services.FactoryParams{
		Conn:        dbConn,
		ServiceType: services.ServiceType(appConf.StorageType),
		Logger:      logger,
		SQLLogger:   sqlLogger,
		ServiceOptions: []func(*services.ShortLinkServiceOptions){
			func(o *services.ShortLinkServiceOptions) {
				o.MaxAttempts = appConf.MaxAttempts
			},
		},
	})
	if dbServErr != nil {
		_ = closeConnection(ctx, dbConn)
		return nil, nil, dbServErr //nolint:wrapcheck
	}
	return dbConn, dbServices, nil
}

// closeConnection закрывает подключение в зависимости от его типа.
func closeConnection(ctx context.Context, conn any) error {
	switch c := conn.(type) {
	case *db.MongoConnection:
		return c.Close(ctx)
	case *pgxpool.Pool:
		c.Close()
		return nil
	case *db.SQLiteConnection:
		return c.Close()
	case *db.MemoryStorage:
		return nil
	default:
		return fmt.Errorf("unknown connection type %T", conn)
	}
}
