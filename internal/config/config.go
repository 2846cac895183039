package config

import (
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type StorageType string

const (
	StorageTypeMongo    StorageType = "mongo"
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypeInMemory StorageType = "inMemory"
)

// Значения по умолчанию.
const (
	DefaultServerAddress   = ":3000"
	DefaultMongoURI        = "mongodb://localhost:27017/url-shortener"
	DefaultSQLitePath      = "./shortener.sqlite"
	DefaultMaxAttempts     = 10
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTLSCertPath     = "./certs/cert.pem"
	DefaultTLSKeyPath      = "./certs/key.pem"
	DefaultStaticDir       = "./public"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Порт, если задан, заменяет порт в ServerAddress
	Port string `env:"PORT"`
	// Базовый адрес результирующего сокращенного URL. Пустой - Scheme://Host запроса
	BaseURL string `env:"BASE_URL"`
	// Тип хранилища
	StorageType StorageType `env:"STORAGE_TYPE"`
	MongoURI    string      `env:"MONGODB_URI"`
	DatabaseDSN string      `env:"DATABASE_DSN"`
	SQLitePath  string      `env:"SQLITE_PATH"`
	// Ограничение попыток генерации кода, <= 0 - без ограничений
	MaxAttempts int `env:"SHORTEN_MAX_ATTEMPTS"`
	// Прокси, которым доверяем X-Forwarded-For. Пусто - IP берется из соединения
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	// HTTPS с самоподписанным сертификатом, если по указанным путям нет действующего
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	TLSCertPath string `env:"TLS_CERT_PATH"`
	TLSKeyPath  string `env:"TLS_KEY_PATH"`
	// Каталог статических файлов. Пусто - статика не отдается
	StaticDir string `env:"STATIC_DIR"`
	// Разрешенные CORS источники. Пусто - любой источник
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// LoadConfig собирает конфигурацию: значения флагов (или их значения по умолчанию)
// перекрываются переменными окружения, в т.ч. загруженными из .env.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env file")
	}

	var conf Config
	if err := loadFlags(&conf, args); err != nil {
		return nil, err
	}

	if err := env.Parse(&conf); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if conf.Port != "" {
		host, _, splitErr := net.SplitHostPort(conf.ServerAddress)
		if splitErr != nil {
			host = ""
		}
		conf.ServerAddress = net.JoinHostPort(host, conf.Port)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// MustLoadConfig аналогичен LoadConfig, но паникует при ошибке.
func MustLoadConfig(args []string) *Config {
	conf, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return conf
}

// loadFlags парсит флаги командной строки.
func loadFlags(conf *Config, args []string) error {
	flagSet := flag.NewFlagSet("shortener", flag.ContinueOnError)

	flagSet.StringVar(&conf.ServerAddress, "a", DefaultServerAddress, "Адрес сервера")
	flagSet.StringVar(&conf.BaseURL, "b", "",
		"Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запроса)")
	flagSet.Func("s", "Тип хранилища: mongo, postgres, sqlite, inMemory (по умолчанию mongo)", func(v string) error {
		conf.StorageType = StorageType(v)
		return nil
	})
	flagSet.StringVar(&conf.MongoURI, "m", DefaultMongoURI, "Строка подключения к MongoDB")
	flagSet.StringVar(&conf.DatabaseDSN, "d", "", "Строка подключения к PostgreSQL")
	flagSet.StringVar(&conf.SQLitePath, "f", DefaultSQLitePath, "Путь к файлу sqlite")
	flagSet.IntVar(&conf.MaxAttempts, "n", DefaultMaxAttempts, "Ограничение попыток генерации кода (<= 0 без ограничений)")
	flagSet.StringVar(&conf.LogLevel, "l", DefaultLogLevel, "Уровень логирования")
	flagSet.DurationVar(&conf.ShutdownTimeout, "t", DefaultShutdownTimeout, "Время на корректное завершение")
	flagSet.BoolVar(&conf.EnableHTTPS, "tls", false, "Запустить сервер по HTTPS")
	flagSet.StringVar(&conf.TLSCertPath, "cert", DefaultTLSCertPath, "Путь к PEM сертификату")
	flagSet.StringVar(&conf.TLSKeyPath, "key", DefaultTLSKeyPath, "Путь к PEM ключу")
	flagSet.StringVar(&conf.StaticDir, "static", DefaultStaticDir, "Каталог статических файлов (пусто - отключить)")

	if conf.StorageType == "" {
		conf.StorageType = StorageTypeMongo
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMongo, StorageTypePostgres, StorageTypeSQLite, StorageTypeInMemory:
	default:
		return fmt.Errorf("unknown storage type: %s", c.StorageType)
	}
	if c.StorageType == StorageTypePostgres && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required for postgres storage")
	}
	if c.BaseURL != "" {
		parsedURL, err := url.ParseRequestURI(c.BaseURL)
		if err != nil || parsedURL.Host == "" {
			return errors.Errorf("invalid base url %q", c.BaseURL)
		}
		// отсекаем Path и Query если они заданы в базовом урле.
		c.BaseURL = (&url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}).String()
	}
	return nil
}
