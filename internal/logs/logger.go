package logs

import (
	"maps"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options настройки zap логгера.
type Options struct {
	Level         string         // debug, info, warn, error...
	Encoding      string         // console или json
	OutputPaths   []string       // stdout, stderr или пути к файлам
	InitialFields map[string]any // поля каждой записи
}

// Option изменяет Options.
type Option func(*Options)

// defaultOptions в релизе json и info, иначе console и debug.
func defaultOptions() Options {
	if IsRelease() {
		return Options{Level: "info", Encoding: "json", OutputPaths: []string{"stdout"}}
	}
	return Options{Level: "debug", Encoding: "console", OutputPaths: []string{"stdout"}}
}

// New создает zap логгер. Ошибки уровня error и выше пишутся со стектрейсом.
func New(opts ...Option) (*zap.Logger, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	level, err := zap.ParseAtomicLevel(options.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}

	conf := zap.Config{
		Level:            level,
		Development:      !IsRelease(),
		Encoding:         options.Encoding,
		EncoderConfig:    encoderConfig(options.Encoding),
		OutputPaths:      options.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    options.InitialFields,
	}

	logger, err := conf.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// MustNew аналогичен New, но паникует при ошибке.
func MustNew(opts ...Option) *zap.Logger {
	logger, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	conf.EncodeDuration = zapcore.StringDurationEncoder
	if encoding == "console" {
		conf.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return conf
}

// WithLevel задает уровень логирования. Пустое значение не меняет уровень по умолчанию.
func WithLevel(level string) Option {
	return func(o *Options) {
		if level != "" {
			o.Level = level
		}
	}
}

// WithOutput заменяет пути вывода.
func WithOutput(paths ...string) Option {
	return func(o *Options) {
		o.OutputPaths = paths
	}
}

// WithInitialFields добавляет поля в каждую запись. Повторный вызов дополняет набор.
func WithInitialFields(fields map[string]any) Option {
	return func(o *Options) {
		if o.InitialFields == nil {
			o.InitialFields = make(map[string]any, len(fields))
		}
		maps.Copy(o.InitialFields, fields)
	}
}

// IsRelease сообщает, запущено ли приложение в продакшн режиме gin.
func IsRelease() bool {
	return os.Getenv("GIN_MODE") == "release"
}
