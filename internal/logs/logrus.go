package logs

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrus создает logrus логгер для слоя хранения (gorm и sqlite репозиторий).
// В продакшн режиме пишет JSON, иначе текст.
func NewLogrus(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	logger.SetFormatter(new(logrus.JSONFormatter))
	logger.SetLevel(logrus.InfoLevel)

	if !IsRelease() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(new(logrus.TextFormatter))
	}

	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		}
	}
	return logger
}
