package bmeta

import "go.uber.org/zap"

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Meta данные сборки, задаются через -ldflags.
type Meta struct {
	Version string
	Date    string
	Commit  string
}

// New подставляет N/A вместо пустых значений.
func New(version, date, commit string) Meta {
	return Meta{
		Version: orDefault(version),
		Date:    orDefault(date),
		Commit:  orDefault(commit),
	}
}

// Print пишет версию, дату и комит сборки в лог.
func Print(logger *zap.Logger, meta Meta) {
	logger.Info("Build info",
		zap.String("version", meta.Version),
		zap.String("date", meta.Date),
		zap.String("commit", meta.Commit),
	)
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
