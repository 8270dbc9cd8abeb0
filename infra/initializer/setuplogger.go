package initializer

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sevatrust/donation-api/pkg/config"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.JSONFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Level:           log.Level(cfg.Level),
		Formatter:       formatter,
	})

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
