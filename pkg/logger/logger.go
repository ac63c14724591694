package logger

import (
	"io"
	"os"

	"clinic-cms/config"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger and returns it. When a log
// file is configured, entries are written to stdout and to a rotated file.
func Setup(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	Configure(log, cfg, os.Stdout)
	return log
}

// Configure applies formatter, level and output to log.
func Configure(log *logrus.Logger, cfg config.LogConfig, stdout io.Writer) {
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		log.SetOutput(stdout)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(stdout, rotated))
}
