package main

import (
	"io"
	"os"

	"linkpulse/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger configures the global logger and returns a func that releases the log file
func setupLogger(mode string, cfg config.LogConfig) func() {
	level := zerolog.InfoLevel
	if mode != "release" {
		level = zerolog.DebugLevel
	}
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	// Pretty output for development, JSON for release
	var out io.Writer = os.Stdout
	if mode != "release" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	closeFn := func() {}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, file)
		closeFn = func() { _ = file.Close() }
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closeFn
}
