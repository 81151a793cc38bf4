package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calendarapp/calendar-service/internal/config"
)

// NewLogger creates the server's JSON logger. Every entry carries the service name.
func NewLogger(cfg config.LoggerConfig, service string) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(parseLevel(cfg.Level, zapcore.InfoLevel)),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:    "message",
			LevelKey:      "level",
			TimeKey:       "ts",
			NameKey:       "logger",
			CallerKey:     "caller",
			StacktraceKey: "stacktrace",
			EncodeLevel:   zapcore.LowercaseLevelEncoder,
			EncodeTime:    zapcore.ISO8601TimeEncoder,
			EncodeCaller:  zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if service != "" {
		zapCfg.InitialFields = map[string]interface{}{"service": service}
	}

	return zapCfg.Build()
}

// NewConsoleLogger builds a human readable logger writing to stderr, for the CLI.
func NewConsoleLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(level, zapcore.WarnLevel))
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return zapCfg.Build()
}

func parseLevel(raw string, fallback zapcore.Level) zapcore.Level {
	level := fallback
	if err := level.Set(strings.ToLower(raw)); err != nil {
		return fallback
	}
	return level
}
