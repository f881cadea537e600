package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Instance *zap.SugaredLogger
var Level zap.AtomicLevel

const defaultLevel = zap.WarnLevel

func init() {
	Level = zap.NewAtomicLevelAt(ParseLevel(os.Getenv("ARCTREE_LOG_LEVEL")))

	Instance = zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
				LevelKey:       "level",
				NameKey:        "logger",
				CallerKey:      "caller",
				MessageKey:     "message",
				StacktraceKey:  "stacktrace",
				LineEnding:     zapcore.DefaultLineEnding,
				EncodeLevel:    zapcore.LowercaseLevelEncoder,
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeDuration: zapcore.StringDurationEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
			}),
			// stdout carries the rendered tree
			zapcore.AddSync(os.Stderr),
			Level,
		),
	).Sugar().Named("arctree")
}

// ParseLevel maps a level name to a zap level. Unknown names fall back to
// warn.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return defaultLevel
	}
}

// SetLevel changes the level of Instance at runtime.
func SetLevel(s string) {
	Level.SetLevel(ParseLevel(s))
}

func Debugf(template string, args ...interface{}) {
	Instance.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	Instance.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	Instance.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	Instance.Errorf(template, args...)
}
