package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a JSON logger writing to stderr. When file is set, entries are
// also written to a size-rotated log file.
func New(level string, file string) (*zap.Logger, error) {
	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if strings.TrimSpace(file) != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}))
	}
	return NewWithSink(level, zapcore.NewMultiWriteSyncer(sinks...))
}

func NewWithSink(level string, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	atomicLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, atomicLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ParseLevel accepts zap level names; blank means info.
func ParseLevel(raw string) (zap.AtomicLevel, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	level, err := zapcore.ParseLevel(value)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return zap.NewAtomicLevelAt(level), nil
}
