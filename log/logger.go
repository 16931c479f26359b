package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

var (
	logFile *os.File
	once    sync.Once
)

func getLogFile(logDir string) (*os.File, error) {
	var err error
	once.Do(func() {
		//nolint:gosec // G301: valid perm
		if err = os.MkdirAll(logDir, 0o755); err != nil {
			err = fmt.Errorf("failed to create log directory: %w", err)
			return
		}

		timestamp := time.Now().Format("2006-01-02-15-04-05")
		logPath := filepath.Join(logDir, fmt.Sprintf("minter-%s.log", timestamp))

		//nolint:gosec // G302: valid perm
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			err = fmt.Errorf("failed to open log file: %w", err)
		}
	})

	return logFile, err
}

func CloseLogFile() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
	}
}

// DefaultLogger writes to stdout and to a per-run file under logDir. If the file
// cannot be opened the logger falls back to stdout only.
func DefaultLogger(devLogging bool, logDir string, options ...zap.Option) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	var logLevel zapcore.Level

	if devLogging {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
		logLevel = zap.DebugLevel
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
		logLevel = zap.InfoLevel
	}

	stdoutCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stdout),
		logLevel,
	)

	file, err := getLogFile(logDir)
	if err != nil {
		return zap.New(stdoutCore, options...), nil
	}

	fileCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(file),
		logLevel,
	)

	return zap.New(zapcore.NewTee(stdoutCore, fileCore), options...), nil
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerContextKey{}).(*zap.Logger)
	if ok {
		return logger
	}

	return zap.NewNop()
}

// FieldOnLevel only returns a field if the logger level is at least `level`.
// The function depends on the assumption that the logger level is not going to change in runtime (only set on startup).
func FieldOnLevel(ctx context.Context, level zapcore.Level, field zap.Field) zap.Field {
	if !FromContext(ctx).Core().Enabled(level) {
		return zap.Skip()
	}

	return field
}
