package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls where and how much is logged
type Config struct {
	Level string // debug, info, warn, error
	// File, when set, receives the log instead of stderr
	File string
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = customTimeEncoder
	encoderConfig.EncodeLevel = customLevelEncoder
	encoderConfig.CallerKey = ""
	encoderConfig.NameKey = "logger"
	encoderConfig.StacktraceKey = ""

	return zapcore.NewConsoleEncoder(encoderConfig)
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(level.String())
}

// New builds the application logger. The returned cleanup flushes the log
// and closes the log file, if any.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	path := "stderr"
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		path = cfg.File
	}

	out, closeOut, err := zap.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}

	log := NewWithWriter(out, level)
	cleanup := func() {
		_ = log.Sync()
		closeOut()
	}
	return log, cleanup, nil
}

// NewWithWriter builds a logger writing to w at level
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		getEncoder(),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// Leveled adapts a zap logger to the leveled logger interface expected by
// go-retryablehttp
type Leveled struct {
	sugar *zap.SugaredLogger
}

// NewLeveled wraps log
func NewLeveled(log *zap.Logger) Leveled {
	return Leveled{sugar: log.Sugar()}
}

func (l Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
