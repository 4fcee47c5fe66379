package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the leveled logger passed into the path planning engine and
// instrument model. It wraps a zap.SugaredLogger so callers get
// structured, leveled output without every package depending on zap
// directly.
type Logger struct {
	sugar *zap.SugaredLogger
	level Level
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// NewLogger builds a Logger that writes structured, human-readable output
// at or above minLevel.
func NewLogger(minLevel Level) (*Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(minLevel))
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: zl.Sugar(), level: minLevel}, nil
}

// NewTestLogger builds a Logger suitable for use in tests: it never
// returns an error since zap's no-op config cannot fail to build.
func NewTestLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), level: DEBUG}
}

// Level returns the logger's configured minimum level.
func (l *Logger) Level() Level { return l.level }

// Debugf logs at DEBUG level.
func (l *Logger) Debugf(template string, args ...interface{}) { l.sugar.Debugf(template, args...) }

// Infof logs at INFO level.
func (l *Logger) Infof(template string, args ...interface{}) { l.sugar.Infof(template, args...) }

// Warnf logs at WARN level.
func (l *Logger) Warnf(template string, args ...interface{}) { l.sugar.Warnf(template, args...) }

// Errorf logs at ERROR level.
func (l *Logger) Errorf(template string, args ...interface{}) { l.sugar.Errorf(template, args...) }

// With returns a Logger with additional structured key/value context.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(args...), level: l.level}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.sugar.Sync() }
