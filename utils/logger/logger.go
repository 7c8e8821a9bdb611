package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	name  string
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger("Main", "INFO", os.Stdout)
)

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a console logger tagged with name. A nil writer means stdout.
func NewLogger(name, level string, writer io.Writer) *Logger {
	if writer == nil {
		writer = os.Stdout
	}
	atom := zap.NewAtomicLevelAt(parseLevel(level))
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " | "
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(writer), atom)
	return &Logger{
		name:  name,
		sugar: zap.New(core).Named(name).Sugar(),
		level: atom,
	}
}

func (l *Logger) Name() string { return l.name }

func (l *Logger) SetLevel(level string) { l.level.SetLevel(parseLevel(level)) }

func (l *Logger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any) { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any) { l.sugar.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

func (l *Logger) Sync() error { return l.sugar.Sync() }

// SetDefault replaces the logger behind the package-level helpers.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Debugf(format string, args ...any) { Default().Debugf(format, args...) }
func Infof(format string, args ...any) { Default().Infof(format, args...) }
func Warnf(format string, args ...any) { Default().Warnf(format, args...) }
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }
