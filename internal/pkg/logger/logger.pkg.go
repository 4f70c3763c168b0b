package logger

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level-bound std loggers. They write to stderr until Setup runs.
var (
	Info    = log.New(os.Stderr, "INFO: ", log.LstdFlags)
	Warning = log.New(os.Stderr, "WARNING: ", log.LstdFlags)
	Error   = log.New(os.Stderr, "ERROR: ", log.LstdFlags)
	Debug   = log.New(os.Stderr, "DEBUG: ", log.LstdFlags)
	HTTP    = log.New(os.Stderr, "HTTP: ", log.LstdFlags)
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Setup builds the zap core and rebinds the level loggers onto it.
// APP_ENV=production switches to JSON output.
func Setup() {
	cfg := zap.NewDevelopmentConfig()
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		Error.Printf("failed to build zap logger, keeping std loggers: %v", err)
		return
	}
	Use(z)
}

// Use rebinds all loggers onto z.
func Use(z *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()

	base = z
	Info = mustStdLog(z, zapcore.InfoLevel)
	Warning = mustStdLog(z, zapcore.WarnLevel)
	Error = mustStdLog(z, zapcore.ErrorLevel)
	Debug = mustStdLog(z, zapcore.DebugLevel)
	HTTP = mustStdLog(z.Named("http"), zapcore.InfoLevel)
}

// Zap returns the structured logger for field-based logging.
func Zap() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered entries.
func Sync() {
	_ = Zap().Sync()
}

func mustStdLog(z *zap.Logger, lvl zapcore.Level) *log.Logger {
	l, err := zap.NewStdLogAt(z, lvl)
	if err != nil {
		return zap.NewStdLog(z)
	}
	return l
}
