package logger

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// base is the process-wide logger. Accessed atomically so handlers and
// background goroutines can log concurrently.
var base atomic.Pointer[zap.Logger]

func init() {
	// Callers that log before Init must not panic.
	base.Store(zap.NewNop())
}

// Init configures JSON logging to stdout. Call once from main.
func Init() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	base.Store(zap.New(core))
	Info("logger initialized", nil)
}

// Set replaces the process logger. Intended for tests that capture output.
func Set(l *zap.Logger) {
	base.Store(l)
}

func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func Info(msg string, fields map[string]any)  { base.Load().Info(msg, zapFields(fields)...) }
func Warn(msg string, fields map[string]any)  { base.Load().Warn(msg, zapFields(fields)...) }
func Error(msg string, fields map[string]any) { base.Load().Error(msg, zapFields(fields)...) }

// Fatal logs the message and exits the process.
func Fatal(msg string, fields map[string]any) { base.Load().Fatal(msg, zapFields(fields)...) }
