package obs

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// Logger returns the shared structured logger used across the service.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		logger = newLogger(os.Stdout)
	})
	return logger
}

func newLogger(w zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, zapcore.InfoLevel)
	return zap.New(core)
}

// SetLoggerForTests swaps the shared logger and returns a restore func.
func SetLoggerForTests(l *zap.Logger) func() {
	prev := Logger()
	logger = l
	return func() { logger = prev }
}
