package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger passed down to every component
// constructor, named after the component it serves.
type Logger struct {
	*zap.SugaredLogger
	name string
}

// NewLogger builds a production logger at INFO level with a console
// encoder, named for the owning component (e.g. "explorer", "tracker").
func NewLogger(name string) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zl, err := cfg.Build()
	if err != nil {
		// Configuration is static and known-good; failure here means the
		// zap build itself is broken, not a recoverable runtime condition.
		panic(err)
	}
	return &Logger{SugaredLogger: zl.Sugar().Named(name), name: name}
}

// NewTestLogger builds a logger that writes through the test's own log
// output, so `go test -v` interleaves firmware logs with test output.
func NewTestLogger(tb testing.TB) *Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(&testWriter{tb}),
		zapcore.DebugLevel,
	)
	zl := zap.New(core)
	return &Logger{SugaredLogger: zl.Sugar().Named(tb.Name()), name: tb.Name()}
}

// Named returns a child logger scoped to a sub-component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name), name: l.name + "." + name}
}

type testWriter struct {
	tb testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
