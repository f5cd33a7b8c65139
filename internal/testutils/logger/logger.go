package logger

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/hashgraph/hedera-services-sub009/logger"
)

/*
New returns logger for test t on debug level.
*/
func New(t testing.TB) *slog.Logger {
	return NewLvl(t, level())
}

/*
NewLvl returns logger for test t on given level. Output is written with
t.Log so it's only shown for failing tests (or with -v).
*/
func NewLvl(t testing.TB, lvl slog.Level) *slog.Logger {
	cfg := logger.LogConfiguration{
		Level:  lvl.String(),
		Format: logger.FormatConsole,
	}
	l, err := logger.New(cfg.WithWriter(testLogWriter{t}))
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}
	return l
}

// NOP returns logger which discards everything.
func NOP() *slog.Logger {
	cfg := logger.LogConfiguration{OutputPath: "discard"}
	l, err := logger.New(&cfg)
	if err != nil {
		panic(err)
	}
	return l
}

/*
LoggerBuilder returns logger factory for components which build their logger
from configuration (ie CLI), the configuration is ignored.
*/
func LoggerBuilder(t testing.TB) func(*logger.LogConfiguration) (*slog.Logger, error) {
	return func(*logger.LogConfiguration) (*slog.Logger, error) { return New(t), nil }
}

func level() slog.Level {
	lvl, err := logger.ParseLevel(os.Getenv("LEDGER_TEST_LOG_LEVEL"))
	if err != nil || os.Getenv("LEDGER_TEST_LOG_LEVEL") == "" {
		return slog.LevelDebug
	}
	return lvl
}

type testLogWriter struct {
	t testing.TB
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
