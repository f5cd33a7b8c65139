package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatECS     = "ecs"
)

/*
LogConfiguration describes the logger, usually loaded from the yaml file
and then overridden with the command line flags.
*/
type LogConfiguration struct {
	// DEBUG, INFO, WARN or ERROR
	Level string `yaml:"defaultLevel"`
	// one of text, json, console, ecs
	Format string `yaml:"format"`
	// file name or one of the special values: stdout, stderr, discard
	OutputPath string `yaml:"outputPath"`
	// Go time format string, "none" to not log time
	TimeFormat string `yaml:"timeFormat"`
	// ShowSource adds source file and line of the logging call
	ShowSource bool `yaml:"showSource"`
	// rotation settings when logging into file
	Rotation *Rotation `yaml:"rotation"`

	// when set takes precedence over OutputPath
	writer io.Writer
}

type Rotation struct {
	MaxSizeMB  int  `yaml:"maxSizeMB"`
	MaxBackups int  `yaml:"maxBackups"`
	MaxAgeDays int  `yaml:"maxAgeDays"`
	Compress   bool `yaml:"compress"`
}

// WithWriter returns copy of the configuration logging into "w".
func (cfg LogConfiguration) WithWriter(w io.Writer) *LogConfiguration {
	cfg.writer = w
	return &cfg
}

/*
New creates slog.Logger based on the configuration. nil configuration
means defaults (INFO level text to stderr).
*/
func New(cfg *LogConfiguration) (*slog.Logger, error) {
	if cfg == nil {
		cfg = &LogConfiguration{}
	}
	h, err := cfg.Handler()
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func (cfg *LogConfiguration) Handler() (slog.Handler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out, err := cfg.output()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.ShowSource}
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatDataAttrAsJSON)
		return slog.NewTextHandler(out, opts), nil
	case FormatJSON:
		opts.ReplaceAttr = formatTimeAttr(cfg.TimeFormat)
		return slog.NewJSONHandler(out, opts), nil
	case FormatECS:
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatAttrECS)
		return slog.NewJSONHandler(out, opts), nil
	case FormatConsole:
		timeFmt := cfg.TimeFormat
		if timeFmt == "" || timeFmt == "none" {
			timeFmt = "15:04:05.0000"
		}
		cw := zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColors(out),
			TimeFormat: timeFmt,
		}
		opts.ReplaceAttr = composeAttrFmt(formatAttrConsole, formatDataAttrAsJSON)
		return slog.NewJSONHandler(cw, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func (cfg *LogConfiguration) output() (io.Writer, error) {
	if cfg.writer != nil {
		return cfg.writer, nil
	}
	switch strings.ToLower(cfg.OutputPath) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard":
		return io.Discard, nil
	}
	lj := &lumberjack.Logger{Filename: cfg.OutputPath}
	if r := cfg.Rotation; r != nil {
		lj.MaxSize = r.MaxSizeMB
		lj.MaxBackups = r.MaxBackups
		lj.MaxAge = r.MaxAgeDays
		lj.Compress = r.Compress
	}
	return lj, nil
}

// ParseLevel accepts slog level names, empty string means INFO.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

/*
formatAttrConsole renames attributes so that zerolog console writer
recognizes them.
*/
func formatAttrConsole(groups []string, a slog.Attr) slog.Attr {
	if len(groups) != 0 {
		return a
	}
	switch a.Key {
	case slog.MessageKey:
		a.Key = zerolog.MessageFieldName
	case slog.LevelKey:
		a.Key = zerolog.LevelFieldName
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(consoleLevel(lvl))
		}
	case slog.TimeKey:
		a.Key = zerolog.TimestampFieldName
		if t := a.Value.Time(); !t.IsZero() {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}
	return a
}

func consoleLevel(lvl slog.Level) string {
	switch {
	case lvl < slog.LevelInfo:
		return zerolog.DebugLevel.String()
	case lvl < slog.LevelWarn:
		return zerolog.InfoLevel.String()
	case lvl < slog.LevelError:
		return zerolog.WarnLevel.String()
	default:
		return zerolog.ErrorLevel.String()
	}
}

func noColors(w io.Writer) bool {
	if v, ok := os.LookupEnv("LEDGER_LOG_NO_COLORS"); ok {
		return v == "true"
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	fi, err := f.Stat()
	return err != nil || fi.Mode()&os.ModeCharDevice == 0
}
