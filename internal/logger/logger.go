package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
)

// LogLevel represents the verbosity level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// ParseLevel maps a level name onto a LogLevel. Unknown names are an error.
func ParseLevel(name string) (LogLevel, error) {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(name))); level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return level, nil
	case "":
		return InfoLevel, nil
	default:
		return "", fmt.Errorf("unknown log level %q", name)
	}
}

func (l LogLevel) charm() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Sink receives the diagnostics of a generation pass. Messages use fmt verbs
// for their positional arguments.
type Sink interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	IsDebugEnabled() bool
	IsInfoEnabled() bool
	IsWarnEnabled() bool
	IsErrorEnabled() bool
}

// Options configures a Logger
type Options struct {
	Level  LogLevel
	Writer io.Writer
	// Colors enables styled level labels; they are still dropped when the
	// writer is not a terminal or NO_COLOR is set
	Colors bool
}

// Logger handles all logging for the generator
type Logger struct {
	level LogLevel
	charm *charmlog.Logger
}

var _ Sink = (*Logger)(nil)

// New creates a Logger writing to opts.Writer (stderr when nil)
func New(opts Options) *Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Level == "" {
		opts.Level = InfoLevel
	}

	charm := charmlog.NewWithOptions(opts.Writer, charmlog.Options{
		Level:  opts.Level.charm(),
		Prefix: "vogen",
	})
	if opts.Colors && detectColorSupport(opts.Writer) {
		charm.SetStyles(defaultStyles())
	} else {
		charm.SetStyles(plainStyles())
	}

	return &Logger{level: opts.Level, charm: charm}
}

// Discard returns a Logger that drops everything
func Discard() *Logger {
	return New(Options{Level: ErrorLevel, Writer: io.Discard})
}

// Level returns the configured level
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Debug(format string, args ...any) { l.charm.Debugf(format, args...) }

func (l *Logger) Info(format string, args ...any) { l.charm.Infof(format, args...) }

func (l *Logger) Warn(format string, args ...any) { l.charm.Warnf(format, args...) }

func (l *Logger) Error(format string, args ...any) { l.charm.Errorf(format, args...) }

func (l *Logger) IsDebugEnabled() bool { return l.enabled(charmlog.DebugLevel) }

func (l *Logger) IsInfoEnabled() bool { return l.enabled(charmlog.InfoLevel) }

func (l *Logger) IsWarnEnabled() bool { return l.enabled(charmlog.WarnLevel) }

func (l *Logger) IsErrorEnabled() bool { return l.enabled(charmlog.ErrorLevel) }

func (l *Logger) enabled(level charmlog.Level) bool {
	return l.charm.GetLevel() <= level
}

// detectColorSupport checks if the terminal supports colors
func detectColorSupport(writer io.Writer) bool {
	// Check for NO_COLOR environment variable (standard: https://no-color.org/)
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}

	// Check if output is a terminal
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	stat, err := file.Stat()
	if err != nil {
		return false
	}

	// Check if it's a character device (terminal)
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func defaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = levelStyle("DEBUG", "13")
	styles.Levels[charmlog.InfoLevel] = levelStyle("INFO", "14")
	styles.Levels[charmlog.WarnLevel] = levelStyle("WARN", "11")
	styles.Levels[charmlog.ErrorLevel] = levelStyle("ERROR", "9")
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	return styles
}

func plainStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	for level, label := range map[charmlog.Level]string{
		charmlog.DebugLevel: "DEBUG",
		charmlog.InfoLevel:  "INFO",
		charmlog.WarnLevel:  "WARN",
		charmlog.ErrorLevel: "ERROR",
	} {
		styles.Levels[level] = lipgloss.NewStyle().SetString(label)
	}
	return styles
}

func levelStyle(label, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Bold(true).
		Foreground(lipgloss.Color(color))
}
