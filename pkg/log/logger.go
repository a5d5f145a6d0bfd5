package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zerolog.Nop()
var once sync.Once

type LoggerOption func(*LoggerConfig)

type LoggerConfig struct {
	fileName string
	console  bool
	logLevel zerolog.Level
	writer   io.Writer
}

func WithFileLogger(fileName string) LoggerOption {
	return func(l *LoggerConfig) {
		l.fileName = fileName
	}
}

func WithConsoleLogger() LoggerOption {
	return func(l *LoggerConfig) {
		l.console = true
	}
}

// WithLogLevel sets the minimum level by name ("debug", "info", ...). Unknown names keep info.
func WithLogLevel(level string) LoggerOption {
	return func(l *LoggerConfig) {
		if parsed, err := zerolog.ParseLevel(level); err == nil && parsed != zerolog.NoLevel {
			l.logLevel = parsed
		}
	}
}

// WithWriter sends JSON output to w instead of stdout.
func WithWriter(w io.Writer) LoggerOption {
	return func(l *LoggerConfig) {
		l.writer = w
	}
}

// Init configures the process-wide logger. Only the first call has any effect.
func Init(serviceName string, opts ...LoggerOption) {
	once.Do(func() {
		logger = build(serviceName, opts...)
	})
}

func build(serviceName string, opts ...LoggerOption) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := &LoggerConfig{logLevel: zerolog.InfoLevel}

	for _, opt := range opts {
		opt(l)
	}

	output := make([]io.Writer, 0, 3)
	defaultOutput := os.Stdout
	if l.console {
		output = append(output, zerolog.ConsoleWriter{
			Out:        defaultOutput,
			TimeFormat: time.RFC3339,
		})
	}
	if l.fileName != "" {
		output = append(output, &lumberjack.Logger{
			Filename:   l.fileName,
			MaxSize:    5,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		})
	}
	if l.writer != nil {
		output = append(output, l.writer)
	}

	if len(output) == 0 {
		output = append(output, defaultOutput)
	}

	return zerolog.New(zerolog.MultiLevelWriter(output...)).
		Level(l.logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// GetLogger returns the process-wide logger; it discards everything until Init runs.
func GetLogger() zerolog.Logger {
	return logger
}
