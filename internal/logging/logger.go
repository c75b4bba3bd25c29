package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the structured logger injected into long-lived components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	// With returns a logger that adds fields to every event.
	With(fields ...Field) Logger
}

// Field is a key/value pair attached to an event.
type Field struct {
	Key   string
	Value any
}

// String returns a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an integer field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration returns a field logged in milliseconds.
func Duration(key string, d time.Duration) Field { return Field{Key: key, Value: d} }

// Err returns the conventional error field.
func Err(err error) Field { return Field{Key: zerolog.ErrorFieldName, Value: err} }

// Options configures Setup.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string
	// Output receives the log. Nil means stderr.
	Output io.Writer
	// Console selects the human-readable writer instead of JSON lines.
	Console bool
	// NoColor disables colors in console output.
	NoColor bool
}

// Setup configures the global zerolog logger used by every package and
// returns it wrapped as a Logger.
func Setup(opts Options) (Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor, TimeFormat: time.TimeOnly}
	}

	zerolog.SetGlobalLevel(level)
	zerolog.DurationFieldUnit = time.Millisecond
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return NewZerologAdapter(log.Logger), nil
}

// ZerologAdapter implements Logger on a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger returns a JSON logger writing to w with a component field.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).With().Timestamp().Str("component", component).Logger())
}

// Zerolog returns the underlying logger.
func (z *ZerologAdapter) Zerolog() zerolog.Logger { return z.logger }

func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologAdapter) With(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return NewZerologAdapter(ctx.Logger())
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return NewZerologAdapter(zerolog.Nop()) }

// StdLoggerAdapter writes Logger events through a standard library
// *log.Logger, one "[LEVEL] msg key=value ..." line each.
type StdLoggerAdapter struct {
	logger *stdlog.Logger
	fields []Field
}

// NewStdLoggerAdapter wraps logger.
func NewStdLoggerAdapter(logger *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.print("DEBUG", msg, nil, fields) }

func (s *StdLoggerAdapter) Info(msg string, fields ...Field) { s.print("INFO", msg, nil, fields) }

func (s *StdLoggerAdapter) Warn(msg string, fields ...Field) { s.print("WARN", msg, nil, fields) }

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.print("ERROR", msg, err, fields)
}

func (s *StdLoggerAdapter) With(fields ...Field) Logger {
	return &StdLoggerAdapter{logger: s.logger, fields: append(append([]Field(nil), s.fields...), fields...)}
}

func (s *StdLoggerAdapter) print(level, msg string, err error, fields []Field) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	if err != nil {
		line += ": " + err.Error()
	}
	for _, f := range append(append([]Field(nil), s.fields...), fields...) {
		line += fmt.Sprintf(" %s=%v", f.Key, f.Value)
	}
	s.logger.Println(line)
}
