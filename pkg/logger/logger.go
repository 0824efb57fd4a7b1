// Package logger defines the logging facade shared by every component
package logger

import "strings"

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for detailed debugging information.
	DebugLevel              // DebugLevel is used for debugging information.
	InfoLevel               // InfoLevel is used for informational messages.
	WarnLevel               // WarnLevel is used for warning messages.
	ErrorLevel              // ErrorLevel is used for error messages.
	FatalLevel              // FatalLevel is used for fatal messages that cause the program to exit.
	PanicLevel              // PanicLevel is used for panic messages that cause the program to panic.
	NoLevel                 // NoLevel is used for no logging level.
)

type Logger interface {
	// Returns a logger based off the root logger and decorates it with the given context and arguments.
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger with the given error.

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Printf(format string, args ...any) // Printf lets the logger act as a GORM writer.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level)
	GetLevel() Level
}

// ParseLevel maps a textual level to a Level, defaulting to InfoLevel
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "disabled", "off":
		return Disabled
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	case "panic":
		return PanicLevel
	default:
		return InfoLevel
	}
}

// Nop returns a logger that discards everything
func Nop() Logger { return nop{} }

type nop struct{}

func (n nop) WithField(string, any) Logger { return n }
func (n nop) WithFields(map[string]any) Logger { return n }
func (n nop) WithError(error) Logger { return n }
func (nop) Debug(...any) {}
func (nop) Info(...any) {}
func (nop) Warn(...any) {}
func (nop) Error(...any) {}
func (nop) Fatal(...any) {}
func (nop) Printf(string, ...any) {}
func (nop) Debugf(string, ...any) {}
func (nop) Infof(string, ...any) {}
func (nop) Warnf(string, ...any) {}
func (nop) Errorf(string, ...any) {}
func (nop) Fatalf(string, ...any) {}
func (nop) SetLevel(Level) {}
func (nop) GetLevel() Level { return Disabled }
