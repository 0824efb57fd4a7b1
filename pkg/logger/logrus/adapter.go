// Package logrus implements logger.Logger on top of sirupsen/logrus
package logrus

import (
	"io"

	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/sirupsen/logrus"
)

type Adapter struct {
	entry *logrus.Entry
}

// New builds a logrus logger writing text or JSON to out
func New(out io.Writer, level logger.Level, jsonFormat bool) *Adapter {
	l := logrus.New()
	l.SetOutput(out)
	if jsonFormat {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	a := &Adapter{entry: logrus.NewEntry(l)}
	a.SetLevel(level)
	return a
}

func (a *Adapter) WithField(key string, value any) logger.Logger {
	return &Adapter{entry: a.entry.WithField(key, value)}
}

func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	return &Adapter{entry: a.entry.WithFields(fields)}
}

func (a *Adapter) WithError(err error) logger.Logger {
	return &Adapter{entry: a.entry.WithError(err)}
}

func (a *Adapter) Debug(args ...any) { a.entry.Debug(args...) }
func (a *Adapter) Info(args ...any)  { a.entry.Info(args...) }
func (a *Adapter) Warn(args ...any)  { a.entry.Warn(args...) }
func (a *Adapter) Error(args ...any) { a.entry.Error(args...) }
func (a *Adapter) Fatal(args ...any) { a.entry.Fatal(args...) }

func (a *Adapter) Printf(format string, args ...any) { a.entry.Printf(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.entry.Debugf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.entry.Infof(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.entry.Warnf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.entry.Errorf(format, args...) }
func (a *Adapter) Fatalf(format string, args ...any) { a.entry.Fatalf(format, args...) }

func (a *Adapter) SetLevel(level logger.Level) {
	if level == logger.Disabled {
		a.entry.Logger.SetOutput(io.Discard)
		return
	}
	a.entry.Logger.SetLevel(toLogrusLevel(level))
}

func (a *Adapter) GetLevel() logger.Level {
	switch a.entry.Logger.GetLevel() {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel:
		return logger.ErrorLevel
	case logrus.FatalLevel:
		return logger.FatalLevel
	case logrus.PanicLevel:
		return logger.PanicLevel
	default:
		return logger.InfoLevel
	}
}

func toLogrusLevel(level logger.Level) logrus.Level {
	switch level {
	case logger.TraceLevel:
		return logrus.TraceLevel
	case logger.DebugLevel:
		return logrus.DebugLevel
	case logger.WarnLevel:
		return logrus.WarnLevel
	case logger.ErrorLevel:
		return logrus.ErrorLevel
	case logger.FatalLevel:
		return logrus.FatalLevel
	case logger.PanicLevel:
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}
