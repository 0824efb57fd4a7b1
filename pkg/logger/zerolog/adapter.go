// Package zerolog implements logger.Logger on top of rs/zerolog
package zerolog

import (
	"fmt"

	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/rs/zerolog"
)

type Adapter struct {
	*zerolog.Logger
}

func NewAdapter(logger *zerolog.Logger) *Adapter {
	return &Adapter{logger}
}

// GetLevel implements logger.Logger.
func (z *Adapter) GetLevel() logger.Level {
	return toLevel(z.Logger.GetLevel())
}

// SetLevel implements logger.Logger.
func (z *Adapter) SetLevel(level logger.Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

func (z *Adapter) Debug(args ...any) { z.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Info(args ...any)  { z.Logger.Info().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Warn(args ...any)  { z.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Error(args ...any) { z.Logger.Error().Msg(fmt.Sprint(args...)) }
func (z *Adapter) Fatal(args ...any) { z.Logger.Fatal().Msg(fmt.Sprint(args...)) }

func (z *Adapter) Printf(format string, args ...any) { z.Logger.Printf(format, args...) }
func (z *Adapter) Debugf(format string, args ...any) { z.Logger.Debug().Msgf(format, args...) }
func (z *Adapter) Infof(format string, args ...any)  { z.Logger.Info().Msgf(format, args...) }
func (z *Adapter) Warnf(format string, args ...any)  { z.Logger.Warn().Msgf(format, args...) }
func (z *Adapter) Errorf(format string, args ...any) { z.Logger.Error().Msgf(format, args...) }
func (z *Adapter) Fatalf(format string, args ...any) { z.Logger.Fatal().Msgf(format, args...) }

// WithError implements logger.Logger.
func (z *Adapter) WithError(err error) logger.Logger {
	newLogger := z.With().Err(err).Logger()
	return &Adapter{&newLogger}
}

// WithField implements logger.Logger.
func (z *Adapter) WithField(key string, value any) logger.Logger {
	newLogger := z.With().Interface(key, fmt.Sprint(value)).Logger()
	return &Adapter{&newLogger}
}

// WithFields implements logger.Logger.
func (z *Adapter) WithFields(fields map[string]any) logger.Logger {
	newLogger := z.With().Fields(fields).Logger()
	return &Adapter{&newLogger}
}

var levels = map[zerolog.Level]logger.Level{
	zerolog.Disabled:   logger.Disabled,
	zerolog.NoLevel:    logger.NoLevel,
	zerolog.TraceLevel: logger.TraceLevel,
	zerolog.DebugLevel: logger.DebugLevel,
	zerolog.InfoLevel:  logger.InfoLevel,
	zerolog.WarnLevel:  logger.WarnLevel,
	zerolog.ErrorLevel: logger.ErrorLevel,
	zerolog.FatalLevel: logger.FatalLevel,
	zerolog.PanicLevel: logger.PanicLevel,
}

func toLevel(level zerolog.Level) logger.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return logger.NoLevel
}

func toZerologLevel(level logger.Level) zerolog.Level {
	for zl, l := range levels {
		if l == level {
			return zl
		}
	}
	return zerolog.NoLevel
}
