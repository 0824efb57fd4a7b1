package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/raykavin/orderalert/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// New builds a console (or JSON) zerolog logger wrapped in the facade
func New(level logger.Level, dateTimeLayout string, colored, jsonFormat bool) *Adapter {
	return newWithOutput(os.Stdout, level, dateTimeLayout, colored, jsonFormat)
}

func newWithOutput(out io.Writer, level logger.Level, dateTimeLayout string, colored, jsonFormat bool) *Adapter {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(toZerologLevel(level))

	var output io.Writer = out
	if !jsonFormat {
		output = zerolog.ConsoleWriter{
			Out:             out,
			NoColor:         !colored,
			TimeFormat:      dateTimeLayout,
			FormatLevel:     formatLevel,
			FormatMessage:   formatMessage,
			FormatCaller:    formatCaller,
			FormatTimestamp: func(i any) string { return formatTimestamp(i, dateTimeLayout) },
		}
	}

	log := zerolog.New(output).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &Adapter{&log}
}

func formatLevel(i any) string {
	levelStr, ok := i.(string)
	if !ok {
		return "UNKNOWN"
	}

	switch levelStr {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelPanicValue:
		return term.Redf("[PAN]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	default:
		return term.Whitef("[UNK]")
	}
}

func formatMessage(i any) string {
	const maxSize = 60

	msg, ok := i.(string)
	if !ok || len(msg) == 0 {
		return ">"
	}

	// pad short messages so the fields line up
	if n := len([]rune(msg)); n < maxSize {
		msg += strings.Repeat(" ", maxSize-n)
	}

	return term.Whitef("> %s", msg)
}

func formatCaller(i any) string {
	const maxFileSize = 18
	const maxLineSize = 4

	fname, ok := i.(string)
	if !ok || len(fname) == 0 {
		return ""
	}

	caller := filepath.Base(fname)
	fileBase, line, found := strings.Cut(caller, ":")
	if !found {
		return caller
	}

	if len(fileBase) > maxFileSize {
		fileBase = fileBase[:maxFileSize]
	}
	if len(line) > maxLineSize {
		line = line[len(line)-maxLineSize:]
	}

	return term.Yellowf("[%s]", fmt.Sprintf("%-*s:%*s", maxFileSize, fileBase, maxLineSize, line))
}

func formatTimestamp(i any, timeLayout string) string {
	strTime, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	if ts, err := time.ParseInLocation(time.RFC3339, strTime, time.Local); err == nil {
		strTime = ts.In(time.Local).Format(timeLayout)
	}

	return term.Cyanf("[%s]", strTime)
}
