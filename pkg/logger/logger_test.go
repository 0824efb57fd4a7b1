package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"off":     Disabled,
		"trace":   TraceLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestNop(t *testing.T) {
	log := Nop().WithField("key", 1).WithError(assert.AnError)
	assert.NotPanics(t, func() { log.Info("discarded") })
	assert.Equal(t, Disabled, log.GetLevel())
}
