package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Int(t *testing.T) {
	tests := []struct {
		input Field
		want  int
		ok    bool
	}{
		{"30", 30, true},
		{" 45 ", 45, true},
		{"30.0", 30, true},
		{"-15", -15, true},
		{"30.5", 0, false},
		{"1e30", 0, false},
		{"NaN", 0, false},
		{"-Inf", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, err := tt.input.Int()
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	var event Event
	payload := `{"username": 42, "status": "order", "order_timer": 30, "fiat_amount": "1500.50", "UTC": null}`
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	assert.Equal(t, Field("42"), event.Username)
	assert.Equal(t, EventOrder, event.Kind)
	assert.Equal(t, Field("30"), event.OrderTimer)
	assert.Equal(t, Field("1500.50"), event.FiatAmount)
	assert.Equal(t, Field(""), event.UTC)
}

func TestField_Bool(t *testing.T) {
	for _, input := range []Field{"true", "1", "YES"} {
		value, ok := input.Bool()
		assert.True(t, ok, input)
		assert.True(t, value, input)
	}

	value, ok := Field("0").Bool()
	assert.True(t, ok)
	assert.False(t, value)

	_, ok = Field("maybe").Bool()
	assert.False(t, ok)
}
