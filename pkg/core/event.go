package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EventKind tags an inbound platform event
type EventKind string

// Event kinds sent by the platform
const (
	EventOrder  EventKind = "order"
	EventAppeal EventKind = "appeal"
)

// Valid reports whether the kind is one the dispatcher knows how to render
func (k EventKind) Valid() bool {
	return k == EventOrder || k == EventAppeal
}

// Field is a loosely typed JSON scalar. The platform sends the same key as a
// string in one event and as a number in the next, so every scalar is kept as
// its textual form.
type Field string

// UnmarshalJSON accepts strings, numbers, booleans and null
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}

	// numbers and booleans keep their literal form
	*f = Field(data)
	return nil
}

// String returns the textual value
func (f Field) String() string { return string(f) }

// Int parses the field as an integer. Whole floats such as "30.0" are
// accepted; fractions, infinities and values outside int64 are not.
func (f Field) Int() (int, error) {
	s := strings.TrimSpace(string(f))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is not an integer: %w", s, strconv.ErrRange)
	}
	return int(v), nil
}

// Bool interprets boolean-like values such as true, "1", "yes" or 0
func (f Field) Bool() (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "true", "1", "yes", "y", "on":
		return true, true
	case "false", "0", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// Event is an order or appeal notification posted by the platform
type Event struct {
	Username Field     `json:"username"`
	Kind     EventKind `json:"status"`

	FiatAmount Field `json:"fiat_amount"`
	Currency   Field `json:"currency"`
	PayType    Field `json:"type"`

	CardNumber        Field `json:"requisites_cardNumber"`
	IBAN              Field `json:"requisites_ibanAcc"`
	RequisitesName    Field `json:"requisites_name"`
	CardholderName    Field `json:"requisites_cardholderName"`
	CardholderSurname Field `json:"requisites_cardholderSurname"`

	OrderID           Field `json:"order_id"`
	OrderDateCreated  Field `json:"order_date_created"`
	OrderTimer        Field `json:"order_timer"`
	AppealDateCreated Field `json:"appeal_date_created"`
	AppealTimer       Field `json:"appeal_timer"`

	UTC          Field `json:"UTC"`
	TraderRate   Field `json:"trader_rate"`
	TraderFee    Field `json:"trader_fee"`
	ExchangeRate Field `json:"exchange_rate"`
}

// Created returns the creation timestamp and timer for the event kind
func (e Event) Created() (created, timer Field) {
	if e.Kind == EventAppeal {
		return e.AppealDateCreated, e.AppealTimer
	}
	return e.OrderDateCreated, e.OrderTimer
}

// AuthStatus is the freeze change posted by the platform
type AuthStatus struct {
	Username Field `json:"username"`
	Freeze   Field `json:"freeze"`
}
