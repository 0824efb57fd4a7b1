package notification

import (
	"encoding/json"
	"testing"

	"github.com/raykavin/orderalert/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	tt := []struct {
		name    string
		created core.Field
		timer   core.Field
		opened  Stamp
		closes  Stamp
	}{
		{"thirty minutes", "01.01.2024 10:00:00", "30", Stamp{"10:00:00", "01.01.2024"}, Stamp{"10:30:00", "01.01.2024"}},
		{"float timer", "01.01.2024 10:00:00", "30.0", Stamp{"10:00:00", "01.01.2024"}, Stamp{"10:30:00", "01.01.2024"}},
		{"crosses midnight", "31.12.2023 23:50:00", "15", Stamp{"23:50:00", "31.12.2023"}, Stamp{"00:05:00", "01.01.2024"}},
		{"malformed creation", "2024-01-01T10:00", "30", failedStamp, failedStamp},
		{"missing creation", "", "30", failedStamp, failedStamp},
		{"missing timer", "01.01.2024 10:00:00", "", Stamp{"10:00:00", "01.01.2024"}, Stamp{"10:00:00", "01.01.2024"}},
		{"malformed timer", "01.01.2024 10:00:00", "soon", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
		{"fractional timer", "01.01.2024 10:00:00", "30.5", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
		{"timer beyond duration range", "01.01.2024 10:00:00", "99999999999999", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
		{"negative timer beyond range", "01.01.2024 10:00:00", "-99999999999999", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
		{"timer beyond int range", "01.01.2024 10:00:00", "1e30", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
		{"infinite timer", "01.01.2024 10:00:00", "Inf", Stamp{"10:00:00", "01.01.2024"}, failedStamp},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			opened, closes := Schedule(tc.created, tc.timer)
			assert.Equal(t, tc.opened, opened)
			assert.Equal(t, tc.closes, closes)
		})
	}

	_, closes := Schedule("01.01.2024 10:00:00", "30")
	assert.Equal(t, "01.01.2024 10:30:00", closes.String())
}

func TestFormat_Order(t *testing.T) {
	var event core.Event
	require.NoError(t, json.Unmarshal([]byte(`{
		"username": "trader1",
		"status": "order",
		"fiat_amount": 1500.5,
		"currency": "UAH",
		"type": "card",
		"requisites_cardNumber": "4149499912345678",
		"requisites_name": "Mono",
		"requisites_cardholderName": "Ivan",
		"requisites_cardholderSurname": "Petrenko",
		"order_id": 777,
		"order_date_created": "01.01.2024 10:00:00",
		"order_timer": 30,
		"UTC": 2,
		"trader_rate": "41.2",
		"trader_fee": "1.5",
		"exchange_rate": "40.9"
	}`), &event))

	text, err := Format(event)
	require.NoError(t, err)

	assert.Contains(t, text, "💸 Новый ордер")
	assert.Contains(t, text, "🔹 Сумма, фиат: 1500.5 UAH")
	assert.Contains(t, text, "🔹 Реквизиты: Mono Petrenko *5678, Ivan P.")
	assert.Contains(t, text, "🔹 Способ оплаты: CARD")
	assert.Contains(t, text, "▫️ ID ордера: 777")
	assert.Contains(t, text, "▫️ Ордер создан 10:00:00 (UTC+2), 01.01.2024")
	assert.Contains(t, text, "▫️ Ордер будет закрыт 10:30:00 (UTC+2), 01.01.2024")
	assert.Contains(t, text, "🔹 Мой курс: 41.2 (1.5%)")
	assert.Contains(t, text, "🔹 Курс биржи: 40.9")
}

func TestFormat_Appeal(t *testing.T) {
	event := core.Event{
		Kind:              core.EventAppeal,
		FiatAmount:        "200",
		Currency:          "UAH",
		PayType:           "iban",
		IBAN:              "UA213223130000026007233566001",
		RequisitesName:    "Privat",
		CardholderName:    "Олена",
		CardholderSurname: "Шевченко",
		OrderID:           "9",
		OrderDateCreated:  "01.01.2024 09:00:00",
		AppealDateCreated: "bad",
		AppealTimer:       "60",
		UTC:               "3",
	}

	text, err := Format(event)
	require.NoError(t, err)

	assert.Contains(t, text, "⚠️ Новая апелляция")
	assert.Contains(t, text, "🔸 Реквизиты: Privat IBAN Шевченко UA***6001, Олена Ш.")
	assert.Contains(t, text, "▫️ Ордер создан 09:00:00 (UTC+3), 01.01.2024")
	assert.Contains(t, text, "▫️ Апелляция создана ошибка (UTC+3), ошибка")
	assert.Contains(t, text, "▫️ Апелляция будет закрыта ошибка (UTC+3), ошибка")
	assert.NotContains(t, text, "Мой курс")
}

func TestFormat_EscapesUserInput(t *testing.T) {
	event := core.Event{
		Kind:           core.EventOrder,
		RequisitesName: "<b>Bank</b>",
		Currency:       "A&B",
	}

	text, err := Format(event)
	require.NoError(t, err)
	assert.Contains(t, text, "&lt;b&gt;Bank&lt;/b&gt;")
	assert.Contains(t, text, "A&amp;B")
	assert.Contains(t, text, "ID ордера: —")
}

func TestFormat_UnknownKind(t *testing.T) {
	_, err := Format(core.Event{Kind: "refund"})
	require.ErrorIs(t, err, core.ErrUnknownEventKind)
}
