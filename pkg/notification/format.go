package notification

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/raykavin/orderalert/pkg/core"
)

const (
	timestampLayout = "02.01.2006 15:04:05"
	timeLayout      = "15:04:05"
	dateLayout      = "02.01.2006"

	// Placeholder replaces a time or date that could not be computed
	Placeholder = "ошибка"
	missing     = "—"
)

// Stamp is a formatted time and date pair
type Stamp struct {
	Time string
	Date string
}

func (s Stamp) String() string { return s.Date + " " + s.Time }

// maxTimerMinutes is the largest timer a time.Duration can hold
const maxTimerMinutes = int(math.MaxInt64 / time.Minute)

var failedStamp = Stamp{Time: Placeholder, Date: Placeholder}

func newStamp(t time.Time) Stamp {
	return Stamp{Time: t.Format(timeLayout), Date: t.Format(dateLayout)}
}

// Schedule returns the creation stamp and the closing stamp (creation plus
// timer minutes). A malformed creation time fails both; a malformed timer
// fails only the closing stamp and a missing one counts as zero.
func Schedule(created, timer core.Field) (opened, closes Stamp) {
	start, err := time.Parse(timestampLayout, strings.TrimSpace(created.String()))
	if err != nil {
		return failedStamp, failedStamp
	}

	minutes := 0
	if strings.TrimSpace(timer.String()) != "" {
		minutes, err = timer.Int()
	}
	if err != nil || minutes > maxTimerMinutes || minutes < -maxTimerMinutes {
		return newStamp(start), failedStamp
	}

	return newStamp(start), newStamp(start.Add(time.Duration(minutes) * time.Minute))
}

func stampOf(raw core.Field) Stamp {
	t, err := time.Parse(timestampLayout, strings.TrimSpace(raw.String()))
	if err != nil {
		return failedStamp
	}
	return newStamp(t)
}

// Format renders the HTML alert for an order or appeal event
func Format(event core.Event) (string, error) {
	switch event.Kind {
	case core.EventOrder:
		return formatOrder(event), nil
	case core.EventAppeal:
		return formatAppeal(event), nil
	default:
		return "", fmt.Errorf("format %q: %w", event.Kind, core.ErrUnknownEventKind)
	}
}

func formatOrder(event core.Event) string {
	opened, closes := Schedule(event.OrderDateCreated, event.OrderTimer)
	utc := value(event.UTC)

	var sb strings.Builder
	sb.WriteString("💸 Новый ордер\n\n")
	fmt.Fprintf(&sb, "🔹 Сумма, фиат: %s %s\n", value(event.FiatAmount), value(event.Currency))
	fmt.Fprintf(&sb, "🔹 Реквизиты: %s\n", requisites(event))
	fmt.Fprintf(&sb, "🔹 Способ оплаты: %s\n\n", payType(event))
	fmt.Fprintf(&sb, "▫️ ID ордера: %s\n", value(event.OrderID))
	fmt.Fprintf(&sb, "▫️ Ордер создан %s (UTC+%s), %s\n", opened.Time, utc, opened.Date)
	fmt.Fprintf(&sb, "▫️ Ордер будет закрыт %s (UTC+%s), %s\n\n", closes.Time, utc, closes.Date)
	fmt.Fprintf(&sb, "🔹 Мой курс: %s (%s%%)\n", value(event.TraderRate), value(event.TraderFee))
	fmt.Fprintf(&sb, "🔹 Курс биржи: %s", value(event.ExchangeRate))
	return sb.String()
}

func formatAppeal(event core.Event) string {
	opened, closes := Schedule(event.AppealDateCreated, event.AppealTimer)
	order := stampOf(event.OrderDateCreated)
	utc := value(event.UTC)

	var sb strings.Builder
	sb.WriteString("⚠️ Новая апелляция\n\n")
	fmt.Fprintf(&sb, "🔸 Сумма, фиат: %s %s\n", value(event.FiatAmount), value(event.Currency))
	fmt.Fprintf(&sb, "🔸 Реквизиты: %s\n", requisites(event))
	fmt.Fprintf(&sb, "🔸 Способ оплаты: %s\n\n", payType(event))
	fmt.Fprintf(&sb, "▫️ ID ордера: %s\n", value(event.OrderID))
	fmt.Fprintf(&sb, "▫️ Ордер создан %s (UTC+%s), %s\n", order.Time, utc, order.Date)
	fmt.Fprintf(&sb, "▫️ Апелляция создана %s (UTC+%s), %s\n", opened.Time, utc, opened.Date)
	fmt.Fprintf(&sb, "▫️ Апелляция будет закрыта %s (UTC+%s), %s", closes.Time, utc, closes.Date)
	return sb.String()
}

// requisites renders the masked payment instrument:
// "<bank> IBAN <surname> UA***1234, <name> <S>." for IBAN payments and
// "<bank> <surname> *1234, <name> <S>." for cards.
func requisites(event core.Event) string {
	name := escape(event.RequisitesName)
	surname := escape(event.CardholderSurname)
	holder := escape(event.CardholderName)
	initial := html.EscapeString(firstRunes(event.CardholderSurname.String(), 1))

	if strings.EqualFold(event.PayType.String(), "iban") {
		return fmt.Sprintf("%s %s %s UA***%s, %s %s.",
			name, payType(event), surname, html.EscapeString(lastRunes(event.IBAN.String(), 4)), holder, initial)
	}

	return fmt.Sprintf("%s %s *%s, %s %s.",
		name, surname, html.EscapeString(lastRunes(event.CardNumber.String(), 4)), holder, initial)
}

func payType(event core.Event) string {
	return escape(core.Field(strings.ToUpper(event.PayType.String())))
}

func value(f core.Field) string {
	if strings.TrimSpace(f.String()) == "" {
		return missing
	}
	return escape(f)
}

func escape(f core.Field) string {
	return html.EscapeString(f.String())
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[len(r)-n:]
	}
	return string(r)
}
