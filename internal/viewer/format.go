package viewer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/account-viewer/internal/models"
)

const notAvailable = "N/A"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// FormatUSD renders a decimal string as en-US currency, e.g. -$1,234.50.
// Values that are not numbers are returned unchanged.
func FormatUSD(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return formatDecimalUSD(d)
}

func formatDecimalUSD(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SignedAmount prefixes the absolute amount with + for deposits and - otherwise.
func SignedAmount(tx models.Transaction) string {
	sign := "-"
	if tx.IsDeposit() {
		sign = "+"
	}
	d, err := decimal.NewFromString(strings.TrimSpace(tx.Amount))
	if err != nil {
		return sign + tx.Amount
	}
	return sign + formatDecimalUSD(d.Abs())
}

// AbsUSD formats the magnitude of amount, as the transaction detail panel does.
func AbsUSD(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return formatDecimalUSD(d.Abs())
}

func MaskAccountNumber(number string) string {
	if len(number) > 4 {
		number = number[len(number)-4:]
	}
	return "****" + number
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders timestamps as "Jan 2, 2006".
func FormatDate(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime renders timestamps as "Jan 2, 2006, 03:04 PM".
func FormatDateTime(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// TypeClass buckets a transaction type into the three badge styles.
func TypeClass(txType string) string {
	switch strings.ToLower(txType) {
	case models.TypeDeposit:
		return "deposit"
	case models.TypeWithdrawal:
		return "withdrawal"
	default:
		return "other"
	}
}

func orNA(s string, format func(string) string) string {
	if s == "" {
		return notAvailable
	}
	if format == nil {
		return s
	}
	return format(s)
}
