package handler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// localeFormat captures the handful of presentation conventions that differ
// between the locales the seed accounts use. This is deliberately a small
// table, not a CLDR implementation: full internationalization is out of
// scope and unknown locales fall back to the European conventions.
type localeFormat struct {
	dateLayout   string
	decimalSep   string
	groupSep     string
	symbolPrefix bool // symbol before the number, no space
}

var localeFormats = map[string]localeFormat{
	"en-US": {dateLayout: "1/2/2006", decimalSep: ".", groupSep: ",", symbolPrefix: true},
	"en-GB": {dateLayout: "02/01/2006", decimalSep: ".", groupSep: ",", symbolPrefix: true},
	"pt-PT": {dateLayout: "02/01/2006", decimalSep: ",", groupSep: "."},
	"de-DE": {dateLayout: "2.1.2006", decimalSep: ",", groupSep: "."},
}

var defaultLocaleFormat = localeFormat{dateLayout: "02/01/2006", decimalSep: ",", groupSep: "."}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"NOK": "kr",
}

func formatFor(locale string) localeFormat {
	if f, ok := localeFormats[locale]; ok {
		return f
	}
	return defaultLocaleFormat
}

// FormatMovementDate renders a movement timestamp the way the account list
// shows it: "Today", "Yesterday", "N days ago" for up to a week, and a
// locale calendar date beyond that. Elapsed days are the rounded absolute
// distance between now and the movement, in 24h units.
func FormatMovementDate(date, now time.Time, locale string) string {
	days := int(math.Round(math.Abs(now.Sub(date).Hours()) / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return date.Format(formatFor(locale).dateLayout)
	}
}

// FormatAmount renders a monetary value with the locale's separators and
// the currency's symbol, e.g. "$1,234.56" for en-US/USD and "1.234,56 €"
// for pt-PT/EUR
func FormatAmount(value decimal.Decimal, locale, currency string) string {
	f := formatFor(locale)

	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}

	fixed := value.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if value.IsNegative() {
		b.WriteString("-")
	}
	if f.symbolPrefix {
		b.WriteString(symbol)
	}
	b.WriteString(groupDigits(intPart, f.groupSep))
	b.WriteString(f.decimalSep)
	b.WriteString(fracPart)
	if !f.symbolPrefix {
		b.WriteString(" ")
		b.WriteString(symbol)
	}
	return b.String()
}

// groupDigits inserts the locale's thousands separator into an unsigned
// integer string
func groupDigits(digits, sep string) string {
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
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
