package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCurrency is used when no known symbol appears in the text.
const DefaultCurrency = "USD"

var (
	symbolFareRe = regexp.MustCompile(`[₹€£$]\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	bareFareRe   = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)
)

var symbolByCurrency = map[string]string{
	"INR": "₹",
	"EUR": "€",
	"GBP": "£",
	"USD": "$",
}

// ParseFare extracts a numeric amount and currency code from a free-text
// fare or description string, e.g. "₹84.38" or "16 Nov • ₹84.38". A
// symbol-prefixed number wins over any earlier bare digit run, so date
// fragments in activity subtitles never masquerade as the fare; a bare run
// only counts when no symbol-anchored amount exists. Malformed input is not
// an error: amount falls back to 0 and currency to DefaultCurrency. Symbol
// detection scans the whole string and is independent of the amount match.
func ParseFare(text string) (float64, string) {
	raw := ""
	if m := symbolFareRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else {
		raw = bareFareRe.FindString(text)
	}

	amount := 0.0
	if raw != "" {
		cleaned := strings.ReplaceAll(raw, ",", "")
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil && v >= 0 {
			amount = v
		}
	}

	currency := DefaultCurrency
	switch {
	case strings.Contains(text, "₹"):
		currency = "INR"
	case strings.Contains(text, "€"):
		currency = "EUR"
	case strings.Contains(text, "£"):
		currency = "GBP"
	}
	return amount, currency
}

// CurrencySymbol maps an ISO code from the closed set back to its symbol.
// Unknown codes render as the dollar sign.
func CurrencySymbol(code string) string {
	if s, ok := symbolByCurrency[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return s
	}
	return "$"
}

// FormatMoney keeps consistent two-decimal formatting for amount fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatMoneyWithSymbol renders an amount prefixed with its currency symbol,
// e.g. "₹204.38".
func FormatMoneyWithSymbol(amount float64, currency string) string {
	return CurrencySymbol(currency) + FormatMoney(amount)
}
