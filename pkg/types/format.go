package types

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a whole currency amount with digit grouping,
// e.g. "NGN 1,300,000". Display only.
func FormatPrice(currency string, price float64) string {
	return pricePrinter.Sprintf("%s %d", currency, int64(math.Round(price)))
}
