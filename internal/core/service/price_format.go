package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.English)

// formatAveragePrice renders a mean price with thousands grouping and exactly
// two decimal places, e.g. "1,516,666.67". An average over zero rows reports
// the literal "N/A" instead of failing.
func formatAveragePrice(total int, avg float64) string {
	if total == 0 {
		return "N/A"
	}
	return pricePrinter.Sprintf("%v", number.Decimal(avg,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
