package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price for display with the peso glyph and thousands
// separators, e.g. 3490 => "₱ 3,490". Prices are stored as plain floats, not
// minor units, so fractional values are rendered as entered.
func FormatPrice(v float64) string {
	return pricePrinter.Sprintf("₱ %v", number.Decimal(v))
}
