package domain

import (
	"regexp"
	"strings"

	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// Card brand constants.
const (
	CardBrandVisa       = "visa"
	CardBrandMastercard = "mastercard"
)

// PaymentMethodCash is the display name of the cash-on-delivery sentinel,
// selected when no saved card is chosen.
const PaymentMethodCash = "Cash on Delivery"

// expiryPattern matches MM/YY with the month in [01,12].
var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// PaymentCard is a saved card record. Only derived masked metadata is kept;
// the raw number, expiry, and CVV are never stored.
type PaymentCard struct {
	ID     int64  `json:"id"` // creation timestamp in unix milliseconds
	Brand  string `json:"brand"`
	Number string `json:"number"` // masked, e.g. "**** **** **** 1111"
}

// CardInput carries the raw card fields entered by the user. It exists only
// in memory for the duration of an AddCard call.
type CardInput struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv" validate:"required"`
}

// Validate checks the card fields and returns a user-facing error on the
// first failing rule. The rules match the storefront's add-card form: a
// 16-digit number after stripping separators, an MM/YY expiry, and a 4-digit
// CVV.
func (in CardInput) Validate() error {
	digits := stripSeparators(in.Number)
	if len(digits) != 16 || !isDigits(digits) {
		return apperrors.InvalidInput("card number must be 16 digits")
	}
	if !expiryPattern.MatchString(in.Expiry) {
		return apperrors.InvalidInput("expiry date must be in MM/YY format")
	}
	if len(in.CVV) != 4 || !isDigits(in.CVV) {
		return apperrors.InvalidInput("CVV must be 4 digits")
	}
	return nil
}

// DeriveCard builds the persisted card record from validated raw input:
// brand from the leading digit (5 => mastercard, anything else => visa; a
// display simplification, not BIN validation) and the masked number keeping
// the last four digits.
func (in CardInput) DeriveCard(id int64) PaymentCard {
	digits := stripSeparators(in.Number)

	brand := CardBrandVisa
	if strings.HasPrefix(digits, "5") {
		brand = CardBrandMastercard
	}

	return PaymentCard{
		ID:     id,
		Brand:  brand,
		Number: "**** **** **** " + digits[len(digits)-4:],
	}
}

func stripSeparators(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
