package shared

import "github.com/shopspring/decimal"

// MoneyPlaces is the scale of every stored quantity, price and rate.
// Inputs beyond it are rejected and derived amounts are rounded to it.
const MoneyPlaces = 4

var hundred = decimal.NewFromInt(100)

// Percent returns base * rate / 100 rounded to MoneyPlaces
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred).Round(MoneyPlaces)
}

// RequireScale returns ErrValidation naming field when d carries more than
// MoneyPlaces significant decimals. Trailing zeros are ignored.
func RequireScale(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(MoneyPlaces)) {
		return Errorf(ErrValidation, "%s cannot have more than %d decimal places", field, MoneyPlaces)
	}
	return nil
}

// RequireNonNegative returns ErrValidation naming field when d is negative
// or exceeds MoneyPlaces
func RequireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return Errorf(ErrValidation, "%s cannot be negative", field)
	}
	return RequireScale(field, d)
}

// RequirePositive returns ErrValidation naming field when d is not above zero
// or exceeds MoneyPlaces
func RequirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return Errorf(ErrValidation, "%s must be greater than zero", field)
	}
	return RequireScale(field, d)
}
