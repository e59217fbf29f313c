// Package pricing holds the pure calculation rules of the tariff engine:
// pre-VAT amount evaluation and effective-VAT resolution. Nothing in here
// touches storage or the clock; same inputs always produce the same output,
// which is what lets a billing period be re-rated without drift.
package pricing

import (
	"errors"

	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("invalid_quantity")

// PriceFor computes the pre-VAT amount for quantity units at unitPrice under
// rule. A nil rule means plain linear pricing. Rules are assumed validated at
// construction (PricingRule.Validate); evaluation is total over valid rules.
func PriceFor(rule *catalogdomain.PricingRule, unitPrice, quantity decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, ErrInvalidQuantity
	}

	if rule == nil || rule.CalculationType == catalogdomain.Standard {
		return unitPrice.Mul(quantity), nil
	}

	// PACKAGE_PLUS_OVERAGE: flat package price covers everything up to the
	// minimum; unused capacity inside the package is not refunded.
	packagePrice := decimal.Zero
	if rule.PackagePrice != nil {
		packagePrice = *rule.PackagePrice
	}
	if quantity.LessThanOrEqual(rule.MinQuantity) {
		return packagePrice, nil
	}

	overage := quantity.Sub(rule.MinQuantity)
	return packagePrice.Add(unitPrice.Mul(overage)), nil
}
