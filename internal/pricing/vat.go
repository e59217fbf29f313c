package pricing

import (
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// EffectiveVat returns the VAT percentage to apply for a service. An
// exemption with ForceZeroVat always wins over the nominal rate, so a later
// edit of the nominal rate can never silently re-tax an exempted service.
func EffectiveVat(nominalPercent decimal.Decimal, exemption *catalogdomain.VatExemption) decimal.Decimal {
	if exemption != nil && exemption.ForceZeroVat {
		return decimal.Zero
	}
	return nominalPercent
}
