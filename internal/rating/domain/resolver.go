package domain

import (
	"time"

	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/pricing"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SelectDocument picks the single applicable tariff document for asOf: the
// one AKTIF document whose validity window covers the date. Zero matches is
// ErrNoPriceDefined, more than one is ErrAmbiguousTariff.
func SelectDocument(docs []tariffdomain.TariffDocument, asOf time.Time) (*tariffdomain.TariffDocument, error) {
	var selected *tariffdomain.TariffDocument
	for i := range docs {
		doc := &docs[i]
		if doc.Status != tariffdomain.StatusActive {
			continue
		}
		if !doc.CoversDate(asOf) {
			continue
		}
		if selected != nil {
			return nil, ErrAmbiguousTariff
		}
		selected = doc
	}
	if selected == nil {
		return nil, ErrNoPriceDefined
	}
	return selected, nil
}

// ResolveLine prices a quantity of a service against an already selected
// document and item. Pure: quantity is a billing-time input, never stored on
// the tariff.
func ResolveLine(
	doc tariffdomain.TariffDocument,
	item tariffdomain.TariffItem,
	rule *catalogdomain.PricingRule,
	nominalVatPercent decimal.Decimal,
	exemption *catalogdomain.VatExemption,
	quantity decimal.Decimal,
	asOf time.Time,
) (PricedLine, error) {
	if !item.Active {
		return PricedLine{}, ErrNoPriceDefined
	}

	preVat, err := pricing.PriceFor(rule, item.UnitPrice, quantity)
	if err != nil {
		return PricedLine{}, err
	}

	vatRate := pricing.EffectiveVat(nominalVatPercent, exemption)
	vatAmount := preVat.Mul(vatRate).Div(hundred)

	return PricedLine{
		TariffID:       doc.ID,
		TariffCode:     doc.Code,
		ServiceID:      item.ServiceID,
		Quantity:       quantity,
		UnitPrice:      item.UnitPrice,
		PreVatAmount:   preVat,
		VatRatePercent: vatRate,
		VatAmount:      vatAmount,
		Total:          preVat.Add(vatAmount),
		Currency:       doc.Currency,
		AsOf:           tariffdomain.TruncateToDay(asOf),
	}, nil
}
