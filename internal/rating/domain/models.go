package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidDate = errors.New("invalid_date")
	// ErrNoPriceDefined is an expected, recoverable outcome: the service has
	// no usable price at the date (new service, withdrawn item, no active
	// tariff). Distinct from ErrAmbiguousTariff, which is a data defect.
	ErrNoPriceDefined = errors.New("no_price_defined")
	// ErrAmbiguousTariff means more than one AKTIF document covers the date
	// for the scope. The lifecycle is designed to prevent this; the resolver
	// defends against it instead of silently picking one.
	ErrAmbiguousTariff = errors.New("ambiguous_tariff")
)

// PricedLine is the fully priced output for one billable line. Resolution is
// reproducible: the same date, quantity and document set always yield the
// same line.
type PricedLine struct {
	TariffID       snowflake.ID    `json:"tariff_id"`
	TariffCode     string          `json:"tariff_code"`
	ServiceID      snowflake.ID    `json:"service_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	PreVatAmount   decimal.Decimal `json:"pre_vat_amount"`
	VatRatePercent decimal.Decimal `json:"vat_rate_percent"`
	VatAmount      decimal.Decimal `json:"vat_amount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	AsOf           time.Time       `json:"as_of"`
}
