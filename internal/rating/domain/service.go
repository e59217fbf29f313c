package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Resolve prices quantity units of a service as of a date against the
	// currently applicable tariff. Read-only and reproducible for audit.
	Resolve(ctx context.Context, req ResolveRequest) (*PricedLine, error)
}

type ResolveRequest struct {
	ServiceID string          `json:"service_id"`
	AsOf      time.Time       `json:"as_of"`
	Quantity  decimal.Decimal `json:"quantity"`
	// Currency narrows the tariff scope; defaults to the engine's default
	// currency when empty.
	Currency string `json:"currency"`
}
