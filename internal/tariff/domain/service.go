package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*TariffDocument, error)
	Get(ctx context.Context, id string) (*DocumentWithItems, error)
	List(ctx context.Context, filter ListFilter) ([]TariffDocument, error)

	// PutItem inserts or updates the single item for (tariff, service).
	// Only TASLAK documents are editable.
	PutItem(ctx context.Context, tariffID string, req PutItemRequest) (*TariffItem, error)

	// Approve runs the lifecycle transition and persists the approved and the
	// superseded document atomically.
	Approve(ctx context.Context, tariffID string, req ApproveRequest) (*ApproveResult, error)
	Discard(ctx context.Context, tariffID string) (*TariffDocument, error)
	Retire(ctx context.Context, tariffID string, req RetireRequest) (*TariffDocument, error)

	// Derive builds and persists a new TASLAK document from a source tariff
	// with a bulk price adjustment. It never publishes the result.
	Derive(ctx context.Context, sourceID string, req DeriveRequest) (*DocumentWithItems, error)
}

type CreateDraftRequest struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Currency  string     `json:"currency"`
	ValidFrom time.Time  `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}

type PutItemRequest struct {
	ServiceID string          `json:"service_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    *bool           `json:"active"`
}

type ApproveRequest struct {
	EffectiveDate time.Time `json:"effective_date"`
}

type RetireRequest struct {
	EndDate time.Time `json:"end_date"`
}

type DeriveRequest struct {
	Adjustment Adjustment `json:"adjustment"`
	ValidFrom  time.Time  `json:"valid_from"`
	ValidTo    *time.Time `json:"valid_to"`
	// TargetStatus records whether the derived draft is meant to go live
	// (AKTIF) or stay a working copy (TASLAK, the default). Publication
	// itself always happens through a separate approval.
	TargetStatus TariffStatus `json:"target_status"`
}

type DocumentWithItems struct {
	Document TariffDocument `json:"document"`
	Items    []TariffItem   `json:"items"`
}
