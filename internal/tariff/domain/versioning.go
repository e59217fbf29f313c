package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// AdjustmentMode selects how unit prices are carried into a derived tariff.
type AdjustmentMode string

const (
	AdjustPercentage AdjustmentMode = "PERCENTAGE"
	AdjustFixed      AdjustmentMode = "FIXED"
	// AdjustManual copies prices unchanged; the caller edits them afterward.
	AdjustManual AdjustmentMode = "MANUAL"
)

type Adjustment struct {
	Mode  AdjustmentMode   `json:"mode"`
	Value *decimal.Decimal `json:"value,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Derive builds a new TASLAK tariff document from source, copying every item
// with the adjustment applied. The source is never mutated and derivation
// never publishes: targetStatus names the intended outcome (it flows into the
// derived name, and AKTIF obliges the caller to approve afterward), but even
// a tariff meant to go live immediately comes out as a draft, so that
// "create" and "approve" stay independently retryable.
//
// Fails atomically: any error yields no document and no items.
func Derive(
	genID *snowflake.Node,
	source TariffDocument,
	sourceItems []TariffItem,
	adjustment Adjustment,
	codePrefix string,
	validFrom time.Time,
	validTo *time.Time,
	targetStatus TariffStatus,
	now time.Time,
) (TariffDocument, []TariffItem, error) {
	if targetStatus == "" {
		targetStatus = StatusDraft
	}
	if targetStatus != StatusDraft && targetStatus != StatusActive {
		return TariffDocument{}, nil, ErrInvalidTargetStatus
	}
	validFrom = TruncateToDay(validFrom)
	if validTo != nil {
		end := TruncateToDay(*validTo)
		if end.Before(validFrom) {
			return TariffDocument{}, nil, ErrInvalidValidity
		}
		validTo = &end
	}

	switch adjustment.Mode {
	case AdjustPercentage, AdjustFixed:
		if adjustment.Value == nil {
			return TariffDocument{}, nil, ErrMissingAdjustmentValue
		}
	case AdjustManual:
	default:
		return TariffDocument{}, nil, ErrInvalidAdjustmentMode
	}

	doc := TariffDocument{
		ID:        genID.Generate(),
		Code:      fmt.Sprintf("%s-%s", codePrefix, validFrom.Format("20060102")),
		Name:      fmt.Sprintf("%s (%s, %s)", source.Name, validFrom.Format("2006-01-02"), targetStatus),
		Currency:  source.Currency,
		Status:    StatusDraft,
		ValidFrom: validFrom,
		ValidTo:   validTo,
		Version:   source.Version + 1,
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]TariffItem, 0, len(sourceItems))
	for _, src := range sourceItems {
		newPrice, err := adjustPrice(src.UnitPrice, adjustment)
		if err != nil {
			return TariffDocument{}, nil, err
		}
		items = append(items, TariffItem{
			ID:        genID.Generate(),
			TariffID:  doc.ID,
			ServiceID: src.ServiceID,
			UnitPrice: newPrice,
			Active:    src.Active,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return doc, items, nil
}

func adjustPrice(old decimal.Decimal, adjustment Adjustment) (decimal.Decimal, error) {
	var adjusted decimal.Decimal
	switch adjustment.Mode {
	case AdjustPercentage:
		factor := decimal.NewFromInt(1).Add(adjustment.Value.Div(hundred))
		adjusted = old.Mul(factor)
	case AdjustFixed:
		adjusted = old.Add(*adjustment.Value)
	case AdjustManual:
		adjusted = old
	}
	if adjusted.IsNegative() {
		return decimal.Zero, ErrNegativeResultingPrice
	}
	return adjusted, nil
}
