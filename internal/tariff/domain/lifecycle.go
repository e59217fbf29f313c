package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ApproveResult carries both documents touched by an approval so the caller
// can persist them inside a single transaction. Partial application would
// break the one-active-document-per-scope invariant and must never be
// observable.
type ApproveResult struct {
	Approved   TariffDocument  `json:"approved"`
	Superseded *TariffDocument `json:"superseded,omitempty"`
}

// Approve transitions a TASLAK document to AKTIF, superseding the
// caller-supplied currently active document for the same scope (if any).
// Pure: inputs are copied, nothing is persisted here.
//
// Preconditions enforced:
//   - doc must be TASLAK (ErrInvalidState otherwise)
//   - every active item priced for an active service must have a unit
//     price > 0 (ErrIncompletePricing otherwise); inactive services do not
//     block approval since their pricing is immaterial while inactive
//
// Scope matching (which document "current" is) is the caller's
// responsibility; this function performs the transition, not the lookup.
func Approve(
	doc TariffDocument,
	items []TariffItem,
	activeServices map[snowflake.ID]bool,
	effectiveDate time.Time,
	current *TariffDocument,
	now time.Time,
) (ApproveResult, error) {
	if doc.Status != StatusDraft {
		return ApproveResult{}, ErrInvalidState
	}

	for _, item := range items {
		if !item.Active {
			continue
		}
		if !activeServices[item.ServiceID] {
			continue
		}
		if !item.UnitPrice.IsPositive() {
			return ApproveResult{}, ErrIncompletePricing
		}
	}

	effectiveDate = TruncateToDay(effectiveDate)

	doc.Status = StatusActive
	doc.Active = true
	if doc.ValidFrom.IsZero() {
		doc.ValidFrom = effectiveDate
	}
	doc.UpdatedAt = now

	if err := doc.Validate(); err != nil {
		return ApproveResult{}, err
	}

	result := ApproveResult{Approved: doc}

	if current != nil && current.ID != doc.ID {
		superseded := *current
		superseded.Status = StatusSuperseded
		superseded.Active = false
		// Windows must never overlap: the old document ends the day before
		// the new one starts.
		end := effectiveDate.AddDate(0, 0, -1)
		superseded.ValidTo = &end
		superseded.UpdatedAt = now
		// An effective date before the current document's start would close
		// it on an inverted window.
		if err := superseded.Validate(); err != nil {
			return ApproveResult{}, err
		}
		result.Superseded = &superseded
	}

	return result, nil
}

// Discard retires a draft that never became active. TASLAK -> PASIF.
func Discard(doc TariffDocument, now time.Time) (TariffDocument, error) {
	if doc.Status != StatusDraft {
		return TariffDocument{}, ErrInvalidState
	}
	doc.Status = StatusSuperseded
	doc.Active = false
	doc.UpdatedAt = now
	return doc, nil
}

// Retire explicitly closes an active document. AKTIF -> PASIF. PASIF is
// terminal; nothing transitions out of it.
func Retire(doc TariffDocument, endDate time.Time, now time.Time) (TariffDocument, error) {
	if doc.Status != StatusActive {
		return TariffDocument{}, ErrInvalidState
	}
	end := TruncateToDay(endDate)
	if end.Before(TruncateToDay(doc.ValidFrom)) {
		return TariffDocument{}, ErrInvalidValidity
	}
	doc.Status = StatusSuperseded
	doc.Active = false
	doc.ValidTo = &end
	doc.UpdatedAt = now
	return doc, nil
}
