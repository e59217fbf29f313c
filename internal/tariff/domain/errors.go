package domain

import "errors"

var (
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvalidCurrency        = errors.New("invalid_currency")
	ErrInvalidValidity        = errors.New("invalid_validity")
	ErrInvalidState           = errors.New("invalid_state")
	ErrIncompletePricing      = errors.New("incomplete_pricing")
	ErrInvalidAdjustmentMode  = errors.New("invalid_adjustment_mode")
	ErrInvalidTargetStatus    = errors.New("invalid_target_status")
	ErrMissingAdjustmentValue = errors.New("missing_adjustment_value")
	ErrNegativeResultingPrice = errors.New("negative_resulting_price")
	ErrNotFound               = errors.New("not_found")
	ErrItemNotFound           = errors.New("item_not_found")
	ErrDuplicateCode          = errors.New("duplicate_code")
	ErrNotEditable            = errors.New("not_editable")
	ErrInvalidUnitPrice       = errors.New("invalid_unit_price")
)
