package domain

import "errors"

var (
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvalidCode            = errors.New("invalid_code")
	ErrInvalidUnit            = errors.New("invalid_unit")
	ErrInvalidVatRate         = errors.New("invalid_vat_rate")
	ErrInvalidCalculationType = errors.New("invalid_calculation_type")
	ErrInvalidMinQuantity     = errors.New("invalid_min_quantity")
	ErrMissingPackagePrice    = errors.New("missing_package_price")
	ErrInvalidPackagePrice    = errors.New("invalid_package_price")
	ErrNotFound               = errors.New("not_found")
	ErrDuplicateCode          = errors.New("duplicate_code")
)
