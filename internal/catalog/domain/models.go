package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CalculationType selects how a pricing rule charges a quantity.
type CalculationType string

const (
	// Standard is plain unit price times quantity.
	Standard CalculationType = "STANDARD"
	// PackagePlusOverage charges a flat package price up to MinQuantity and
	// meters the excess at the unit price.
	PackagePlusOverage CalculationType = "PACKAGE_PLUS_OVERAGE"
)

// Unit is the unit of measure a service is billed in.
type Unit string

const (
	UnitHour    Unit = "HOUR"
	UnitDay     Unit = "DAY"
	UnitTon     Unit = "TON"
	UnitTrip    Unit = "TRIP"
	UnitMeter   Unit = "METER"
	UnitService Unit = "SERVICE"
)

// VatRate is a named VAT percentage. Immutable once referenced by a service.
type VatRate struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code        string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"type:text;not null"`
	RatePercent decimal.Decimal `json:"rate_percent" gorm:"type:numeric(6,2);not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (VatRate) TableName() string { return "vat_rates" }

// VatExemption is a catalog-level VAT override. When ForceZeroVat is set the
// effective VAT of a service is zero regardless of its nominal rate.
type VatExemption struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Code         string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name         string       `json:"name" gorm:"type:text;not null"`
	ForceZeroVat bool         `json:"force_zero_vat" gorm:"column:force_zero_vat;not null;default:false"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (VatExemption) TableName() string { return "vat_exemptions" }

// PricingRule describes non-linear charging attachable to a service.
// MinQuantity is informational for STANDARD rules; PackagePrice applies only
// to PACKAGE_PLUS_OVERAGE and is the flat charge for any quantity at or below
// MinQuantity.
type PricingRule struct {
	ID              snowflake.ID     `json:"id" gorm:"primaryKey"`
	Code            string           `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name            string           `json:"name" gorm:"type:text;not null"`
	CalculationType CalculationType  `json:"calculation_type" gorm:"type:text;not null"`
	MinQuantity     decimal.Decimal  `json:"min_quantity" gorm:"type:numeric(18,4);not null;default:0"`
	PackagePrice    *decimal.Decimal `json:"package_price,omitempty" gorm:"type:numeric(18,4)"`
	Active          bool             `json:"active" gorm:"not null;default:true"`
	CreatedAt       time.Time        `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

// Validate rejects malformed rules at construction time so that evaluation
// is total over stored rules.
func (r *PricingRule) Validate() error {
	switch r.CalculationType {
	case Standard:
	case PackagePlusOverage:
		if r.PackagePrice == nil {
			return ErrMissingPackagePrice
		}
		if r.PackagePrice.IsNegative() {
			return ErrInvalidPackagePrice
		}
	default:
		return ErrInvalidCalculationType
	}
	if r.MinQuantity.IsNegative() {
		return ErrInvalidMinQuantity
	}
	return nil
}

// Service is a billable offering. Owned by the service catalog; the pricing
// engine treats it as read-only input.
type Service struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	Code           string        `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name           string        `json:"name" gorm:"type:text;not null"`
	Unit           Unit          `json:"unit" gorm:"type:text;not null"`
	VatRateID      snowflake.ID  `json:"vat_rate_id" gorm:"column:vat_rate_id;not null;index"`
	VatExemptionID *snowflake.ID `json:"vat_exemption_id,omitempty" gorm:"column:vat_exemption_id;index"`
	PricingRuleID  *snowflake.ID `json:"pricing_rule_id,omitempty" gorm:"column:pricing_rule_id;index"`
	Active         bool          `json:"active" gorm:"not null;default:true"`
	CreatedAt      time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Service) TableName() string { return "services" }
