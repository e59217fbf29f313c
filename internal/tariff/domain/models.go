package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TariffStatus is the lifecycle state of a tariff document. The Turkish codes
// are wire/storage values carried over from the back office that owns them.
type TariffStatus string

const (
	StatusDraft      TariffStatus = "TASLAK"
	StatusActive     TariffStatus = "AKTIF"
	StatusSuperseded TariffStatus = "PASIF"
)

// TariffDocument is a dated, currency-denominated price list. It is mutable
// only while in TASLAK; PASIF documents are immutable history.
type TariffDocument struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Code      string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Currency  string       `json:"currency" gorm:"type:text;not null"`
	Status    TariffStatus `json:"status" gorm:"type:text;not null;index"`
	ValidFrom time.Time    `json:"valid_from" gorm:"type:date;not null"`
	ValidTo   *time.Time   `json:"valid_to,omitempty" gorm:"type:date"`
	Version   int32        `json:"version" gorm:"not null;default:1"`
	// Active mirrors Status == AKTIF as a query convenience.
	Active    bool      `json:"active" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TariffDocument) TableName() string { return "tariff_documents" }

func (d *TariffDocument) Validate() error {
	if d.ValidTo != nil && d.ValidTo.Before(d.ValidFrom) {
		return ErrInvalidValidity
	}
	return nil
}

// CoversDate reports whether the document's validity window contains day.
// An absent ValidTo means open-ended.
func (d *TariffDocument) CoversDate(day time.Time) bool {
	day = TruncateToDay(day)
	if day.Before(TruncateToDay(d.ValidFrom)) {
		return false
	}
	if d.ValidTo != nil && day.After(TruncateToDay(*d.ValidTo)) {
		return false
	}
	return true
}

// TariffItem is one service's price row inside a tariff document. The unit
// price is always expressed per 1 unit of the service's unit of measure. At
// most one item exists per (document, service) pair.
type TariffItem struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	TariffID  snowflake.ID    `json:"tariff_id" gorm:"column:tariff_id;not null;uniqueIndex:idx_tariff_service"`
	ServiceID snowflake.ID    `json:"service_id" gorm:"column:service_id;not null;uniqueIndex:idx_tariff_service"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(18,4);not null;default:0"`
	// Active=false withdraws the row from an otherwise active document.
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TariffItem) TableName() string { return "tariff_items" }

// TruncateToDay normalizes a timestamp to a UTC calendar date. Validity
// windows are date-granular.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
