package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence view of the service catalog. The pricing
// engine only reads it; writes exist for bootstrap and maintenance.
type Repository interface {
	FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	FindServiceByCode(ctx context.Context, db *gorm.DB, code string) (*Service, error)
	ListServices(ctx context.Context, db *gorm.DB, onlyActive bool) ([]Service, error)

	FindVatRateByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VatRate, error)
	ListVatRates(ctx context.Context, db *gorm.DB) ([]VatRate, error)

	FindVatExemptionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VatExemption, error)
	ListVatExemptions(ctx context.Context, db *gorm.DB) ([]VatExemption, error)

	FindPricingRuleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingRule, error)
	ListPricingRules(ctx context.Context, db *gorm.DB) ([]PricingRule, error)

	InsertService(ctx context.Context, db *gorm.DB, svc *Service) error
	InsertVatRate(ctx context.Context, db *gorm.DB, rate *VatRate) error
	InsertVatExemption(ctx context.Context, db *gorm.DB, exemption *VatExemption) error
	InsertPricingRule(ctx context.Context, db *gorm.DB, rule *PricingRule) error
}
