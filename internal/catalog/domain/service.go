package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogService exposes the catalog to HTTP handlers and to the engine.
type CatalogService interface {
	GetService(ctx context.Context, id string) (*Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]Service, error)
	ListVatRates(ctx context.Context) ([]VatRate, error)
	ListVatExemptions(ctx context.Context) ([]VatExemption, error)
	ListPricingRules(ctx context.Context) ([]PricingRule, error)

	CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error)
	CreateVatRate(ctx context.Context, req CreateVatRateRequest) (*VatRate, error)
	CreateVatExemption(ctx context.Context, req CreateVatExemptionRequest) (*VatExemption, error)
	CreatePricingRule(ctx context.Context, req CreatePricingRuleRequest) (*PricingRule, error)
}

type CreateServiceRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Unit           Unit    `json:"unit"`
	VatRateID      string  `json:"vat_rate_id"`
	VatExemptionID *string `json:"vat_exemption_id"`
	PricingRuleID  *string `json:"pricing_rule_id"`
	Active         *bool   `json:"active"`
}

type CreateVatRateRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

type CreateVatExemptionRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ForceZeroVat bool   `json:"force_zero_vat"`
}

type CreatePricingRuleRequest struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	CalculationType CalculationType  `json:"calculation_type"`
	MinQuantity     decimal.Decimal  `json:"min_quantity"`
	PackagePrice    *decimal.Decimal `json:"package_price"`
	Active          *bool            `json:"active"`
}
