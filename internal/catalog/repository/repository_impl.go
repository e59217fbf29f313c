package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"gorm.io/gorm"
)

type repository struct{}

func Provide() catalogdomain.Repository {
	return &repository{}
}

func (r *repository) FindServiceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Service, error) {
	var svc catalogdomain.Service
	err := db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repository) FindServiceByCode(ctx context.Context, db *gorm.DB, code string) (*catalogdomain.Service, error) {
	var svc catalogdomain.Service
	err := db.WithContext(ctx).Where("code = ?", code).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &svc, nil
}

func (r *repository) ListServices(ctx context.Context, db *gorm.DB, onlyActive bool) ([]catalogdomain.Service, error) {
	var items []catalogdomain.Service
	stmt := db.WithContext(ctx).Model(&catalogdomain.Service{})
	if onlyActive {
		stmt = stmt.Where("active = ?", true)
	}
	if err := stmt.Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindVatRateByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.VatRate, error) {
	var rate catalogdomain.VatRate
	err := db.WithContext(ctx).Where("id = ?", id).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *repository) ListVatRates(ctx context.Context, db *gorm.DB) ([]catalogdomain.VatRate, error) {
	var items []catalogdomain.VatRate
	if err := db.WithContext(ctx).Order("rate_percent ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindVatExemptionByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.VatExemption, error) {
	var exemption catalogdomain.VatExemption
	err := db.WithContext(ctx).Where("id = ?", id).First(&exemption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exemption, nil
}

func (r *repository) ListVatExemptions(ctx context.Context, db *gorm.DB) ([]catalogdomain.VatExemption, error) {
	var items []catalogdomain.VatExemption
	if err := db.WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindPricingRuleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.PricingRule, error) {
	var rule catalogdomain.PricingRule
	err := db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListPricingRules(ctx context.Context, db *gorm.DB) ([]catalogdomain.PricingRule, error) {
	var items []catalogdomain.PricingRule
	if err := db.WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) InsertService(ctx context.Context, db *gorm.DB, svc *catalogdomain.Service) error {
	return db.WithContext(ctx).Create(svc).Error
}

func (r *repository) InsertVatRate(ctx context.Context, db *gorm.DB, rate *catalogdomain.VatRate) error {
	return db.WithContext(ctx).Create(rate).Error
}

func (r *repository) InsertVatExemption(ctx context.Context, db *gorm.DB, exemption *catalogdomain.VatExemption) error {
	return db.WithContext(ctx).Create(exemption).Error
}

func (r *repository) InsertPricingRule(ctx context.Context, db *gorm.DB, rule *catalogdomain.PricingRule) error {
	return db.WithContext(ctx).Create(rule).Error
}
