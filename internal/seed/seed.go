package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnsureDefaultCatalog seeds the standard Turkish VAT rates and the NONE and
// EXPORT exemptions so a fresh install can price services immediately.
// Idempotent: existing codes are left untouched.
func EnsureDefaultCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureVatRates(ctx, tx, node); err != nil {
			return err
		}
		return ensureVatExemptions(ctx, tx, node)
	})
}

func ensureVatRates(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	defaults := []struct {
		code string
		name string
		rate string
	}{
		{"KDV20", "KDV %20", "20"},
		{"KDV10", "KDV %10", "10"},
		{"KDV0", "KDV %0", "0"},
	}

	for _, d := range defaults {
		var existing catalogdomain.VatRate
		err := tx.WithContext(ctx).Where("code = ?", d.code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		rate := catalogdomain.VatRate{
			ID:          node.Generate(),
			Code:        d.code,
			Name:        d.name,
			RatePercent: decimal.RequireFromString(d.rate),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&rate).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureVatExemptions(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	defaults := []struct {
		code      string
		name      string
		forceZero bool
	}{
		{"NONE", "İstisna yok", false},
		{"EXPORT", "İhracat istisnası", true},
	}

	for _, d := range defaults {
		var existing catalogdomain.VatExemption
		err := tx.WithContext(ctx).Where("code = ?", d.code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		exemption := catalogdomain.VatExemption{
			ID:           node.Generate(),
			Code:         d.code,
			Name:         d.name,
			ForceZeroVat: d.forceZero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.WithContext(ctx).Create(&exemption).Error; err != nil {
			return err
		}
	}
	return nil
}
