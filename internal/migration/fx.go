package migration

import (
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/config"
	"github.com/limanops/tarife/internal/seed"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			err := conn.AutoMigrate(
				&catalogdomain.VatRate{},
				&catalogdomain.VatExemption{},
				&catalogdomain.PricingRule{},
				&catalogdomain.Service{},
				&tariffdomain.TariffDocument{},
				&tariffdomain.TariffItem{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.SeedCatalog {
			return seed.EnsureDefaultCatalog(conn)
		}
		return nil
	}),
)
