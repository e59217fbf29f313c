package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/config"
	"github.com/limanops/tarife/internal/observability"
	ratingdomain "github.com/limanops/tarife/internal/rating/domain"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	EngineCfg   *config.EngineConfigHolder
	Metrics     *observability.Metrics
	Repo        tariffdomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	engineCfg   *config.EngineConfigHolder
	metrics     *observability.Metrics
	repo        tariffdomain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) ratingdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("rating.service"),
		engineCfg:   p.EngineCfg,
		metrics:     p.Metrics,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Resolve(ctx context.Context, req ratingdomain.ResolveRequest) (*ratingdomain.PricedLine, error) {
	timer := s.metrics.NewResolveTimer()
	line, err := s.resolve(ctx, req)
	timer.ObserveDuration()
	s.metrics.ResolveTotal.WithLabelValues(resolveOutcome(err)).Inc()
	return line, err
}

func (s *Service) resolve(ctx context.Context, req ratingdomain.ResolveRequest) (*ratingdomain.PricedLine, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceID))
	if err != nil {
		return nil, ratingdomain.ErrInvalidID
	}
	if req.AsOf.IsZero() {
		return nil, ratingdomain.ErrInvalidDate
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.engineCfg.Get().DefaultCurrency
	}

	svc, err := s.catalogRepo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, catalogdomain.ErrNotFound
	}

	vatRate, err := s.catalogRepo.FindVatRateByID(ctx, s.db, svc.VatRateID)
	if err != nil {
		return nil, err
	}
	if vatRate == nil {
		return nil, catalogdomain.ErrInvalidVatRate
	}

	var exemption *catalogdomain.VatExemption
	if svc.VatExemptionID != nil {
		exemption, err = s.catalogRepo.FindVatExemptionByID(ctx, s.db, *svc.VatExemptionID)
		if err != nil {
			return nil, err
		}
	}

	var rule *catalogdomain.PricingRule
	if svc.PricingRuleID != nil {
		rule, err = s.catalogRepo.FindPricingRuleByID(ctx, s.db, *svc.PricingRuleID)
		if err != nil {
			return nil, err
		}
	}

	docs, err := s.repo.ListActiveByCurrency(ctx, s.db, currency)
	if err != nil {
		return nil, err
	}
	doc, err := ratingdomain.SelectDocument(docs, req.AsOf)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, s.db, doc.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ratingdomain.ErrNoPriceDefined
	}

	line, err := ratingdomain.ResolveLine(
		*doc, *item, rule, vatRate.RatePercent, exemption, req.Quantity, req.AsOf)
	if err != nil {
		return nil, err
	}

	s.log.Debug("price resolved",
		zap.String("service_id", serviceID.String()),
		zap.String("tariff_code", line.TariffCode),
		zap.String("total", line.Total.String()),
	)
	return &line, nil
}

func resolveOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ratingdomain.ErrNoPriceDefined):
		return "no_price_defined"
	case errors.Is(err, ratingdomain.ErrAmbiguousTariff):
		return "ambiguous_tariff"
	default:
		return "error"
	}
}
