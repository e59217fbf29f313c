package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.CatalogService {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetService(ctx context.Context, id string) (*catalogdomain.Service, error) {
	serviceID, err := parseID(id)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	svc, err := s.repo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, onlyActive bool) ([]catalogdomain.Service, error) {
	return s.repo.ListServices(ctx, s.db, onlyActive)
}

func (s *Service) ListVatRates(ctx context.Context) ([]catalogdomain.VatRate, error) {
	return s.repo.ListVatRates(ctx, s.db)
}

func (s *Service) ListVatExemptions(ctx context.Context) ([]catalogdomain.VatExemption, error) {
	return s.repo.ListVatExemptions(ctx, s.db)
}

func (s *Service) ListPricingRules(ctx context.Context) ([]catalogdomain.PricingRule, error) {
	return s.repo.ListPricingRules(ctx, s.db)
}

func (s *Service) CreateService(ctx context.Context, req catalogdomain.CreateServiceRequest) (*catalogdomain.Service, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}
	unit, err := parseUnit(req.Unit)
	if err != nil {
		return nil, err
	}

	vatRateID, err := parseID(req.VatRateID)
	if err != nil {
		return nil, catalogdomain.ErrInvalidVatRate
	}
	rate, err := s.repo.FindVatRateByID(ctx, s.db, vatRateID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, catalogdomain.ErrInvalidVatRate
	}

	exemptionID, err := s.resolveExemption(ctx, req.VatExemptionID)
	if err != nil {
		return nil, err
	}
	ruleID, err := s.resolveRule(ctx, req.PricingRuleID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	entity := &catalogdomain.Service{
		ID:             s.genID.Generate(),
		Code:           code,
		Name:           strings.TrimSpace(req.Name),
		Unit:           unit,
		VatRateID:      vatRateID,
		VatExemptionID: exemptionID,
		PricingRuleID:  ruleID,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.InsertService(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateCode
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) CreateVatRate(ctx context.Context, req catalogdomain.CreateVatRateRequest) (*catalogdomain.VatRate, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}
	if req.RatePercent.IsNegative() {
		return nil, catalogdomain.ErrInvalidVatRate
	}

	now := time.Now().UTC()
	entity := &catalogdomain.VatRate{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		RatePercent: req.RatePercent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.InsertVatRate(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateCode
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) CreateVatExemption(ctx context.Context, req catalogdomain.CreateVatExemptionRequest) (*catalogdomain.VatExemption, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}

	now := time.Now().UTC()
	entity := &catalogdomain.VatExemption{
		ID:           s.genID.Generate(),
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		ForceZeroVat: req.ForceZeroVat,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertVatExemption(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateCode
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) CreatePricingRule(ctx context.Context, req catalogdomain.CreatePricingRuleRequest) (*catalogdomain.PricingRule, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	entity := &catalogdomain.PricingRule{
		ID:              s.genID.Generate(),
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		CalculationType: catalogdomain.CalculationType(strings.ToUpper(strings.TrimSpace(string(req.CalculationType)))),
		MinQuantity:     req.MinQuantity,
		PackagePrice:    req.PackagePrice,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.InsertPricingRule(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateCode
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) resolveExemption(ctx context.Context, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := parseID(*raw)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	exemption, err := s.repo.FindVatExemptionByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if exemption == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return &id, nil
}

func (s *Service) resolveRule(ctx context.Context, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := parseID(*raw)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}
	rule, err := s.repo.FindPricingRuleByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return &id, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}

func parseUnit(value catalogdomain.Unit) (catalogdomain.Unit, error) {
	switch catalogdomain.Unit(strings.ToUpper(strings.TrimSpace(string(value)))) {
	case catalogdomain.UnitHour:
		return catalogdomain.UnitHour, nil
	case catalogdomain.UnitDay:
		return catalogdomain.UnitDay, nil
	case catalogdomain.UnitTon:
		return catalogdomain.UnitTon, nil
	case catalogdomain.UnitTrip:
		return catalogdomain.UnitTrip, nil
	case catalogdomain.UnitMeter:
		return catalogdomain.UnitMeter, nil
	case catalogdomain.UnitService:
		return catalogdomain.UnitService, nil
	default:
		return "", catalogdomain.ErrInvalidUnit
	}
}
