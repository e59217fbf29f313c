package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/clock"
	"github.com/limanops/tarife/internal/config"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"github.com/limanops/tarife/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	EngineCfg   *config.EngineConfigHolder
	Repo        tariffdomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	engineCfg   *config.EngineConfigHolder
	repo        tariffdomain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) tariffdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("tariff.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		engineCfg:   p.EngineCfg,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) CreateDraft(ctx context.Context, req tariffdomain.CreateDraftRequest) (*tariffdomain.TariffDocument, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, tariffdomain.ErrInvalidID
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.engineCfg.Get().DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, tariffdomain.ErrInvalidCurrency
	}

	now := s.clock.Now()
	doc := &tariffdomain.TariffDocument{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		Currency:  currency,
		Status:    tariffdomain.StatusDraft,
		ValidFrom: tariffdomain.TruncateToDay(req.ValidFrom),
		Version:   1,
		Active:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ValidTo != nil {
		end := tariffdomain.TruncateToDay(*req.ValidTo)
		doc.ValidTo = &end
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.InsertDocument(ctx, s.db, doc); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, tariffdomain.ErrDuplicateCode
		}
		return nil, err
	}
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*tariffdomain.DocumentWithItems, error) {
	doc, err := s.loadDocument(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, s.db, doc.ID)
	if err != nil {
		return nil, err
	}
	return &tariffdomain.DocumentWithItems{Document: *doc, Items: items}, nil
}

func (s *Service) List(ctx context.Context, filter tariffdomain.ListFilter) ([]tariffdomain.TariffDocument, error) {
	return s.repo.ListDocuments(ctx, s.db, filter)
}

func (s *Service) PutItem(ctx context.Context, tariffID string, req tariffdomain.PutItemRequest) (*tariffdomain.TariffItem, error) {
	doc, err := s.loadDocument(ctx, s.db, tariffID)
	if err != nil {
		return nil, err
	}
	if doc.Status != tariffdomain.StatusDraft {
		return nil, tariffdomain.ErrNotEditable
	}

	serviceID, err := parseID(req.ServiceID)
	if err != nil {
		return nil, tariffdomain.ErrInvalidID
	}
	svc, err := s.catalogRepo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, catalogdomain.ErrNotFound
	}
	if req.UnitPrice.IsNegative() {
		return nil, tariffdomain.ErrInvalidUnitPrice
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now()
	item := &tariffdomain.TariffItem{
		ID:        s.genID.Generate(),
		TariffID:  doc.ID,
		ServiceID: serviceID,
		UnitPrice: req.UnitPrice,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertItem(ctx, s.db, item); err != nil {
		return nil, err
	}

	// On the update path the conflict clause keeps the existing row's ID;
	// re-read so the response reflects the stored row.
	stored, err := s.repo.FindItem(ctx, s.db, doc.ID, serviceID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, tariffdomain.ErrItemNotFound
	}
	return stored, nil
}

func (s *Service) Approve(ctx context.Context, tariffID string, req tariffdomain.ApproveRequest) (*tariffdomain.ApproveResult, error) {
	effective := req.EffectiveDate
	if effective.IsZero() {
		effective = s.clock.Now()
	}

	var result tariffdomain.ApproveResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(ctx, tx, tariffID)
		if err != nil {
			return err
		}
		items, err := s.repo.ListItems(ctx, tx, doc.ID)
		if err != nil {
			return err
		}
		activeServices, err := s.activeServiceIDs(ctx, tx)
		if err != nil {
			return err
		}
		current, err := s.currentActiveForScope(ctx, tx, doc)
		if err != nil {
			return err
		}

		result, err = tariffdomain.Approve(*doc, items, activeServices, effective, current, s.clock.Now())
		if err != nil {
			return err
		}

		// Both updates commit or neither does; readers must never observe
		// two AKTIF documents for the scope.
		if err := s.repo.UpdateDocument(ctx, tx, &result.Approved); err != nil {
			return err
		}
		if result.Superseded != nil {
			if err := s.repo.UpdateDocument(ctx, tx, result.Superseded); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tariff approved",
		zap.String("tariff_id", result.Approved.ID.String()),
		zap.String("code", result.Approved.Code),
		zap.Bool("superseded", result.Superseded != nil),
	)
	return &result, nil
}

func (s *Service) Discard(ctx context.Context, tariffID string) (*tariffdomain.TariffDocument, error) {
	var out tariffdomain.TariffDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(ctx, tx, tariffID)
		if err != nil {
			return err
		}
		out, err = tariffdomain.Discard(*doc, s.clock.Now())
		if err != nil {
			return err
		}
		return s.repo.UpdateDocument(ctx, tx, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Retire(ctx context.Context, tariffID string, req tariffdomain.RetireRequest) (*tariffdomain.TariffDocument, error) {
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = s.clock.Now()
	}

	var out tariffdomain.TariffDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(ctx, tx, tariffID)
		if err != nil {
			return err
		}
		out, err = tariffdomain.Retire(*doc, endDate, s.clock.Now())
		if err != nil {
			return err
		}
		return s.repo.UpdateDocument(ctx, tx, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Derive(ctx context.Context, sourceID string, req tariffdomain.DeriveRequest) (*tariffdomain.DocumentWithItems, error) {
	var out tariffdomain.DocumentWithItems
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.loadDocument(ctx, tx, sourceID)
		if err != nil {
			return err
		}
		sourceItems, err := s.repo.ListItems(ctx, tx, source.ID)
		if err != nil {
			return err
		}

		doc, items, err := tariffdomain.Derive(
			s.genID,
			*source,
			sourceItems,
			req.Adjustment,
			s.engineCfg.Get().CodePrefix,
			req.ValidFrom,
			req.ValidTo,
			req.TargetStatus,
			s.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err := s.repo.InsertDocument(ctx, tx, &doc); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return tariffdomain.ErrDuplicateCode
			}
			return err
		}
		if err := s.repo.InsertItems(ctx, tx, items); err != nil {
			return err
		}
		out = tariffdomain.DocumentWithItems{Document: doc, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tariff derived",
		zap.String("source_id", sourceID),
		zap.String("new_code", out.Document.Code),
		zap.String("mode", string(req.Adjustment.Mode)),
		zap.Int("items", len(out.Items)),
	)
	return &out, nil
}

// currentActiveForScope picks the document this approval supersedes. Scope is
// the tariff's currency; when history is dirty and several AKTIF documents
// exist, the most recent one wins and the rest surface later as
// ambiguous_tariff at resolution time.
func (s *Service) currentActiveForScope(ctx context.Context, tx *gorm.DB, doc *tariffdomain.TariffDocument) (*tariffdomain.TariffDocument, error) {
	active, err := s.repo.ListActiveByCurrency(ctx, tx, doc.Currency)
	if err != nil {
		return nil, err
	}
	var current *tariffdomain.TariffDocument
	for i := range active {
		if active[i].ID == doc.ID {
			continue
		}
		if current == nil || active[i].ValidFrom.After(current.ValidFrom) {
			current = &active[i]
		}
	}
	return current, nil
}

func (s *Service) activeServiceIDs(ctx context.Context, tx *gorm.DB) (map[snowflake.ID]bool, error) {
	services, err := s.catalogRepo.ListServices(ctx, tx, true)
	if err != nil {
		return nil, err
	}
	out := make(map[snowflake.ID]bool, len(services))
	for _, svc := range services {
		out[svc.ID] = true
	}
	return out, nil
}

func (s *Service) loadDocument(ctx context.Context, tx *gorm.DB, id string) (*tariffdomain.TariffDocument, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, tariffdomain.ErrInvalidID
	}
	doc, err := s.repo.FindDocumentByID(ctx, tx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, tariffdomain.ErrNotFound
	}
	return doc, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
