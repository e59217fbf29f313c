package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct{}

func Provide() tariffdomain.Repository {
	return &repository{}
}

func (r *repository) InsertDocument(ctx context.Context, db *gorm.DB, doc *tariffdomain.TariffDocument) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repository) UpdateDocument(ctx context.Context, db *gorm.DB, doc *tariffdomain.TariffDocument) error {
	return db.WithContext(ctx).
		Model(&tariffdomain.TariffDocument{}).
		Where("id = ?", doc.ID).
		Select("status", "active", "valid_from", "valid_to", "updated_at").
		Updates(map[string]any{
			"status":     doc.Status,
			"active":     doc.Active,
			"valid_from": doc.ValidFrom,
			"valid_to":   doc.ValidTo,
			"updated_at": doc.UpdatedAt,
		}).Error
}

func (r *repository) FindDocumentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*tariffdomain.TariffDocument, error) {
	var doc tariffdomain.TariffDocument
	err := db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) ListDocuments(ctx context.Context, db *gorm.DB, filter tariffdomain.ListFilter) ([]tariffdomain.TariffDocument, error) {
	var docs []tariffdomain.TariffDocument
	stmt := db.WithContext(ctx).Model(&tariffdomain.TariffDocument{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Currency != "" {
		stmt = stmt.Where("currency = ?", filter.Currency)
	}
	if err := stmt.Order("valid_from DESC, id DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) ListActiveByCurrency(ctx context.Context, db *gorm.DB, currency string) ([]tariffdomain.TariffDocument, error) {
	var docs []tariffdomain.TariffDocument
	err := db.WithContext(ctx).
		Where("status = ? AND currency = ?", tariffdomain.StatusActive, currency).
		Order("valid_from ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) InsertItems(ctx context.Context, db *gorm.DB, items []tariffdomain.TariffItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repository) UpsertItem(ctx context.Context, db *gorm.DB, item *tariffdomain.TariffItem) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tariff_id"}, {Name: "service_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"unit_price", "active", "updated_at",
		}),
	}).Create(item).Error
}

func (r *repository) ListItems(ctx context.Context, db *gorm.DB, tariffID snowflake.ID) ([]tariffdomain.TariffItem, error) {
	var items []tariffdomain.TariffItem
	err := db.WithContext(ctx).
		Where("tariff_id = ?", tariffID).
		Order("service_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindItem(ctx context.Context, db *gorm.DB, tariffID, serviceID snowflake.ID) (*tariffdomain.TariffItem, error) {
	var item tariffdomain.TariffItem
	err := db.WithContext(ctx).
		Where("tariff_id = ? AND service_id = ?", tariffID, serviceID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
