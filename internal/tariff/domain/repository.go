package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertDocument(ctx context.Context, db *gorm.DB, doc *TariffDocument) error
	UpdateDocument(ctx context.Context, db *gorm.DB, doc *TariffDocument) error
	FindDocumentByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TariffDocument, error)
	ListDocuments(ctx context.Context, db *gorm.DB, filter ListFilter) ([]TariffDocument, error)
	// ListActiveByCurrency returns every AKTIF document in a currency scope,
	// unfiltered by date, so callers can detect overlapping windows instead
	// of silently picking one.
	ListActiveByCurrency(ctx context.Context, db *gorm.DB, currency string) ([]TariffDocument, error)

	InsertItems(ctx context.Context, db *gorm.DB, items []TariffItem) error
	UpsertItem(ctx context.Context, db *gorm.DB, item *TariffItem) error
	ListItems(ctx context.Context, db *gorm.DB, tariffID snowflake.ID) ([]TariffItem, error)
	FindItem(ctx context.Context, db *gorm.DB, tariffID, serviceID snowflake.ID) (*TariffItem, error)
}

type ListFilter struct {
	Status   TariffStatus
	Currency string
}
