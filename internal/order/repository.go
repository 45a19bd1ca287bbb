package order

import (
	"context"

	"github.com/fekuna/perfume-order-service/internal/model"
)

// Repository is an append-only sheet store.
type Repository interface {
	// FindSheet returns the first existing sheet among names, or nil when none exists.
	FindSheet(ctx context.Context, names ...string) (*model.Sheet, error)
	CreateSheet(ctx context.Context, sheet *model.Sheet) error
	AppendRows(ctx context.Context, sheetName string, rows []model.Row) error
}
