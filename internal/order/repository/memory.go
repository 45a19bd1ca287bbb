package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/perfume-order-service/internal/model"
)

// MemoryRepository keeps sheets in process memory. Used for local runs and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	sheets map[string]*memorySheet
}

type memorySheet struct {
	sheet model.Sheet
	rows  []model.Row
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sheets: map[string]*memorySheet{}}
}

func (r *MemoryRepository) FindSheet(ctx context.Context, names ...string) (*model.Sheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		if s, ok := r.sheets[name]; ok {
			sheet := s.sheet
			sheet.Headers = append([]string(nil), s.sheet.Headers...)
			return &sheet, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) CreateSheet(ctx context.Context, sheet *model.Sheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sheets[sheet.Name]; ok {
		return nil
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = time.Now()
	}
	s := *sheet
	s.Headers = append([]string(nil), sheet.Headers...)
	r.sheets[sheet.Name] = &memorySheet{sheet: s}
	return nil
}

func (r *MemoryRepository) AppendRows(ctx context.Context, sheetName string, rows []model.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sheets[sheetName]
	if !ok {
		return fmt.Errorf("sheet %q does not exist", sheetName)
	}
	for _, row := range rows {
		s.rows = append(s.rows, append(model.Row(nil), row...))
	}
	return nil
}

// Rows returns a copy of every row appended to sheetName, header excluded.
func (r *MemoryRepository) Rows(sheetName string) []model.Row {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sheets[sheetName]
	if !ok {
		return nil
	}
	out := make([]model.Row, len(s.rows))
	for i, row := range s.rows {
		out[i] = append(model.Row(nil), row...)
	}
	return out
}
