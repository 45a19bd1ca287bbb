package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS sheets (
    name       TEXT PRIMARY KEY,
    headers    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sheet_rows (
    id          BIGSERIAL PRIMARY KEY,
    sheet_name  TEXT NOT NULL REFERENCES sheets (name),
    cells       JSONB NOT NULL,
    appended_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS sheet_rows_sheet_name_idx ON sheet_rows (sheet_name, id);
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type sheetRecord struct {
	Name      string    `db:"name"`
	Headers   []byte    `db:"headers"`
	CreatedAt time.Time `db:"created_at"`
}

// Migrate creates the sheet tables when missing.
func (r *PGRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

func (r *PGRepository) FindSheet(ctx context.Context, names ...string) (*model.Sheet, error) {
	for _, name := range names {
		var rec sheetRecord
		err := r.DB.GetContext(ctx, &rec, `SELECT name, headers, created_at FROM sheets WHERE name = $1`, name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}

		sheet := &model.Sheet{Name: rec.Name, CreatedAt: rec.CreatedAt}
		if err := json.Unmarshal(rec.Headers, &sheet.Headers); err != nil {
			return nil, fmt.Errorf("sheet %q has unreadable headers: %w", rec.Name, err)
		}
		return sheet, nil
	}
	return nil, nil
}

func (r *PGRepository) CreateSheet(ctx context.Context, sheet *model.Sheet) error {
	headers, err := json.Marshal(sheet.Headers)
	if err != nil {
		return err
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = time.Now()
	}

	// Concurrent first orders may race here. Headers per sheet name are fixed.
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO sheets (name, headers, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
		sheet.Name, string(headers), sheet.CreatedAt)
	return err
}

// AppendRows writes all rows in one transaction.
func (r *PGRepository) AppendRows(ctx context.Context, sheetName string, rows []model.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet_name, cells, appended_at) VALUES ($1, $2, $3)`,
			sheetName, string(cells), now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
