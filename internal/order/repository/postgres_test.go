package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPGRepository_FindSheetUsesFirstExistingAlias(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT name, headers, created_at FROM sheets WHERE name = \$1`).
		WithArgs("shipping").
		WillReturnRows(sqlmock.NewRows([]string{"name", "headers", "created_at"}))
	mock.ExpectQuery(`SELECT name, headers, created_at FROM sheets WHERE name = \$1`).
		WithArgs("배송양식").
		WillReturnRows(sqlmock.NewRows([]string{"name", "headers", "created_at"}).
			AddRow("배송양식", []byte(`["a","b"]`), created))

	sheet, err := repo.FindSheet(context.Background(), "shipping", "배송양식", "Shipping Information")
	require.NoError(t, err)
	require.NotNil(t, sheet)
	assert.Equal(t, "배송양식", sheet.Name)
	assert.Equal(t, []string{"a", "b"}, sheet.Headers)
	assert.Equal(t, created, sheet.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindSheetMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT name, headers, created_at FROM sheets`).
		WithArgs("errors").
		WillReturnRows(sqlmock.NewRows([]string{"name", "headers", "created_at"}))

	sheet, err := repo.FindSheet(context.Background(), "errors")
	require.NoError(t, err)
	assert.Nil(t, sheet)
}

func TestPGRepository_FindSheetError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT name, headers, created_at FROM sheets`).
		WithArgs("errors").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindSheet(context.Background(), "errors")
	assert.EqualError(t, err, "connection reset")
}

func TestPGRepository_CreateSheet(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO sheets \(name, headers, created_at\)`).
		WithArgs("ai base", `["Order Number","Ordered At"]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sheet := &model.Sheet{Name: "ai base", Headers: []string{"Order Number", "Ordered At"}}
	require.NoError(t, repo.CreateSheet(context.Background(), sheet))
	assert.False(t, sheet.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_AppendRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO sheet_rows \(sheet_name, cells, appended_at\)`).
		WithArgs("ai base", `["AI250102030405",2]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO sheet_rows`).
		WithArgs("ai base", `["AI250102030406",1]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.AppendRows(context.Background(), "ai base", []model.Row{
		{"AI250102030405", 2},
		{"AI250102030406", 1},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_AppendRowsRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO sheet_rows`).WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.AppendRows(context.Background(), "missing", []model.Row{{"x"}})
	assert.EqualError(t, err, "fk violation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_AppendNothing(t *testing.T) {
	repo, mock := newMockRepo(t)
	require.NoError(t, repo.AppendRows(context.Background(), "ai base", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
